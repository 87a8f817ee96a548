package models

import (
	"time"

	"gorm.io/gorm"
)

// 用户数据-支持密码注册与OAuth两种来源
type Users struct {
	gorm.Model
	Name            string     `json:"name" gorm:"size:100"`
	Email           string     `json:"email" gorm:"size:191;uniqueIndex;not null"`
	Password        string     `json:"-"` // OAuth用户此列为空
	AvatarURL       string     `json:"image" gorm:"size:500"`
	AuthProvider    string     `json:"-" gorm:"size:20;default:credentials"` // credentials/google/github
	Role            string     `json:"-" gorm:"size:20;default:user"`
	EmailVerifiedAt *time.Time `json:"emailVerified"`
}

// 显示使用名称
func (Users) TableName() string {
	return "users"
}
