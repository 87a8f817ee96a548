package models

import "gorm.io/gorm"

// 生成参数的默认值-未配置时GET接口返回这些
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
	DefaultTopP        = 1.0
)

// UserSettings 每个用户一行的生成参数设置
type UserSettings struct {
	gorm.Model
	User          *Users  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID        uint    `json:"user_id" gorm:"not null;uniqueIndex"`
	SelectedModel string  `json:"selectedModel" gorm:"size:50"`
	Temperature   float64 `json:"temperature" gorm:"default:0.7"` // [0,2]
	MaxTokens     int     `json:"maxTokens" gorm:"default:2000"`
	TopP          float64 `json:"topP" gorm:"default:1"` // [0,1]
}

func (UserSettings) TableName() string {
	return "user_settings"
}
