package models

import "gorm.io/gorm"

// LLM厂商标识
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
	ProviderMistral   = "mistral"
	ProviderCohere    = "cohere"
)

// ApiKey 用户保存的厂商密钥，Key列存的是加密envelope
// 明文只在单次请求内解密后短暂存在于内存
type ApiKey struct {
	gorm.Model
	User     *Users `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // 外键约束与级联
	UserID   uint   `json:"user_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"size:100;not null"`
	Provider string `json:"provider" gorm:"size:20;not null;index"`
	Key      string `json:"key" gorm:"type:text;not null"`
	IsActive bool   `json:"isActive" gorm:"default:true"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}
