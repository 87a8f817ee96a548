package models

import (
	"gorm.io/gorm"
)

// TransformationHistory 文本转换历史记录
type TransformationHistory struct {
	gorm.Model
	User               *Users `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // 外键约束与级联
	UserID             uint   `json:"user_id" gorm:"not null;index"`
	TransformationType string `json:"transformation_type" gorm:"size:50;not null"` // 用的哪个模板
	SourceText         string `json:"source_text" gorm:"type:text;not null"`
	Result             string `json:"result" gorm:"type:text;not null"`
	LLM                string `json:"model" gorm:"size:50"`    // 使用的模型
	Provider           string `json:"provider" gorm:"size:50"` // API提供商
}

// TableName 指定表名
func (TransformationHistory) TableName() string {
	return "transformation_histories"
}
