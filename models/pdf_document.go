package models

import (
	"gorm.io/gorm"
)

// PDFDocument 上传的法律文档元数据，正文不落库，提取后直接返回给前端
type PDFDocument struct {
	gorm.Model
	User      *Users `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // 外键约束与级联
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	Filename  string `json:"file_name" gorm:"not null;size:255"` // 原始文件名
	FilePath  string `json:"-" gorm:"not null;size:500"`         // 存储路径
	FileSize  int64  `json:"file_size" gorm:"not null"`
	NumPages  int    `json:"num_pages"`
	Hash      string `json:"sha256" gorm:"size:64;index"`
	TextChars int    `json:"text_chars"` // 提取出的文本长度
}

func (PDFDocument) TableName() string {
	return "pdf_documents"
}
