package controllers

// PDF上传与文本提取
// 落盘时同步计算SHA256，提取出的正文直接返回给前端供后续转换使用
import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aviroopjana/versa/config"
	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/log"
	"github.com/aviroopjana/versa/models"
	"github.com/aviroopjana/versa/utils"

	"github.com/gin-gonic/gin"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// UploadPDF godoc
// @Summary     上传法律PDF并提取文本
// @Description 限10MB，存储到uploads目录并记录元数据，返回提取出的正文
// @Tags        AI
// @Security    Bearer
// @Accept      multipart/form-data
// @Produce     json
// @Param       file  formData  file  true  "PDF文件"
// @Success     200  {object}  map[string]interface{}
// @Failure     400  {object}  utils.AppError
// @Router      /api/upload-pdf [post]
func UploadPDF(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("No file provided"))
		return
	}

	maxSize := config.AppConfig.Upload.MaxSizeMB * 1024 * 1024
	if header.Size > maxSize {
		utils.RespondError(c, utils.NewValidationError(
			fmt.Sprintf("File size must be less than %dMB", config.AppConfig.Upload.MaxSizeMB)))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		utils.RespondError(c, utils.NewValidationError("File must be a PDF"))
		return
	}

	src, err := header.Open()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer src.Close()

	uploadDir := config.AppConfig.Upload.Dir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		utils.RespondError(c, err)
		return
	}
	fileName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	filePath := filepath.Join(uploadDir, fileName)
	dst, err := os.Create(filePath)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	hash, written, err := utils.CopyWithHash(dst, src, maxSize, header.Size)
	dst.Close()
	if err != nil {
		os.Remove(filePath) //半截文件不留
		if err == utils.ErrSizeExceeded {
			utils.RespondError(c, utils.NewValidationError(
				fmt.Sprintf("File size must be less than %dMB", config.AppConfig.Upload.MaxSizeMB)))
			return
		}
		utils.RespondError(c, err)
		return
	}

	// 提取失败不算整体失败，正文给空串让前端自行处理
	text, numPages, err := extractPDFText(filePath)
	if err != nil {
		log.L().Warn("pdf text extraction failed",
			zap.String("file", header.Filename), zap.Error(err))
	}

	doc := models.PDFDocument{
		UserID:    userID,
		Filename:  header.Filename,
		FilePath:  filePath,
		FileSize:  written,
		NumPages:  numPages,
		Hash:      hash,
		TextChars: len(text),
	}
	if err := global.DB.Create(&doc).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	log.L().Info("pdf uploaded",
		zap.Uint("user_id", userID),
		zap.String("file", header.Filename),
		zap.String("size", utils.Get_size(written)),
		zap.Int("pages", numPages))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"text":     text,
			"numPages": numPages,
			"fileName": header.Filename,
			"fileSize": written,
			"sha256":   hash,
		},
	})
}

func extractPDFText(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	numPages := r.NumPage()
	reader, err := r.GetPlainText()
	if err != nil {
		return "", numPages, err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", numPages, err
	}
	return buf.String(), numPages, nil
}
