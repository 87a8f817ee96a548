package controllers

// 转换调度器：一次请求对应一次上游调用，无重试无排队
import (
	"net/http"
	"strconv"
	"time"

	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/log"
	"github.com/aviroopjana/versa/models"
	"github.com/aviroopjana/versa/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxTextLength = 50000

// 模型→厂商静态映射表
var modelProviderMap = map[string]string{
	"gpt-4o":            models.ProviderOpenAI,
	"gpt-4-turbo":       models.ProviderOpenAI,
	"claude-3.5-sonnet": models.ProviderAnthropic,
	"claude-3-haiku":    models.ProviderAnthropic,
	"gemini-1.5-pro":    models.ProviderGoogle,
	"mistral-large":     models.ProviderMistral,
	"command-r-plus":    models.ProviderCohere,
}

// 转换接口的限流：每用户10次/60秒，只挂这一个接口
var AIRateLimiter = utils.NewRateLimiter(10, 60*time.Second)

var historyLimitPerUser = 50

// DTO格式
type TransformationRequest struct {
	Text               string `json:"text"`
	TransformationType string `json:"transformationType"`
}

type TransformationResult struct {
	TransformationType string `json:"transformationType"`
	Result             string `json:"result"`
	Model              string `json:"model"`
	Provider           string `json:"provider"`
	Timestamp          string `json:"timestamp"`
}

// ResolveProvider 模型名解析到厂商，未知模型返回ValidationError
func ResolveProvider(model string) (string, error) {
	provider, ok := modelProviderMap[model]
	if !ok {
		return "", utils.NewValidationError("Unable to determine provider for selected model")
	}
	return provider, nil
}

// ValidateTransformationRequest 进网络调用之前把输入卡死
func ValidateTransformationRequest(req TransformationRequest) error {
	if req.Text == "" {
		return utils.NewValidationError("text is required")
	}
	if req.TransformationType == "" {
		return utils.NewValidationError("transformationType is required")
	}
	if len(req.Text) > maxTextLength {
		return utils.NewValidationError("Text is too long. Maximum 50,000 characters allowed.")
	}
	if !ValidateTransformationType(req.TransformationType) {
		return utils.NewValidationError("Invalid transformation type")
	}
	return nil
}

// ProcessTransformation godoc
// @Summary     对法律文本执行一次AI转换
// @Description 按用户选定的模型与模板，把文本交给对应LLM厂商处理
// @Tags        AI
// @Security    Bearer
// @Accept      json
// @Produce     json
// @Param       request  body      TransformationRequest  true  "转换请求参数"
// @Success     200      {object}  map[string]interface{} "转换成功响应"
// @Failure     400      {object}  utils.AppError         "请求参数错误"
// @Failure     401      {object}  utils.AppError         "未登录"
// @Failure     429      {object}  utils.AppError         "超出限流"
// @Failure     503      {object}  utils.AppError         "上游服务错误"
// @Router      /api/ai/process [post]
func ProcessTransformation(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}

	var req TransformationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(err.Error()))
		return
	}
	if err := ValidateTransformationRequest(req); err != nil {
		utils.RespondError(c, err)
		return
	}

	// 用户的生成参数-没配模型就让他先去配置
	var settings models.UserSettings
	if err := global.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.RespondError(c, utils.NewValidationError("No AI model selected. Please configure your settings first."))
			return
		}
		utils.RespondError(c, err)
		return
	}
	if settings.SelectedModel == "" {
		utils.RespondError(c, utils.NewValidationError("No AI model selected. Please configure your settings first."))
		return
	}

	provider, err := ResolveProvider(settings.SelectedModel)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	// 该厂商下处于激活状态的密钥
	var apiKey models.ApiKey
	if err := global.DB.Where("user_id = ? AND provider = ? AND is_active = ?", userID, provider, true).
		First(&apiKey).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.RespondError(c, utils.NewValidationError("No active API key found for "+provider+". Please add one in settings."))
			return
		}
		utils.RespondError(c, err)
		return
	}
	decryptedKey := utils.Decrypt(apiKey.Key) // 明文只活在本次请求内

	template, ok := GetPromptTemplate(req.TransformationType)
	if !ok {
		utils.RespondError(c, utils.NewValidationError("Prompt template not found"))
		return
	}
	prompt := Prompt{
		System: template.System,
		User:   template.User(req.Text),
	}

	result, err := ProcessWithAI(c.Request.Context(), provider, decryptedKey, prompt, settings)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	// 历史记录同步保存，失败只记日志不影响主流程
	if err := SaveTransformationHistory(global.DB, userID, req.TransformationType, req.Text, result, settings.SelectedModel, provider); err != nil {
		log.L().Error("SaveTransformationHistory error: ", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": TransformationResult{
			TransformationType: req.TransformationType,
			Result:             result,
			Model:              settings.SelectedModel,
			Provider:           provider,
			Timestamp:          time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// SaveTransformationHistory 插入一条记录并把每个用户裁到最近50条
func SaveTransformationHistory(db *gorm.DB, userID uint, transformationType, src, result, model, provider string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		hist := models.TransformationHistory{
			UserID:             userID,
			TransformationType: transformationType,
			SourceText:         src,
			Result:             result,
			LLM:                model,
			Provider:           provider,
		}
		if err := tx.Create(&hist).Error; err != nil {
			return err
		}

		// 统计总数，删除超过上限的旧记录
		var total int64
		if err := tx.Model(&models.TransformationHistory{}).
			Where("user_id = ?", userID).
			Count(&total).Error; err != nil {
			return err
		}
		if total > int64(historyLimitPerUser) {
			extra := int(total) - historyLimitPerUser
			var oldIDs []uint
			if err := tx.Model(&models.TransformationHistory{}).
				Where("user_id = ?", userID).
				Order("created_at DESC, id DESC").
				Offset(historyLimitPerUser).
				Limit(extra).
				Pluck("id", &oldIDs).Error; err != nil {
				return err
			}
			if len(oldIDs) > 0 {
				if err := tx.Where("id IN ?", oldIDs).
					Delete(&models.TransformationHistory{}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// GetTransformationHistory godoc
// @Summary     获取转换历史记录
// @Tags        AI
// @Security    Bearer
// @Produce     json
// @Param       page       query  int  false  "页码，默认为1"  default(1)
// @Param       page_size  query  int  false  "每页记录数"     default(10)
// @Router      /api/ai/history [get]
func GetTransformationHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}

	page, pageSize := parsePagination(c)
	offset := (page - 1) * pageSize

	var histories []models.TransformationHistory
	var total int64
	if err := global.DB.Model(&models.TransformationHistory{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := global.DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC"). //按时间降序
		Limit(pageSize).
		Offset(offset).
		Find(&histories).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"histories": histories,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c *gin.Context) (int, int) {
	page := 1
	pageSize := 10
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v >= 1 {
		page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("page_size", "10")); err == nil && v >= 1 && v <= 100 {
		pageSize = v
	}
	return page, pageSize
}
