package controllers

// 用户生成参数的读写-一人一行，upsert
import (
	"net/http"

	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/models"
	"github.com/aviroopjana/versa/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRequest struct {
	SelectedModel *string  `json:"selectedModel"`
	Temperature   *float64 `json:"temperature"`
	MaxTokens     *int     `json:"maxTokens"`
	TopP          *float64 `json:"topP"`
}

// GetSettings godoc
// @Summary     读取当前用户的生成参数
// @Description 未配置时返回默认值
// @Tags        User
// @Security    Bearer
// @Produce     json
// @Success     200  {object}  models.UserSettings
// @Router      /api/user/settings [get]
func GetSettings(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}

	var settings models.UserSettings
	if err := global.DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// 没有记录时返回默认配置
			c.JSON(http.StatusOK, gin.H{
				"selectedModel": "",
				"temperature":   models.DefaultTemperature,
				"maxTokens":     models.DefaultMaxTokens,
				"topP":          models.DefaultTopP,
			})
			return
		}
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings godoc
// @Summary     更新当前用户的生成参数
// @Description 只更新请求里出现的字段，参数越界直接拒绝
// @Tags        User
// @Security    Bearer
// @Accept      json
// @Produce     json
// @Param       request  body  settingsRequest  true  "生成参数"
// @Success     200  {object}  models.UserSettings
// @Router      /api/user/settings [post]
func SaveSettings(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(err.Error()))
		return
	}
	if req.Temperature != nil && (*req.Temperature < 0 || *req.Temperature > 2) {
		utils.RespondError(c, utils.NewValidationError("temperature must be between 0 and 2"))
		return
	}
	if req.TopP != nil && (*req.TopP < 0 || *req.TopP > 1) {
		utils.RespondError(c, utils.NewValidationError("topP must be between 0 and 1"))
		return
	}
	if req.MaxTokens != nil && *req.MaxTokens < 1 {
		utils.RespondError(c, utils.NewValidationError("maxTokens must be at least 1"))
		return
	}

	// 先按默认值起一行，再覆盖请求里给出的字段
	settings := models.UserSettings{
		UserID:      userID,
		Temperature: models.DefaultTemperature,
		MaxTokens:   models.DefaultMaxTokens,
		TopP:        models.DefaultTopP,
	}
	var existing models.UserSettings
	if err := global.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		settings = existing
	}
	if req.SelectedModel != nil {
		settings.SelectedModel = *req.SelectedModel
	}
	if req.Temperature != nil {
		settings.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		settings.MaxTokens = *req.MaxTokens
	}
	if req.TopP != nil {
		settings.TopP = *req.TopP
	}

	// user_id唯一索引上的upsert
	if err := global.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_model", "temperature", "max_tokens", "top_p", "updated_at"}),
	}).Create(&settings).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
