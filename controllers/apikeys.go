package controllers

// 用户LLM密钥的CRUD-密钥落库前加密，创建响应里明文只回显一次
import (
	"net/http"
	"strconv"

	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/models"
	"github.com/aviroopjana/versa/utils"

	"github.com/gin-gonic/gin"
)

type createApiKeyRequest struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Key      string `json:"key"`
}

var validProviders = map[string]bool{
	models.ProviderOpenAI:    true,
	models.ProviderAnthropic: true,
	models.ProviderGoogle:    true,
	models.ProviderMistral:   true,
	models.ProviderCohere:    true,
}

// GetApiKeys godoc
// @Summary     列出当前用户的厂商密钥
// @Tags        User
// @Security    Bearer
// @Produce     json
// @Success     200  {array}  models.ApiKey
// @Router      /api/user/api-keys [get]
func GetApiKeys(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}

	var keys []models.ApiKey
	if err := global.DB.Where("user_id = ?", userID).Order("id").Find(&keys).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	// 返回前解密供前端展示
	for i := range keys {
		keys[i].Key = utils.Decrypt(keys[i].Key)
	}
	c.JSON(http.StatusOK, keys)
}

// CreateApiKey godoc
// @Summary     新增一个厂商密钥
// @Description 密钥加密后入库，响应中原样回显一次方便前端立即展示
// @Tags        User
// @Security    Bearer
// @Accept      json
// @Produce     json
// @Param       request  body  createApiKeyRequest  true  "密钥信息"
// @Success     200  {object}  models.ApiKey
// @Router      /api/user/api-keys [post]
func CreateApiKey(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}

	var req createApiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(err.Error()))
		return
	}
	if req.Name == "" || req.Provider == "" || req.Key == "" {
		utils.RespondError(c, utils.NewValidationError("Missing required fields"))
		return
	}
	if !validProviders[req.Provider] {
		utils.RespondError(c, utils.NewValidationError("Unknown provider: "+req.Provider))
		return
	}

	apiKey := models.ApiKey{
		UserID:   userID,
		Name:     req.Name,
		Provider: req.Provider,
		Key:      utils.Encrypt(req.Key), //加密存储
		IsActive: true,
	}
	if err := global.DB.Create(&apiKey).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	apiKey.Key = req.Key // 只在这一次响应里回显明文
	c.JSON(http.StatusOK, apiKey)
}

// UpdateApiKey godoc
// @Summary     激活/停用一个密钥
// @Tags        User
// @Security    Bearer
// @Accept      json
// @Produce     json
// @Param       id       path  int                    true  "密钥ID"
// @Param       request  body  map[string]interface{} true  "{\"isActive\": bool}"
// @Router      /api/user/api-keys/{id} [patch]
func UpdateApiKey(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("Invalid API key id"))
		return
	}

	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		utils.RespondError(c, utils.NewValidationError("isActive is required"))
		return
	}

	res := global.DB.Model(&models.ApiKey{}).
		Where("id = ? AND user_id = ?", uint(id), userID).
		Update("is_active", *req.IsActive)
	if res.Error != nil {
		utils.RespondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, utils.NewNotFoundError("API key not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteApiKey godoc
// @Summary     删除一个密钥
// @Tags        User
// @Security    Bearer
// @Produce     json
// @Param       id  path  int  true  "密钥ID"
// @Router      /api/user/api-keys/{id} [delete]
func DeleteApiKey(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("Invalid API key id"))
		return
	}

	res := global.DB.Where("id = ? AND user_id = ?", uint(id), userID).
		Delete(&models.ApiKey{})
	if res.Error != nil {
		utils.RespondError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, utils.NewNotFoundError("API key not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
