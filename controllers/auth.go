package controllers

// auth 身份认证-注册/登录/登出/邮箱验证码
import (
	"fmt"
	"math/rand"
	"net/http"
	"regexp"
	"time"

	"github.com/aviroopjana/versa/config"
	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/log"
	"github.com/aviroopjana/versa/models"
	"github.com/aviroopjana/versa/utils"

	"github.com/gin-gonic/gin"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary     邮箱+密码注册
// @Description 注册成功后异步发送邮箱验证码
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       request  body  registerRequest  true  "注册信息"
// @Success     201  {object}  map[string]interface{}
// @Failure     400  {object}  utils.AppError
// @Failure     409  {object}  utils.AppError  "邮箱已注册"
// @Router      /api/auth/register [post]
func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(err.Error()))
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(c, utils.NewValidationError("Missing required fields"))
		return
	}
	if !emailRegex.MatchString(req.Email) {
		utils.RespondError(c, utils.NewValidationError("Invalid email format"))
		return
	}
	if len(req.Password) < 8 {
		utils.RespondError(c, utils.NewValidationError("Password must be at least 8 characters"))
		return
	}

	// 先查重，给出比唯一索引冲突更友好的提示
	var existing models.Users
	if err := global.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.RespondError(c, &utils.AppError{
			Status: http.StatusConflict, Message: "User with this email already exists",
			Code: "DUPLICATE_RECORD", Type: "database_error",
		})
		return
	}

	hashedPwd, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	user := models.Users{
		Name:         req.Name,
		Email:        req.Email,
		Password:     hashedPwd,
		AuthProvider: "credentials",
		Role:         "user",
	}
	if err := global.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, err)
		return
	}

	// 验证码发送失败不影响注册流程
	go func(email string) {
		if err := sendVerificationOTP(email); err != nil {
			log.L().Error("Failed to send verification email:", zap.Error(err))
		}
	}(user.Email)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		},
		"redirect": "/auth/verify-email?email=" + user.Email,
	})
}

// Login godoc
// @Summary     邮箱+密码登录
// @Description 成功后签发JWT并写入HttpOnly cookie，邮箱未验证时重发验证码并拒绝
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       request  body  loginRequest  true  "登录信息"
// @Success     200  {object}  map[string]interface{}
// @Failure     401  {object}  utils.AppError
// @Failure     429  {object}  utils.AppError  "尝试过于频繁"
// @Router      /api/auth/login [post]
func Login(c *gin.Context) {
	// 按IP限流，防止密码爆破
	if !config.GetLoginLimiter(c.ClientIP()).Allow() {
		utils.RespondError(c, utils.NewRateLimitError("Too many login attempts, try again later"))
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.NewValidationError(err.Error()))
		return
	}

	var user models.Users
	if err := global.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondError(c, utils.NewAuthenticationError("Invalid email or password"))
		return
	}
	if user.Password == "" || !utils.CheckPassword(req.Password, user.Password) {
		utils.RespondError(c, utils.NewAuthenticationError("Invalid email or password"))
		return
	}
	if user.EmailVerifiedAt == nil {
		// 重新发一个验证码再拒绝登录
		go func(email string) {
			if err := sendVerificationOTP(email); err != nil {
				log.L().Error("Failed to resend verification email:", zap.Error(err))
			}
		}(user.Email)
		utils.RespondError(c, utils.NewAuthenticationError(
			fmt.Sprintf("Please verify your email first. A new verification code has been sent to %s", user.Email)))
		return
	}

	token, err := utils.GenerateJWT(user.Email, user.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SetAuthCookie(c, token, utils.Expire_hours*time.Hour)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"image": user.AvatarURL,
		},
	})
}

// Logout godoc
// @Summary     登出
// @Tags        Auth
// @Produce     json
// @Router      /api/auth/logout [post]
func Logout(c *gin.Context) {
	utils.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe godoc
// @Summary     当前登录用户信息
// @Tags        Auth
// @Security    Bearer
// @Produce     json
// @Success     200  {object}  models.Users
// @Router      /api/me [get]
func GetMe(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		utils.RespondError(c, utils.NewAuthenticationError(""))
		return
	}
	var user models.Users
	if err := global.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.RespondError(c, utils.NewAuthenticationError("user not found"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// SendVerificationEmail godoc
// @Summary     发送邮箱验证码
// @Description 6位验证码，10分钟有效，写入redis并通过Resend发信
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       request  body  map[string]string  true  "{\"email\": string}"
// @Router      /api/auth/verify-email [post]
func SendVerificationEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		utils.RespondError(c, utils.NewValidationError("Email is required"))
		return
	}

	var user models.Users
	if err := global.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondError(c, utils.NewNotFoundError("User not found"))
		return
	}

	if err := sendVerificationOTP(req.Email); err != nil {
		log.L().Error("Email verification error:", zap.Error(err))
		utils.RespondError(c, utils.NewExternalServiceError("Failed to send verification email", "resend"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// VerifyOTP godoc
// @Summary     校验邮箱验证码
// @Description 匹配则把用户标记为已验证，验证码一次性使用
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       request  body  map[string]string  true  "{\"email\": string, \"otp\": string}"
// @Router      /api/auth/verify-otp [post]
func VerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.OTP == "" {
		utils.RespondError(c, utils.NewValidationError("Email and OTP are required"))
		return
	}

	key := fmt.Sprintf(config.RedisKeyOTP, req.Email)
	stored, err := global.RedisDB.Get(key).Result()
	if err != nil || stored != req.OTP {
		utils.RespondError(c, utils.NewValidationError("Invalid or expired OTP"))
		return
	}

	now := time.Now()
	if err := global.DB.Model(&models.Users{}).
		Where("email = ?", req.Email).
		Update("email_verified_at", &now).Error; err != nil {
		utils.RespondError(c, err)
		return
	}
	global.RedisDB.Del(key) //验证码一次性
	config.ClearUserCache(req.Email)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// sendVerificationOTP 生成验证码、写redis、发邮件
// singleflight合并同一邮箱的并发发送，避免连点重复发信
func sendVerificationOTP(email string) error {
	_, err, _ := global.SendGroup.Do("verify:"+email, func() (interface{}, error) {
		otp := fmt.Sprintf("%06d", 100000+rand.Intn(900000))

		key := fmt.Sprintf(config.RedisKeyOTP, email)
		if err := global.RedisDB.Set(key, otp, config.OTPExpiry).Err(); err != nil {
			return nil, err
		}

		client := resend.NewClient(config.AppConfig.Email.ResendKey)
		params := &resend.SendEmailRequest{
			From:    config.AppConfig.Email.From,
			To:      []string{email},
			Subject: "Verify your email for Versa",
			Html: fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2 style="color: #333;">Verify your email for Versa</h2>
          <p>Your verification code is: <strong>%s</strong></p>
          <p>This code will expire in 10 minutes.</p>
          <p>If you didn't request this code, please ignore this email.</p>
        </div>
      `, otp),
		}
		_, err := client.Emails.Send(params)
		return nil, err
	})
	return err
}
