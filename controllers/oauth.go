package controllers

// OAuth登录-Google与GitHub
// state存redis防CSRF，换取用户资料后按邮箱upsert本地用户并签发JWT
import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aviroopjana/versa/config"
	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/log"
	"github.com/aviroopjana/versa/models"
	"github.com/aviroopjana/versa/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"
	oauthgoogle "golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	githubUserInfoURL = "https://api.github.com/user"
)

func oauthConfig(provider string) (*oauth2.Config, error) {
	redirect := config.BaseURL() + "/api/auth/oauth/" + provider + "/callback"
	switch provider {
	case "google":
		return &oauth2.Config{
			ClientID:     config.AppConfig.OAuth.Google.ClientID,
			ClientSecret: config.AppConfig.OAuth.Google.ClientSecret,
			RedirectURL:  redirect,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     oauthgoogle.Endpoint,
		}, nil
	case "github":
		return &oauth2.Config{
			ClientID:     config.AppConfig.OAuth.Github.ClientID,
			ClientSecret: config.AppConfig.OAuth.Github.ClientSecret,
			RedirectURL:  redirect,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     oauthgithub.Endpoint,
		}, nil
	}
	return nil, utils.NewValidationError("Unsupported OAuth provider: " + provider)
}

// OAuthLogin godoc
// @Summary     跳转到OAuth授权页
// @Tags        Auth
// @Param       provider  path  string  true  "google或github"
// @Router      /api/auth/oauth/{provider} [get]
func OAuthLogin(c *gin.Context) {
	provider := c.Param("provider")
	cfg, err := oauthConfig(provider)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	state := uuid.NewString()
	key := fmt.Sprintf(config.RedisKeyOAuthState, state)
	if err := global.RedisDB.Set(key, provider, config.OAuthStateTTL).Err(); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, cfg.AuthCodeURL(state))
}

// OAuthCallback godoc
// @Summary     OAuth回调
// @Description 校验state、换token、拉取用户资料、upsert用户并签发cookie
// @Tags        Auth
// @Param       provider  path   string  true   "google或github"
// @Param       code      query  string  true   "授权码"
// @Param       state     query  string  true   "防CSRF随机串"
// @Router      /api/auth/oauth/{provider}/callback [get]
func OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		utils.RespondError(c, utils.NewValidationError("Missing code or state"))
		return
	}

	// state一次性使用
	key := fmt.Sprintf(config.RedisKeyOAuthState, state)
	storedProvider, err := global.RedisDB.Get(key).Result()
	if err != nil || storedProvider != provider {
		utils.RespondError(c, utils.NewAuthenticationError("Invalid or expired OAuth state"))
		return
	}
	global.RedisDB.Del(key)

	cfg, err := oauthConfig(provider)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	ctx := c.Request.Context()
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		log.L().Error("oauth code exchange error:", zap.Error(err))
		utils.RespondError(c, utils.NewExternalServiceError("OAuth code exchange failed", provider))
		return
	}

	name, email, avatar, err := fetchOAuthProfile(c, cfg, token, provider)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if email == "" {
		utils.RespondError(c, utils.NewValidationError("OAuth account has no public email"))
		return
	}

	// 按邮箱upsert-OAuth来源的邮箱视为已验证
	now := time.Now()
	var user models.Users
	if err := global.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			utils.RespondError(c, err)
			return
		}
		user = models.Users{
			Name:            name,
			Email:           email,
			AvatarURL:       avatar,
			AuthProvider:    provider,
			Role:            "user",
			EmailVerifiedAt: &now,
		}
		if err := global.DB.Create(&user).Error; err != nil {
			utils.RespondError(c, err)
			return
		}
	} else if user.EmailVerifiedAt == nil {
		if err := global.DB.Model(&user).Update("email_verified_at", &now).Error; err != nil {
			utils.RespondError(c, err)
			return
		}
		config.ClearUserCache(email)
	}

	jwtToken, err := utils.GenerateJWT(user.Email, user.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SetAuthCookie(c, jwtToken, utils.Expire_hours*time.Hour)
	c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
}

func fetchOAuthProfile(c *gin.Context, cfg *oauth2.Config, token *oauth2.Token, provider string) (name, email, avatar string, err error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), global.FetchTimeout)
	defer cancel()
	client := cfg.Client(ctx, token)

	infoURL := googleUserInfoURL
	if provider == "github" {
		infoURL = githubUserInfoURL
	}
	resp, err := client.Get(infoURL)
	if err != nil {
		log.L().Error("fetch oauth profile error:", zap.Error(err))
		return "", "", "", utils.NewExternalServiceError("Failed to fetch user profile", provider)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", "", utils.NewExternalServiceError("Failed to read user profile", provider)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", "", utils.NewExternalServiceError("Failed to fetch user profile", provider)
	}

	if provider == "google" {
		var profile struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Picture string `json:"picture"`
		}
		if err := json.Unmarshal(body, &profile); err != nil {
			return "", "", "", utils.NewExternalServiceError("Failed to parse user profile", provider)
		}
		return profile.Name, profile.Email, profile.Picture, nil
	}

	var profile struct {
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		return "", "", "", utils.NewExternalServiceError("Failed to parse user profile", provider)
	}
	if profile.Name == "" {
		profile.Name = profile.Login
	}
	return profile.Name, profile.Email, profile.AvatarURL, nil
}
