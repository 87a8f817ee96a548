package middlewares

import (
	"fmt"
	"strings"

	"github.com/aviroopjana/versa/config"
	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/models"
	"github.com/aviroopjana/versa/utils"

	"github.com/gin-gonic/gin"
)

// 自定义中间件-校验JWT并把用户信息放进上下文
func AuthMiddleWare() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization")) // 这里的键是Authorization
		if token == "" {
			if ck, err := c.Cookie(utils.CookieName); err == nil {
				token = ck
			}
		}
		// 去掉 "Bearer " 前缀（如果存在）
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}
		if token == "" {
			utils.RespondError(c, utils.NewAuthenticationError(""))
			c.Abort()
			return
		}
		email, role, _, err := utils.ParseJWT(token)
		if err != nil {
			utils.RespondError(c, utils.NewAuthenticationError(err.Error()))
			c.Abort()
			return
		}

		// 先查本地LRU缓存，未命中再查库
		cacheKey := fmt.Sprintf(config.RedisKeyUsers, email)
		u, hit := models.Users{}, false
		if config.LocalUserCache != nil {
			u, hit = config.LocalUserCache.Get(cacheKey)
		}
		if !hit {
			if err := global.DB.Select("id", "email", "role").
				Where("email = ?", email).
				First(&u).Error; err != nil {
				utils.RespondError(c, utils.NewAuthenticationError("user not found"))
				c.Abort()
				return
			}
			if config.LocalUserCache != nil {
				config.LocalUserCache.Add(cacheKey, u)
			}
		}
		c.Set("user_id", u.ID)
		c.Set("email", email)
		c.Set("role", role)
		c.Next()
	}
}
