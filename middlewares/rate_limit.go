package middlewares

import (
	"fmt"

	"github.com/aviroopjana/versa/utils"

	"github.com/gin-gonic/gin"
)

// RateLimitPerUser 按登录用户做固定窗口限流
// 只挂在转换接口上，其余接口不限
func RateLimitPerUser(limiter *utils.RateLimiter, prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			utils.RespondError(c, utils.NewAuthenticationError(""))
			c.Abort()
			return
		}
		if err := limiter.Check(fmt.Sprintf("%s-%d", prefix, userID)); err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
