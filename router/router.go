package router

//路由组-分组
import (
	"github.com/aviroopjana/versa/controllers"
	"github.com/aviroopjana/versa/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(middlewares.GinLogger(), middlewares.GinRecovery())
	mountSwagger(r)

	// 公开接口
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.POST("/verify-email", controllers.SendVerificationEmail)
		auth.POST("/verify-otp", controllers.VerifyOTP)
		// OAuth登录
		auth.GET("/oauth/:provider", controllers.OAuthLogin)
		auth.GET("/oauth/:provider/callback", controllers.OAuthCallback)
	}

	// 模板目录是公开的只读数据
	r.GET("/api/ai/templates", controllers.GetTemplates)

	// 受保护的 API（数据接口，需要登录）
	api := r.Group("/api", middlewares.AuthMiddleWare())
	{
		api.GET("/me", controllers.GetMe)

		// AI转换模块-只有process挂限流
		api.POST("/ai/process",
			middlewares.RateLimitPerUser(controllers.AIRateLimiter, "ai-process"),
			controllers.ProcessTransformation)
		api.GET("/ai/history", controllers.GetTransformationHistory)

		// 文档上传模块
		api.POST("/upload-pdf", controllers.UploadPDF)

		// 用户设置模块
		api.GET("/user/settings", controllers.GetSettings)
		api.POST("/user/settings", controllers.SaveSettings)
		api.GET("/user/api-keys", controllers.GetApiKeys)
		api.POST("/user/api-keys", controllers.CreateApiKey)
		api.PATCH("/user/api-keys/:id", controllers.UpdateApiKey)
		api.DELETE("/user/api-keys/:id", controllers.DeleteApiKey)
	}

	return r //返回路由组
}
