package router

import (
	"fmt"
	"strings"

	"github.com/anup1414/AffiliateEngine/internal/cache"
	"github.com/anup1414/AffiliateEngine/internal/config"
	adminhandlers "github.com/anup1414/AffiliateEngine/internal/http/handlers/admin"
	publichandlers "github.com/anup1414/AffiliateEngine/internal/http/handlers/public"
	"github.com/anup1414/AffiliateEngine/internal/logger"
	"github.com/anup1414/AffiliateEngine/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "mp"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.POST("/auth/logout", publicHandler.Logout)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.POST("/me/avatar", publicHandler.UploadAvatar)

			user.GET("/membership/quote", publicHandler.MembershipQuote)
			user.POST("/membership/purchase", publicHandler.MembershipPurchase)
			user.GET("/membership", publicHandler.MembershipStatus)
			user.POST("/membership/payment-proof", publicHandler.UploadPaymentProof)
			user.GET("/payment-qr-codes", publicHandler.PaymentQRCodes)

			user.GET("/earnings/stats", publicHandler.EarningsStats)
			user.GET("/earnings", publicHandler.EarningsHistory)
			user.GET("/referrals", publicHandler.Referrals)
			user.GET("/referrals/summary", publicHandler.ReferralSummary)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminAuthMiddleware())
		{
			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.PUT("/users/:id/approval", adminHandler.SetUserApproval)

			admin.GET("/memberships", adminHandler.GetAdminMemberships)
			admin.POST("/memberships/:user_id/confirm", adminHandler.ConfirmMembership)
			admin.POST("/memberships/:user_id/reject", adminHandler.RejectMembership)
			admin.PUT("/memberships/:user_id/status", adminHandler.SetMembershipStatus)

			admin.GET("/qr-codes", adminHandler.GetAdminQRCodes)
			admin.POST("/qr-codes", adminHandler.CreateQRCode)
			admin.PUT("/qr-codes/:id", adminHandler.UpdateQRCode)
			admin.DELETE("/qr-codes/:id", adminHandler.DeleteQRCode)
			admin.POST("/qr-codes/upload", adminHandler.UploadQRCodeImage)

			admin.GET("/stats", adminHandler.GetPlatformStats)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
