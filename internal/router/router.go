package router

import (
	"fmt"
	"strings"

	"github.com/portrait-next/internal/cache"
	"github.com/portrait-next/internal/config"
	adminhandlers "github.com/portrait-next/internal/http/handlers/admin"
	publichandlers "github.com/portrait-next/internal/http/handlers/public"
	"github.com/portrait-next/internal/logger"
	"github.com/portrait-next/internal/provider"

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
		redisPrefix = "pn"
	}
	redisClient := cache.Client()
	portalLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:portal_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}
	staffLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:staff_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的画作文件）- 必须放在最前面
	r.Static("/static/artwork", cfg.Artwork.Root)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口：学校申请套件
		public := apiV1.Group("/public")
		{
			public.POST("/kit-requests", publicHandler.RequestKit)
		}

		// 学校门户接口
		portal := apiV1.Group("/portal")
		{
			portal.POST("/login", RateLimitMiddleware(redisClient, portalLoginRule, KeyByIPAndJSONField("username")), publicHandler.PortalLogin)

			authorized := portal.Use(PortalJWTAuthMiddleware(cfg.PortalJWT.SecretKey))
			{
				authorized.GET("/order", publicHandler.PortalGetOrder)
				authorized.PATCH("/order/quantities", publicHandler.PortalUpdateQuantities)
			}
		}

		// 员工后台接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, staffLoginRule, KeyByIP), adminHandler.StaffLogin)

			// 需要鉴权的接口
			authorized := admin.Use(StaffJWTAuthMiddleware(cfg.JWT.SecretKey, c.StaffRepo))
			{
				authorized.PUT("/password", adminHandler.UpdateStaffPassword) // 修改密码

				// 订单管理
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
				authorized.PATCH("/orders/:id/quantities", adminHandler.AdminUpdateQuantities)

				// 画作文件管理
				authorized.GET("/orders/:id/artwork", adminHandler.AdminListArtwork)
				authorized.POST("/orders/:id/artwork", adminHandler.AdminUploadArtwork)
				authorized.DELETE("/orders/:id/artwork", adminHandler.AdminDeleteArtworkFile)

				// 单据渲染
				authorized.GET("/orders/:id/documents/checklist", adminHandler.AdminChecklist)
				authorized.GET("/orders/:id/documents/next-steps", adminHandler.AdminNextSteps)
				authorized.GET("/orders/:id/documents/packing-slip", adminHandler.AdminPackingSlip)
				authorized.GET("/orders/:id/documents/final-package-checklist", adminHandler.AdminFinalPackageChecklist)

				// 发票管理
				authorized.PATCH("/invoices/:id/status", adminHandler.AdminUpdateInvoiceStatus)
				authorized.GET("/invoices/:id/download", adminHandler.AdminDownloadInvoice)

				// 任务管理
				authorized.POST("/tasks", adminHandler.AdminCreateTask)
				authorized.GET("/tasks", adminHandler.AdminListTasks)
				authorized.DELETE("/tasks/:id", adminHandler.AdminDeleteTask)
			}

			// 员工账号管理（仅限管理员）
			staff := admin.Group("/staff", AdminOnlyMiddleware())
			{
				staff.GET("", adminHandler.AdminListStaff)
				staff.POST("", adminHandler.AdminCreateStaff)
				staff.DELETE("/:id", adminHandler.AdminDeleteStaff)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
