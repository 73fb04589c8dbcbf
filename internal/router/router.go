package router

import (
	"tradeon_v1_202608/internal/controller"
	"tradeon_v1_202608/internal/middleware"
	"tradeon_v1_202608/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth         *controller.AuthController
	Order        *controller.OrderController
	Shipment     *controller.ShipmentController
	Invoice      *controller.InvoiceController
	Search       *controller.SearchController
	Settings     *controller.SettingsController
	Wallet       *controller.WalletController
	Wishlist     *controller.WishlistController
	Notification *controller.NotificationController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers) {
	// 1. 指标与探活
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 2. API 路由组
	api := r.Group("/api")
	{
		// auth 鉴权组（公开）
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctls.Auth.Register)
			auth.POST("/login", ctls.Auth.Login)
			auth.POST("/refresh", ctls.Auth.Refresh)
		}

		// 公开接口：站点配置、1688 搜索与详情
		api.GET("/settings", ctls.Settings.Get)
		api.GET("/search", ctls.Search.Search)
		api.GET("/items/:item_id", ctls.Search.ItemDetail)

		// 登录用户
		user := api.Group("")
		user.Use(middleware.JWTAuth())
		{
			user.GET("/me", ctls.Auth.Me)
			user.PUT("/me", ctls.Auth.UpdateMe)

			orders := user.Group("/orders")
			{
				orders.POST("", ctls.Order.Place)
				orders.GET("", ctls.Order.MyOrders)
				orders.GET("/:id", ctls.Order.Detail)
				orders.POST("/:id/cancel", ctls.Order.Cancel)
			}

			user.GET("/shipments/:order_id/progress", ctls.Shipment.Progress)
			user.POST("/invoices", ctls.Invoice.Build)

			wallet := user.Group("/wallet")
			{
				wallet.GET("", ctls.Wallet.MyWallet)
				wallet.GET("/transactions", ctls.Wallet.MyTransactions)
			}

			refunds := user.Group("/refunds")
			{
				refunds.POST("", ctls.Wallet.RequestRefund)
				refunds.GET("", ctls.Wallet.MyRefunds)
			}

			wishlist := user.Group("/wishlist")
			{
				wishlist.POST("", ctls.Wishlist.Add)
				wishlist.GET("", ctls.Wishlist.List)
				wishlist.DELETE("/:id", ctls.Wishlist.Remove)
			}

			notifications := user.Group("/notifications")
			{
				notifications.GET("", ctls.Notification.List)
				notifications.GET("/unread", ctls.Notification.UnreadCount)
				notifications.POST("/:id/read", ctls.Notification.MarkRead)
				notifications.POST("/read-all", ctls.Notification.MarkAllRead)
			}
		}

		// 管理端
		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/dashboard", ctls.Order.Stats)

			orders := admin.Group("/orders")
			{
				orders.GET("", ctls.Order.List)
				orders.GET("/:id", ctls.Order.Detail)
				orders.PUT("/:id", ctls.Order.Update)
				orders.DELETE("/:id", ctls.Order.Delete)
			}

			shipments := admin.Group("/shipments")
			{
				shipments.GET("", ctls.Shipment.List)
				shipments.PUT("/:id", ctls.Shipment.Update)
				shipments.PUT("/order/:order_id/stage", ctls.Shipment.SetStage)
			}

			refunds := admin.Group("/refunds")
			{
				refunds.GET("", ctls.Wallet.ListRefunds)
				refunds.POST("/:id/review", ctls.Wallet.ReviewRefund)
			}

			admin.POST("/wallets/adjust", ctls.Wallet.Adjust)
			admin.PUT("/settings/:key", ctls.Settings.Update)

			users := admin.Group("/users")
			{
				users.GET("", ctls.Auth.ListUsers)
				users.PUT("/:id/active", ctls.Auth.SetUserActive)
				users.POST("/:id/roles", ctls.Auth.GrantRole)
				users.DELETE("/:id/roles", ctls.Auth.RevokeRole)
			}
		}
	}
}
