package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradeon_v1_202608/internal/cache"
	"tradeon_v1_202608/internal/config"
	"tradeon_v1_202608/internal/controller"
	"tradeon_v1_202608/internal/middleware"
	"tradeon_v1_202608/internal/model"
	"tradeon_v1_202608/internal/repository"
	"tradeon_v1_202608/internal/router"
	"tradeon_v1_202608/internal/service"
	"tradeon_v1_202608/internal/task"
	"tradeon_v1_202608/pkg/database"
	"tradeon_v1_202608/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. 配置与日志
	cfg := config.Load()
	zl := logger.Init(cfg.Server.Env)
	defer zl.Sync()

	if cfg.JWT.Secret != "" {
		jwtCfg := middleware.DefaultJWTConfig()
		jwtCfg.SecretKey = cfg.JWT.Secret
		middleware.SetJWTConfig(jwtCfg)
	}

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动定时任务
	deps.Maintenance.Start()

	// 5. 初始化路由
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers)

	// 6. 启动服务
	startServer(cfg, r, deps)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Maintenance *task.MaintenanceTask
	CacheClose  func() error // Redis 时需要关连接
}

// Repositories 仓库集合
type Repositories struct {
	Order        repository.OrderRepository
	Shipment     repository.ShipmentRepository
	ShipmentUow  *repository.ShipmentUnitOfWork
	Settings     repository.SettingsRepository
	Profile      repository.ProfileRepository
	UserRole     repository.UserRoleRepository
	Wallet       repository.WalletRepository
	Transaction  repository.TransactionRepository
	Refund       repository.RefundRepository
	WalletUow    *repository.WalletUnitOfWork
	Wishlist     repository.WishlistRepository
	Notification repository.NotificationRepository
}

// Services 服务集合
type Services struct {
	Auth         *service.AuthService
	Order        *service.OrderService
	Shipment     *service.ShipmentService
	Invoice      *service.InvoiceService
	Settings     *service.SettingsService
	Currency     *service.CurrencyService
	Marketplace  *service.MarketplaceService
	Translate    *service.TranslateService
	Search       *service.SearchService
	Wallet       *service.WalletService
	Wishlist     *service.WishlistService
	Notification *service.NotificationService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := database.Open(database.Options{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	if err := database.AutoMigrate(db,
		// 用户
		&model.Profile{}, &model.UserRole{},
		// 订单与运单
		&model.Order{}, &model.Shipment{},
		// 钱包
		&model.Wallet{}, &model.Transaction{}, &model.Refund{},
		// 其他
		&model.AppSetting{}, &model.WishlistItem{}, &model.Notification{},
	); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 缓存 --------
	var store cache.Store
	var memStore *cache.MemoryStore
	var cacheClose func() error
	if cfg.Redis.Addr != "" {
		rs, err := cache.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "tradeon")
		if err != nil {
			log.Fatalf("Redis 连接失败: %v", err)
		}
		store = rs
		cacheClose = rs.Close
	} else {
		zap.L().Warn("未配置 Redis，搜索缓存退化为进程内缓存")
		memStore = cache.NewMemoryStore()
		store = memStore
	}

	// -------- Service 层 --------
	notificationSvc := service.NewNotificationService(repos.Notification)
	settingsSvc := service.NewSettingsService(repos.Settings)
	currencySvc := service.NewCurrencyService(settingsSvc)

	marketplaceSvc := service.NewMarketplaceService(&service.MarketplaceConfig{
		APIKey:    cfg.OneBound.APIKey,
		APISecret: cfg.OneBound.APISecret,
		BaseURL:   cfg.OneBound.BaseURL,
	})
	translateSvc := service.NewTranslateService(&service.TranslateConfig{
		BaseURL: cfg.Translate.BaseURL,
		APIKey:  cfg.Translate.APIKey,
	})
	searchSvc := service.NewSearchService(marketplaceSvc, translateSvc, store)

	authSvc := service.NewAuthService(repos.Profile, repos.UserRole, repos.Wallet)
	orderSvc := service.NewOrderService(repos.Order, notificationSvc)
	shipmentSvc := service.NewShipmentService(repos.ShipmentUow, repos.Shipment, repos.Order, notificationSvc)
	invoiceSvc := service.NewInvoiceService(repos.Order, settingsSvc)
	walletSvc := service.NewWalletService(
		repos.WalletUow, repos.Wallet, repos.Transaction, repos.Refund, repos.Order, notificationSvc)
	wishlistSvc := service.NewWishlistService(repos.Wishlist, currencySvc)

	services := &Services{
		Auth:         authSvc,
		Order:        orderSvc,
		Shipment:     shipmentSvc,
		Invoice:      invoiceSvc,
		Settings:     settingsSvc,
		Currency:     currencySvc,
		Marketplace:  marketplaceSvc,
		Translate:    translateSvc,
		Search:       searchSvc,
		Wallet:       walletSvc,
		Wishlist:     wishlistSvc,
		Notification: notificationSvc,
	}

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Maintenance: task.NewMaintenanceTask(settingsSvc, memStore),
		CacheClose:  cacheClose,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:        repository.NewOrderRepository(db),
		Shipment:     repository.NewShipmentRepository(db),
		ShipmentUow:  repository.NewShipmentUnitOfWork(db),
		Settings:     repository.NewSettingsRepository(db),
		Profile:      repository.NewProfileRepository(db),
		UserRole:     repository.NewUserRoleRepository(db),
		Wallet:       repository.NewWalletRepository(db),
		Transaction:  repository.NewTransactionRepository(db),
		Refund:       repository.NewRefundRepository(db),
		WalletUow:    repository.NewWalletUnitOfWork(db),
		Wishlist:     repository.NewWishlistRepository(db),
		Notification: repository.NewNotificationRepository(db),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Auth:         controller.NewAuthController(svc.Auth),
		Order:        controller.NewOrderController(svc.Order),
		Shipment:     controller.NewShipmentController(svc.Shipment, svc.Order),
		Invoice:      controller.NewInvoiceController(svc.Invoice),
		Search:       controller.NewSearchController(svc.Search, svc.Marketplace, svc.Currency),
		Settings:     controller.NewSettingsController(svc.Settings),
		Wallet:       controller.NewWalletController(svc.Wallet),
		Wishlist:     controller.NewWishlistController(svc.Wishlist),
		Notification: controller.NewNotificationController(svc.Notification),
	}
}

// startServer 启动服务
func startServer(cfg *config.Config, r *gin.Engine, deps *Dependencies) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deps.Maintenance.Stop(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	if deps.CacheClose != nil {
		deps.CacheClose()
	}

	log.Println("服务已退出")
}
