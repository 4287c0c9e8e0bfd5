package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/edipub/backend/internal/application/catalog"
	financeapp "github.com/edipub/backend/internal/application/finance"
	identityapp "github.com/edipub/backend/internal/application/identity"
	inventoryapp "github.com/edipub/backend/internal/application/inventory"
	notificationapp "github.com/edipub/backend/internal/application/notification"
	orderapp "github.com/edipub/backend/internal/application/order"
	partnerapp "github.com/edipub/backend/internal/application/partner"
	reportapp "github.com/edipub/backend/internal/application/report"
	"github.com/edipub/backend/internal/infrastructure/auth"
	"github.com/edipub/backend/internal/infrastructure/config"
	"github.com/edipub/backend/internal/infrastructure/logger"
	"github.com/edipub/backend/internal/infrastructure/persistence"
	"github.com/edipub/backend/internal/infrastructure/pricing"
	"github.com/edipub/backend/internal/interfaces/http/handler"
	"github.com/edipub/backend/internal/interfaces/http/middleware"
	"github.com/edipub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting EdiPub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist. Redis when reachable, in-memory otherwise so a
	// missing Redis never blocks startup in development.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.RedisAddr()))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	workRepo := persistence.NewGormWorkRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	deliveryNoteRepo := persistence.NewGormDeliveryNoteRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	royaltyRepo := persistence.NewGormRoyaltyRepository(db.DB)
	rebateRepo := persistence.NewGormPartnerRebateRepository(db.DB)
	rateRepo := persistence.NewGormRebateRateRepository(db.DB)
	withdrawalRepo := persistence.NewGormWithdrawalRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	workService := catalogapp.NewWorkService(workRepo, log)
	partnerService := partnerapp.NewPartnerService(partnerRepo)
	notificationService := notificationapp.NewNotificationService(notificationRepo, log)

	rateResolver := financeapp.NewRateResolver(rateRepo)
	settlementService := financeapp.NewSettlementService(
		orderRepo, royaltyRepo, rebateRepo, rateResolver, financeapp.TotalOverSubtotal{}, log,
	)
	royaltyService := financeapp.NewRoyaltyService(royaltyRepo, rebateRepo)
	rateService := financeapp.NewRateService(rateRepo)
	withdrawalService := financeapp.NewWithdrawalService(withdrawalRepo, royaltyRepo, rebateRepo, partnerRepo, log)

	tierPricing := pricing.DefaultClientTierPricing()
	validationService := orderapp.NewValidationService(txScope, settlementService, notificationService, log)
	orderService := orderapp.NewOrderService(
		orderRepo, workRepo, userRepo, partnerRepo, tierPricing, validationService, notificationService, log,
	)
	deliveryNoteService := orderapp.NewDeliveryNoteService(deliveryNoteRepo)
	stockService := inventoryapp.NewStockService(txScope, movementRepo, log)
	dashboardService := reportapp.NewDashboardService(orderRepo, workRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	engine.Use(middleware.LoadUser(userRepo))

	r := router.NewRouter(engine)
	r.Register(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewWorkHandler(workService),
		handler.NewPartnerHandler(partnerService),
		handler.NewOrderHandler(orderService, validationService),
		handler.NewDeliveryNoteHandler(deliveryNoteService, validationService),
		handler.NewStockHandler(stockService),
		handler.NewFinanceHandler(royaltyService, rateService, settlementService, partnerRepo),
		handler.NewWithdrawalHandler(withdrawalService),
		handler.NewNotificationHandler(notificationService),
		handler.NewDashboardHandler(dashboardService),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
