package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/camposanto/backend/internal/application/audit"
	billingapp "github.com/camposanto/backend/internal/application/billing"
	cemeteryapp "github.com/camposanto/backend/internal/application/cemetery"
	intermentapp "github.com/camposanto/backend/internal/application/interment"
	tenancyapp "github.com/camposanto/backend/internal/application/tenancy"
	"github.com/camposanto/backend/internal/infrastructure/auth"
	"github.com/camposanto/backend/internal/infrastructure/config"
	"github.com/camposanto/backend/internal/infrastructure/logger"
	"github.com/camposanto/backend/internal/infrastructure/persistence"
	"github.com/camposanto/backend/internal/interfaces/http/handler"
	"github.com/camposanto/backend/internal/interfaces/http/middleware"
	"github.com/camposanto/backend/internal/interfaces/http/router"
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

	log.Info("Starting cemetery records backend",
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

	// Unit of work over the shared connection; every application service
	// runs its use cases inside a single transaction through it.
	uow := persistence.NewGormUnitOfWork(db)

	// Application services
	recorder := auditapp.NewRecorder(log)
	tenantService := tenancyapp.NewTenantService(uow, recorder, log)
	registryService := cemeteryapp.NewRegistryService(uow, recorder, log)
	lifecycleEngine := intermentapp.NewLifecycleEngine(uow, recorder, log)
	ledgerService := billingapp.NewLedgerService(uow, recorder, log)
	trailService := auditapp.NewTrailService(uow)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	tenantHandler := handler.NewTenantHandler(tenantService, jwtService, uow)
	registryHandler := handler.NewRegistryHandler(registryService)
	lifecycleHandler := handler.NewLifecycleHandler(lifecycleEngine)
	receivableHandler := handler.NewReceivableHandler(ledgerService)
	auditHandler := handler.NewAuditHandler(trailService)

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

	// Middleware stack in order: request ID, panic recovery, request
	// logging, security headers, CORS, body size limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Tenant registration is the only unauthenticated API endpoint; it
	// bootstraps the municipality together with its owner account.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/api/v1/tenants"},
		Logger:     log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	scopeConfig := middleware.DefaultScopeConfig()
	scopeConfig.Logger = log
	r.Use(middleware.OperationScopeMiddlewareWithConfig(scopeConfig))

	// Tenancy
	tenancyRoutes := router.NewDomainGroup("tenancy", "")
	tenancyRoutes.POST("/tenants", tenantHandler.Register)
	tenancyRoutes.GET("/tenant", tenantHandler.Get)
	tenancyRoutes.PUT("/tenant/penalty-rates", tenantHandler.ConfigurePenaltyRates)
	r.Register(tenancyRoutes)

	// Physical registry: cemeteries, blocks, plots
	registryRoutes := router.NewDomainGroup("registry", "")
	registryRoutes.POST("/cemeteries", registryHandler.CreateCemetery)
	registryRoutes.GET("/cemeteries", registryHandler.ListCemeteries)
	registryRoutes.GET("/cemeteries/:id", registryHandler.GetCemetery)
	registryRoutes.PUT("/cemeteries/:id", registryHandler.UpdateCemetery)
	registryRoutes.DELETE("/cemeteries/:id", registryHandler.DeleteCemetery)
	registryRoutes.GET("/cemeteries/:id/blocks", registryHandler.ListBlocks)
	registryRoutes.POST("/blocks", registryHandler.CreateBlock)
	registryRoutes.DELETE("/blocks/:id", registryHandler.DeleteBlock)
	registryRoutes.GET("/blocks/:id/plots", registryHandler.ListPlots)
	registryRoutes.POST("/plots", registryHandler.CreatePlot)
	registryRoutes.GET("/plots/:id", registryHandler.GetPlot)
	registryRoutes.PUT("/plots/:id", registryHandler.UpdatePlot)
	registryRoutes.DELETE("/plots/:id", registryHandler.DeletePlot)
	registryRoutes.POST("/plots/:id/reserve", registryHandler.ReservePlot)
	registryRoutes.DELETE("/plots/:id/reserve", registryHandler.ReleasePlotReservation)
	registryRoutes.GET("/plots/:id/burials", lifecycleHandler.ListBurialsForPlot)
	r.Register(registryRoutes)

	// Interment lifecycle: contracts, burials, exhumations, transfers
	lifecycleRoutes := router.NewDomainGroup("lifecycle", "")
	lifecycleRoutes.POST("/contracts", lifecycleHandler.CreateContract)
	lifecycleRoutes.GET("/contracts", lifecycleHandler.ListContracts)
	lifecycleRoutes.GET("/contracts/:id", lifecycleHandler.GetContract)
	lifecycleRoutes.DELETE("/contracts/:id", lifecycleHandler.DeleteContract)
	lifecycleRoutes.POST("/burials", lifecycleHandler.CreateBurial)
	lifecycleRoutes.GET("/burials/:id", lifecycleHandler.GetBurial)
	lifecycleRoutes.DELETE("/burials/:id", lifecycleHandler.DeleteBurial)
	lifecycleRoutes.POST("/exhumations", lifecycleHandler.CreateExhumation)
	lifecycleRoutes.GET("/exhumations", lifecycleHandler.ListExhumations)
	lifecycleRoutes.GET("/exhumations/:id", lifecycleHandler.GetExhumation)
	lifecycleRoutes.DELETE("/exhumations/:id", lifecycleHandler.DeleteExhumation)
	lifecycleRoutes.POST("/transfers", lifecycleHandler.CreateTransfer)
	lifecycleRoutes.GET("/transfers", lifecycleHandler.ListTransfers)
	lifecycleRoutes.GET("/transfers/:id", lifecycleHandler.GetTransfer)
	lifecycleRoutes.DELETE("/transfers/:id", lifecycleHandler.DeleteTransfer)
	r.Register(lifecycleRoutes)

	// Receivables ledger
	billingRoutes := router.NewDomainGroup("billing", "")
	billingRoutes.GET("/receivables", receivableHandler.List)
	billingRoutes.GET("/receivables/:id", receivableHandler.Get)
	billingRoutes.GET("/receivables/source/:kind/:id", receivableHandler.ListBySource)
	billingRoutes.POST("/receivables/:id/payments", receivableHandler.RegisterPayment)
	billingRoutes.PUT("/receivables/:id/discount", receivableHandler.ApplyDiscount)
	r.Register(billingRoutes)

	// Audit trail
	auditRoutes := router.NewDomainGroup("audit", "")
	auditRoutes.GET("/audit-records", auditHandler.List)
	r.Register(auditRoutes)

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
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
