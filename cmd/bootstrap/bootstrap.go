package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-dashboard/config"
	deliveryHttp "go-clinic-dashboard/internal/delivery/http"
	"go-clinic-dashboard/internal/delivery/http/handler"
	"go-clinic-dashboard/internal/delivery/http/middleware"
	"go-clinic-dashboard/internal/domain/entity"
	"go-clinic-dashboard/internal/infrastructure/cache"
	"go-clinic-dashboard/internal/infrastructure/database"
	"go-clinic-dashboard/internal/infrastructure/metrics"
	"go-clinic-dashboard/internal/repository"
	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/internal/service"
	"go-clinic-dashboard/internal/usecase"
	"go-clinic-dashboard/pkg/apiclient"
	"go-clinic-dashboard/pkg/jwt"
	"go-clinic-dashboard/pkg/timezone"
	"go-clinic-dashboard/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Registry    *resource.Registry
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App.LogLevel)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// The activity journal is the only relational store and is optional.
	if cfg.DB.Enabled {
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Timezone, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		log.Info("Database connected successfully")
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	app.Registry = resource.NewRegistry(cfg.Dashboard.ScreenIdleTTL, log)
	app.Server = initializeServer(cfg, log, app.DB, redisClient, app.Registry)

	return app, nil
}

func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %q, falling back to info", level)
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, registry *resource.Registry) *http.Server {
	loc := timezone.Location(cfg.App.Timezone)
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	dashboardMetrics := metrics.NewDashboardMetrics(reg, registry.Mounted)

	// Upstream client; the bearer token comes from the session on each request context
	client := apiclient.New(
		cfg.Upstream.BaseURL,
		cfg.Upstream.Timeout,
		apiclient.WithTokenSource(service.UpstreamTokenSource()),
		apiclient.WithRecorder(dashboardMetrics),
		apiclient.WithLogger(log),
	)

	// Activity journal
	var activity service.ActivityService
	if db != nil {
		activity = service.NewActivityService(db, log, repository.NewActivityLogRepository())
	} else {
		activity = service.NewNoopActivityService(log)
	}

	// Repositories
	authGateway := repository.NewAuthGateway(client)
	sessionRepo := repository.NewSessionRepository(redisClient)
	admissionGateway := repository.NewRestResourceRepository[entity.Admission](client, repository.AdmissionsPath)
	admissionRepo := repository.NewAdmissionRepository(client)

	// Resource screens
	usecase.RegisterScreens(registry, client, resource.Deps{
		Validator:      customValidator,
		Catalogs:       repository.NewCatalogRepository(client),
		Journal:        activity,
		Location:       loc,
		ToastDelay:     cfg.Dashboard.ToastDelay,
		CurrencySymbol: cfg.Dashboard.CurrencySymbol,
		Log:            log,
	})

	// Usecases
	screenUsecase := usecase.NewScreenUsecase(registry, log)
	authUsecase := usecase.NewAuthUsecase(authGateway, sessionRepo, registry, activity, jwtService, log)
	admissionUsecase := usecase.NewAdmissionUsecase(
		admissionGateway,
		admissionRepo,
		registry,
		activity,
		service.NewRuleInsightProvider(cfg.Dashboard.Insights, loc),
		cfg.Dashboard.Insights.HighRiskThreshold,
		loc,
		log,
	)
	activityLogUsecase := usecase.NewActivityLogUsecase(activity, log)

	// Handlers
	errorResponder := handler.NewErrorResponder(authUsecase, log)
	healthHandler := handler.NewHealthHandler(healthChecks(db, redisClient))
	authHandler := handler.NewAuthHandler(authUsecase, screenUsecase, customValidator)
	screenHandler := handler.NewScreenHandler(screenUsecase, customValidator, errorResponder)
	admissionHandler := handler.NewAdmissionHandler(admissionUsecase, customValidator, errorResponder)
	activityLogHandler := handler.NewActivityLogHandler(activityLogUsecase, errorResponder)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authUsecase)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	router := deliveryHttp.NewRouter(
		healthHandler,
		authHandler,
		screenHandler,
		admissionHandler,
		activityLogHandler,
		authMiddleware,
		corsMiddleware,
		registry,
		dashboardMetrics,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func healthChecks(db *gorm.DB, redisClient *redis.Client) map[string]handler.Check {
	checks := map[string]handler.Check{
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}
	if db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return checks
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops mounted screens and closes the database and Redis connections.
func (app *App) Close() {
	if app.Registry != nil {
		app.Registry.Stop()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
