package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/campusconnect/backend/internal/app/controllers"
	appMigrations "github.com/campusconnect/backend/internal/app/migrations"
	appRepos "github.com/campusconnect/backend/internal/app/repositories"
	appRoutes "github.com/campusconnect/backend/internal/app/routes"
	appServices "github.com/campusconnect/backend/internal/app/services"
	"github.com/campusconnect/backend/internal/config"
	"github.com/campusconnect/backend/internal/db"
	appMiddleware "github.com/campusconnect/backend/internal/middleware"
	pkgAuth "github.com/campusconnect/backend/internal/pkg/auth"
	"github.com/campusconnect/backend/internal/pkg/email"
	"github.com/campusconnect/backend/internal/pkg/logger"
	"github.com/campusconnect/backend/internal/pkg/tracing"
	"github.com/campusconnect/backend/internal/pkg/websocket"
	"github.com/campusconnect/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Hub            *websocket.Hub
	Notifications  *websocket.Handler
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: cfg.Tracing.ServiceName,
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupTracing installs the tracer provider. The returned function flushes it.
func SetupTracing(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (tracing.ShutdownFunc, error) {
	return tracing.Setup(ctx, tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		Insecure:    cfg.Tracing.Insecure,
	}, lgr)
}

// SetupDatabase establishes the database connection, runs migrations and seeds the admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	dbPool, err := db.NewPool(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).Up(); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, appRepos.NewUserRepository(dbPool), cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
// The notification hub runs until ctx is cancelled.
func BuildDependencies(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenTTL:    cfg.TokenTTL(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	smtpConfig := email.SMTPConfig{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Username:  cfg.Mail.Username,
		Password:  cfg.Mail.Password,
		FromName:  "CampusConnect",
		FromEmail: cfg.Mail.From,
		UseTLS:    cfg.Mail.Port == 465,
	}
	mailer := email.NewEmailService(smtpConfig, lgr.With().Str("component", "email").Logger())
	if !smtpConfig.Configured() {
		lgr.Warn().Msg("Mail is not configured, outgoing mail will be skipped")
	}

	deps.Hub = websocket.NewHub(lgr.With().Str("component", "notifications").Logger())
	go deps.Hub.Run(ctx)
	deps.Notifications = websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, mailer, deps.Hub, lgr)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository, lgr)

	svc := deps.Services
	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(svc.Auth, lgr),
		Group:      appControllers.NewGroupController(svc.Group, lgr),
		Club:       appControllers.NewClubController(svc.Club, lgr),
		Event:      appControllers.NewEventController(svc.Event, lgr),
		Connection: appControllers.NewConnectionController(svc.Connection, lgr),
		Alumni:     appControllers.NewAlumniController(svc.Alumni, lgr),
		Project:    appControllers.NewProjectController(svc.Project, lgr),
		Admin:      appControllers.NewAdminController(svc.Admin, svc.Club, lgr),
		Health:     appControllers.NewHealthController(dbPool, lgr),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		requestid.New(),
		cors.New(corsConfig(cfg.Server.AllowedOrigins)),
		tracing.Middleware(),
		appMiddleware.RequestLogger(lgr),
	)
	router.NoRoute(appMiddleware.NotFound())

	appRoutes.SetupSwagger(router, "")
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.Notifications)

	router.GET("/ping", deps.Controllers.Health.Ping)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", requestIDHeader)
	c.ExposeHeaders = []string{requestIDHeader}
	c.AllowCredentials = true
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c
}

const requestIDHeader = "X-Request-ID"
