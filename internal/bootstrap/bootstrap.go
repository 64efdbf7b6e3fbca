// Package bootstrap builds the application from configuration: logger,
// database, repositories, services, controllers and the gin router.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	appAuth "github.com/yigit/benchtrack/internal/app/auth"
	appControllers "github.com/yigit/benchtrack/internal/app/controllers"
	appMigrations "github.com/yigit/benchtrack/internal/app/migrations"
	appRepos "github.com/yigit/benchtrack/internal/app/repositories"
	appRoutes "github.com/yigit/benchtrack/internal/app/routes"
	appServices "github.com/yigit/benchtrack/internal/app/services"
	"github.com/yigit/benchtrack/internal/config"
	"github.com/yigit/benchtrack/internal/db"
	appMiddleware "github.com/yigit/benchtrack/internal/middleware"
	"github.com/yigit/benchtrack/internal/pkg/attendancebot"
	pkgAuth "github.com/yigit/benchtrack/internal/pkg/auth"
	"github.com/yigit/benchtrack/internal/pkg/email"
	"github.com/yigit/benchtrack/internal/pkg/filestorage"
	"github.com/yigit/benchtrack/internal/pkg/logger"
	"github.com/yigit/benchtrack/internal/pkg/metrics"
	"github.com/yigit/benchtrack/internal/pkg/ratelimit"
	"github.com/yigit/benchtrack/internal/pkg/resume"
	"github.com/yigit/benchtrack/internal/pkg/training"
	"github.com/yigit/benchtrack/internal/pkg/validation"
	"github.com/yigit/benchtrack/internal/pkg/websocket"
	"github.com/yigit/benchtrack/internal/seed"
)

// DefaultConfigPath is used when no -config flag or CONFIG_PATH is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	AuthService         appServices.AuthService
	ConsultantService   appServices.ConsultantService
	OpportunityService  appServices.OpportunityService
	AttendanceService   appServices.AttendanceService
	ResumeService       appServices.ResumeService
	TrainingService     appServices.TrainingService
	ReportService       appServices.ReportService
	DashboardService    appServices.DashboardService
	NotificationService appServices.NotificationService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService

	Hub         *websocket.Hub
	Limiter     *ratelimit.Limiter
	Extractor   *resume.BreakerExtractor
	FileStorage *filestorage.LocalStorage
	Logger      zerolog.Logger
}

// ConfigPath returns CONFIG_PATH or the default location
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "benchtrack",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the pool without touching the schema
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// RunMigrations applies pending migrations from the configured directory
func RunMigrations(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	dir := cfg.Database.MigrationsDir
	if _, err := os.Stat(dir); err != nil {
		lgr.Error().Str("path", dir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}

	applied, err := appMigrations.NewMigrator(pool, lgr).MigrateFromDirectory(ctx, dir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations up to date.")
	return nil
}

// SetupDatabase connects, migrates and optionally seeds.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := ConnectDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, cfg, pool, lgr); err != nil {
		pool.Close()
		return nil, err
	}

	if cfg.Database.Seed {
		if err := seed.NewSeeder(pool, lgr).CreateDefaultData(ctx); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}
	return pool, nil
}

// NewResumeExtractor wraps the PDF extractor in the configured breaker and
// mirrors its state into the breaker gauge
func NewResumeExtractor(cfg *config.Config, lgr zerolog.Logger) *resume.BreakerExtractor {
	return resume.NewBreakerExtractor(resume.PDFExtractor{MaxPages: cfg.Resume.MaxPages}, resume.BreakerConfig{
		Name:             "resume-extractor",
		FailureThreshold: cfg.Resume.FailureThreshold,
		Timeout:          config.Duration(cfg.Resume.BreakerTimeout, 30*time.Second),
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetBreakerOpen(to == gobreaker.StateOpen)
			lgr.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Resume extractor breaker changed state")
		},
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.BaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  config.Duration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: config.Duration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.TrainingRepository)

	mailer := email.NewEmailService(email.SMTPConfig{
		Enabled:   cfg.SMTP.Enabled,
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr.With().Str("component", "email").Logger())

	deps.Hub = websocket.NewHub(lgr.With().Str("component", "websocket").Logger())
	deps.Extractor = NewResumeExtractor(cfg, lgr)
	if cfg.RateLimit.Enabled {
		deps.Limiter = ratelimit.New(cfg.RateLimit.Requests, config.Duration(cfg.RateLimit.Window, time.Minute))
	}

	repos := deps.Repos
	deps.NotificationService = appServices.NewNotificationService(repos.NotificationRepository, deps.Hub, lgr)
	deps.AuthService = appServices.NewAuthService(
		repos.UserRepository,
		repos.TokenRepository,
		repos.ConsultantRepository,
		deps.JWTService,
		mailer,
		lgr,
	)
	deps.ConsultantService = appServices.NewConsultantService(repos.ConsultantRepository, repos.ApplicationRepository, lgr)
	deps.OpportunityService = appServices.NewOpportunityService(
		repos.OpportunityRepository,
		repos.ApplicationRepository,
		repos.ConsultantRepository,
		deps.NotificationService,
		mailer,
		lgr,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		repos.AttendanceRepository,
		attendancebot.New(repos.AttendanceBotStore),
		lgr,
	)
	deps.ResumeService = appServices.NewResumeService(
		repos.ConsultantRepository,
		repos.ResumeRepository,
		deps.FileStorage,
		resume.NewAnalyzer(),
		deps.Extractor,
		deps.NotificationService,
		cfg.Storage.MaxUploadSize,
		lgr,
	)
	deps.TrainingService = appServices.NewTrainingService(
		repos.ConsultantRepository,
		repos.OpportunityRepository,
		repos.TrainingRepository,
		training.NewEngine(nil),
		deps.NotificationService,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(
		repos.ConsultantRepository,
		repos.OpportunityRepository,
		repos.ApplicationRepository,
		repos.AttendanceRepository,
		repos.ResumeRepository,
		lgr,
	)
	deps.DashboardService = appServices.NewDashboardService(repos.DashboardRepository, repos.ConsultantRepository, deps.Extractor, lgr)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, lgr),
		Consultant:   appControllers.NewConsultantController(deps.ConsultantService, deps.OpportunityService, lgr),
		Opportunity:  appControllers.NewOpportunityController(deps.OpportunityService, lgr),
		Attendance:   appControllers.NewAttendanceController(deps.AttendanceService, lgr),
		Resume:       appControllers.NewResumeController(deps.ResumeService, cfg.Storage.MaxUploadSize, lgr),
		Training:     appControllers.NewTrainingController(deps.TrainingService, deps.AuthzService, lgr),
		Report:       appControllers.NewReportController(deps.ReportService, lgr),
		Dashboard:    appControllers.NewDashboardController(deps.DashboardService, lgr),
		Notification: appControllers.NewNotificationController(deps.NotificationService, lgr),
	}

	return deps, nil
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
	router.MaxMultipartMemory = cfg.Storage.MaxUploadSize
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.CORS.AllowedOrigins),
	)
	if cfg.Metrics.Enabled {
		router.Use(appMiddleware.Metrics())
	}

	if strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		router.Static(cfg.Storage.BaseURL, cfg.Storage.Path)
	}
	appRoutes.SetupSwagger(router)

	opts := appRoutes.Options{
		Limiter:   deps.Limiter,
		WSHandler: websocket.NewHandler(deps.Hub, deps.NotificationService, cfg.CORS.AllowedOrigins, lgr),
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, opts)

	return router
}
