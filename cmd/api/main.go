package main

import (
	"log"

	"formpilot-api/config"
	"formpilot-api/controllers"
	"formpilot-api/middleware"
	"formpilot-api/routes"
	"formpilot-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	settings := config.LoadSettings()

	logger := config.InitLogging(settings)
	defer func() { _ = logger.Sync() }()

	if settings.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	if settings.ThrottleSecret == "" {
		logger.Warn("THROTTLE_SECRET not set, submission fingerprints use an empty key")
	}

	db, err := config.InitDB(settings)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql handle", zap.Error(err))
	}
	logger.Info("database connected", zap.String("host", settings.DBHost), zap.String("database", settings.DBDatabase))

	// Service-level repository for the public endpoint
	serviceRepo := services.NewServiceRepository(db)

	intakeOpts := []services.IntakeOption{
		services.WithIntakeLogger(logger.Named("intake")),
		services.WithFingerprintKey([]byte(settings.ThrottleSecret)),
	}
	if settings.SMTP.Enabled() {
		intakeOpts = append(intakeOpts, services.WithNotifier(services.NewMailNotifier(config.NewMailer(settings.SMTP))))
	} else {
		logger.Warn("SMTP not configured, submission notifications disabled")
	}
	intakeService := services.NewIntakeService(serviceRepo, serviceRepo, intakeOpts...)

	var identity services.IdentityAdmin = services.NoopIdentityAdmin{}
	if settings.AuthAdminURL != "" {
		identity = services.NewHTTPIdentityAdmin(settings.AuthAdminURL, settings.AuthServiceKey)
	} else {
		logger.Warn("AUTH_ADMIN_URL not set, account deletion will not remove identity users")
	}

	if settings.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(settings.AllowedOrigins))

	// Prometheus metrics on /metrics
	routes.SetupMetrics(router, "formpilot")

	routes.SetupRoutes(router, routes.Dependencies{
		Intake: controllers.NewIntakeController(intakeService, logger.Named("intake")),
		Dashboard: controllers.NewDashboardController(
			services.NewFormService(db),
			services.NewSubmissionService(db),
			services.NewAccountService(db, identity, logger.Named("account")),
			settings.BaseURL,
			logger.Named("dashboard"),
		),
		Contact:    controllers.NewContactController(services.NewContactService(db), logger.Named("contact")),
		Ready:      controllers.Ready(sqlDB),
		JWTSecret:  []byte(settings.JWTSecret),
		JWTIssuer:  settings.JWTIssuer,
		AdminEmail: settings.AdminEmail,
	})

	mode := "development"
	if settings.GinMode == "release" {
		mode = "production"
	}
	logger.Info("server starting", zap.String("port", settings.ServerPort), zap.String("mode", mode))

	if err := router.Run(":" + settings.ServerPort); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
