package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/erwannT/callForPapers/config"
	"github.com/erwannT/callForPapers/internal/adapters/auth"
	"github.com/erwannT/callForPapers/internal/adapters/email"
	delivery "github.com/erwannT/callForPapers/internal/delivery/http"
	"github.com/erwannT/callForPapers/internal/delivery/http/controllers"
	"github.com/erwannT/callForPapers/internal/delivery/http/middleware"
	"github.com/erwannT/callForPapers/internal/repository/postgres"
	"github.com/erwannT/callForPapers/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Call for Papers API
// @version 1.0
// @description Backend for a conference call-for-papers: speakers submit and
// @description manage talks, the committee accepts or refuses them, and
// @description accepted speakers confirm their presence.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	talkRepo := postgres.NewTalkRepository(db)
	userRepo := postgres.NewUserRepository(db)
	configRepo := postgres.NewCfpConfigRepository(db)
	refRepo := postgres.NewReferenceRepository(db)
	txManager := postgres.NewTxManager(db)

	// Adapters
	tokenIssuer, tokenVerifier := auth.NewJWTCodec(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	mailer, err := email.NewMailer(cfg.Email)
	if err != nil {
		logger.Error("failed to set up mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	configService := services.NewConfigService(configRepo, logger, serviceTimeout)
	talkService := services.NewTalkService(talkRepo, refRepo, userRepo, configService, emailService, txManager, cfg.Hostname, serviceTimeout)
	userService := services.NewUserService(userRepo, hasher, tokenIssuer, tokenVerifier, cfg.TokenExpiry, emailService, txManager, cfg.Hostname)

	// Controllers
	authController := controllers.NewAuthController(logger, userService)
	sessionController := controllers.NewSessionController(logger, talkService)
	settingsController := controllers.NewSettingsController(logger, talkService, cfg.ServiceProviders)
	applicationController := controllers.NewApplicationController(logger, configService)
	adminController := controllers.NewAdminController(logger, talkService, configService)

	mux := delivery.NewRouter(
		logger,
		tokenVerifier,
		authController,
		sessionController,
		settingsController,
		applicationController,
		adminController,
	)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
