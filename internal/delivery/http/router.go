package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/erwannT/callForPapers/internal/delivery/http/controllers"
	"github.com/erwannT/callForPapers/internal/delivery/http/middleware"
	"github.com/erwannT/callForPapers/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Restricted routes go through the verified-token middleware; admin routes
// additionally require the admin claim.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	sessionController *controllers.SessionController,
	settingsController *controllers.SettingsController,
	applicationController *controllers.ApplicationController,
	adminController *controllers.AdminController,
) *http.ServeMux {
	mux := http.NewServeMux()

	verified := middleware.RequireVerified(verifier, logger)
	admin := middleware.RequireAdmin(verifier, logger)

	// Public
	mux.HandleFunc("GET /api/settings/serviceproviders", settingsController.GetServiceProviders)
	mux.HandleFunc("GET /api/settings/talk/formats", settingsController.GetTalkFormats)
	mux.HandleFunc("GET /api/settings/talk/tracks", verified(settingsController.GetTracks))
	mux.HandleFunc("GET /api/application", applicationController.GetApplicationSettings)

	// Auth
	mux.HandleFunc("POST /api/auth/signup", authController.SignUp)
	mux.HandleFunc("POST /api/auth/login", authController.Login)
	mux.HandleFunc("GET /api/auth/verify/{token}", authController.VerifyEmail)

	// Restricted: sessions
	mux.HandleFunc("POST /api/restricted/sessions", verified(sessionController.SubmitTalk))
	mux.HandleFunc("GET /api/restricted/sessions", verified(sessionController.ListTalks))
	mux.HandleFunc("GET /api/restricted/sessions/{talkID}", verified(sessionController.GetTalk))
	mux.HandleFunc("PUT /api/restricted/sessions/{talkID}", verified(sessionController.SubmitDraft))
	mux.HandleFunc("PUT /api/restricted/sessions/{talkID}/confirm", verified(sessionController.ConfirmTalk))

	// Restricted: drafts
	mux.HandleFunc("POST /api/restricted/drafts", verified(sessionController.AddDraft))
	mux.HandleFunc("GET /api/restricted/drafts", verified(sessionController.ListDrafts))
	mux.HandleFunc("GET /api/restricted/drafts/{talkID}", verified(sessionController.GetDraft))
	mux.HandleFunc("PUT /api/restricted/drafts/{talkID}", verified(sessionController.EditDraft))
	mux.HandleFunc("DELETE /api/restricted/drafts/{talkID}", verified(sessionController.DeleteDraft))

	// Admin
	mux.HandleFunc("GET /api/admin/sessions", admin(adminController.ListSubmitted))
	mux.HandleFunc("PUT /api/admin/sessions/{talkID}/accept", admin(adminController.AcceptTalk))
	mux.HandleFunc("PUT /api/admin/sessions/{talkID}/refuse", admin(adminController.RefuseTalk))
	mux.HandleFunc("PUT /api/admin/config/open", admin(adminController.OpenCfp))
	mux.HandleFunc("PUT /api/admin/config/close", admin(adminController.CloseCfp))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
