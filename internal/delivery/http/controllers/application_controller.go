package controllers

import (
	"log/slog"
	"net/http"

	"github.com/erwannT/callForPapers/internal/delivery/http/helpers"
	"github.com/erwannT/callForPapers/internal/domain"
)

// SettingsSuccessResponse is the success envelope for GET /api/application.
type SettingsSuccessResponse struct {
	Data  *domain.ApplicationSettings `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// ApplicationController serves the public application settings read model.
type ApplicationController struct {
	Logger  *slog.Logger
	Service domain.ConfigService
}

// NewApplicationController creates an ApplicationController.
func NewApplicationController(logger *slog.Logger, svc domain.ConfigService) *ApplicationController {
	return &ApplicationController{
		Logger:  logger,
		Service: svc,
	}
}

// GetApplicationSettings godoc
// @Summary Get application settings
// @Description Event name, community, dates, and whether the CFP is open.
// @Tags application
// @Produce json
// @Success 200 {object} controllers.SettingsSuccessResponse
// @Router /api/application [get]
func (c *ApplicationController) GetApplicationSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.Service.AppConfig(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, settings)
}
