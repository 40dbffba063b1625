package controllers

import (
	"log/slog"
	"net/http"

	"github.com/erwannT/callForPapers/config"
	"github.com/erwannT/callForPapers/internal/delivery/http/helpers"
	"github.com/erwannT/callForPapers/internal/domain"
)

// FormatListSuccessResponse is the success envelope for GET /api/settings/talk/formats.
type FormatListSuccessResponse struct {
	Data  []*domain.TalkFormat `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// TrackListSuccessResponse is the success envelope for GET /api/settings/talk/tracks.
type TrackListSuccessResponse struct {
	Data  []*domain.Track   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SettingsController serves reference data and service provider settings.
type SettingsController struct {
	Logger    *slog.Logger
	Service   domain.TalkService
	Providers config.ServiceProviderSettings
}

// NewSettingsController creates a SettingsController.
func NewSettingsController(logger *slog.Logger, svc domain.TalkService, providers config.ServiceProviderSettings) *SettingsController {
	return &SettingsController{
		Logger:    logger,
		Service:   svc,
		Providers: providers,
	}
}

// GetServiceProviders godoc
// @Summary Get OAuth service provider settings
// @Tags settings
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the provider client ids"
// @Router /api/settings/serviceproviders [get]
func (c *SettingsController) GetServiceProviders(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Providers)
}

// GetTalkFormats godoc
// @Summary List talk formats
// @Tags settings
// @Produce json
// @Success 200 {object} controllers.FormatListSuccessResponse
// @Router /api/settings/talk/formats [get]
func (c *SettingsController) GetTalkFormats(w http.ResponseWriter, r *http.Request) {
	formats, err := c.Service.TalkFormats(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if formats == nil {
		formats = []*domain.TalkFormat{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, formats)
}

// GetTracks godoc
// @Summary List tracks
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.TrackListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/settings/talk/tracks [get]
func (c *SettingsController) GetTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := c.Service.Tracks(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if tracks == nil {
		tracks = []*domain.Track{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tracks)
}
