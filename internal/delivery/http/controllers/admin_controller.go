package controllers

import (
	"log/slog"
	"net/http"

	"github.com/erwannT/callForPapers/internal/delivery/http/helpers"
	"github.com/erwannT/callForPapers/internal/domain"
)

// AdminController handles committee decisions and CFP configuration.
// All routes are mounted behind the admin middleware.
type AdminController struct {
	Logger        *slog.Logger
	TalkService   domain.TalkService
	ConfigService domain.ConfigService
	sessions      *SessionController
}

// NewAdminController creates an AdminController.
func NewAdminController(logger *slog.Logger, talkSvc domain.TalkService, configSvc domain.ConfigService) *AdminController {
	return &AdminController{
		Logger:        logger,
		TalkService:   talkSvc,
		ConfigService: configSvc,
		sessions:      NewSessionController(logger, talkSvc),
	}
}

// ListSubmitted godoc
// @Summary List talks pending a decision
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.TalkListSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /api/admin/sessions [get]
func (c *AdminController) ListSubmitted(w http.ResponseWriter, r *http.Request) {
	talks, err := c.TalkService.ListSubmitted(r.Context())
	if err != nil {
		c.sessions.writeTalkError(w, r, err)
		return
	}
	if talks == nil {
		talks = []*domain.TalkUser{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talks)
}

// AcceptTalk godoc
// @Summary Accept a submitted talk
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param talkID path int true "Talk ID"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not submitted)"
// @Router /api/admin/sessions/{talkID}/accept [put]
func (c *AdminController) AcceptTalk(w http.ResponseWriter, r *http.Request) {
	talkID, ok := talkIDParam(w, r)
	if !ok {
		return
	}
	talk, err := c.TalkService.Accept(r.Context(), talkID)
	if err != nil {
		c.sessions.writeTalkError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talk)
}

// RefuseTalk godoc
// @Summary Refuse a submitted talk
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param talkID path int true "Talk ID"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not submitted)"
// @Router /api/admin/sessions/{talkID}/refuse [put]
func (c *AdminController) RefuseTalk(w http.ResponseWriter, r *http.Request) {
	talkID, ok := talkIDParam(w, r)
	if !ok {
		return
	}
	talk, err := c.TalkService.Refuse(r.Context(), talkID)
	if err != nil {
		c.sessions.writeTalkError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talk)
}

// OpenCfp godoc
// @Summary Open the call for papers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Router /api/admin/config/open [put]
func (c *AdminController) OpenCfp(w http.ResponseWriter, r *http.Request) {
	if err := c.ConfigService.OpenCfp(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"open": true})
}

// CloseCfp godoc
// @Summary Close the call for papers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Router /api/admin/config/close [put]
func (c *AdminController) CloseCfp(w http.ResponseWriter, r *http.Request) {
	if err := c.ConfigService.CloseCfp(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"open": false})
}
