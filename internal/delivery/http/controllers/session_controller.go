package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erwannT/callForPapers/internal/delivery/http/helpers"
	"github.com/erwannT/callForPapers/internal/delivery/http/middleware"
	"github.com/erwannT/callForPapers/internal/domain"
)

// TalkRequest is the request body for creating or updating a talk.
type TalkRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	References  string `json:"references"`
	Difficulty  int    `json:"difficulty"`
	TrackID     int    `json:"trackId"`
	FormatID    int    `json:"formatId"`
}

// Validate implements Validator.
func (t TalkRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, "name is required")
	}
	if t.Difficulty < 0 || t.Difficulty > 3 {
		errs = append(errs, "difficulty must be between 0 and 3")
	}
	return errs
}

func (t TalkRequest) toTalkUser(id int) *domain.TalkUser {
	return &domain.TalkUser{
		ID:          id,
		Name:        t.Name,
		Description: t.Description,
		References:  t.References,
		Difficulty:  t.Difficulty,
		TrackID:     t.TrackID,
		FormatID:    t.FormatID,
	}
}

// TalkSuccessResponse is the success envelope for single-talk endpoints.
type TalkSuccessResponse struct {
	Data  *domain.TalkUser  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TalkListSuccessResponse is the success envelope for talk list endpoints.
type TalkListSuccessResponse struct {
	Data  []*domain.TalkUser `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// SessionController handles the restricted session and draft endpoints.
type SessionController struct {
	Logger  *slog.Logger
	Service domain.TalkService
}

// NewSessionController creates a SessionController with the given logger and service.
func NewSessionController(logger *slog.Logger, svc domain.TalkService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// writeTalkError maps domain sentinel errors to their HTTP status. Anything
// unrecognized is a 500.
func (c *SessionController) writeTalkError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrTalkNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "talk not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "talk owned by another user")
	case errors.Is(err, domain.ErrCfpClosed):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "call for papers is closed")
	case errors.Is(err, domain.ErrInvalidState):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// userID pulls the authenticated user id the auth middleware stored.
func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, domain.ErrNotVerified.Error())
	}
	return id, ok
}

func talkIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("talkID"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "talk id must be numeric")
		return 0, false
	}
	return id, true
}

// SubmitTalk godoc
// @Summary Submit a talk
// @Description Create a talk directly in SUBMITTED state. Sends a confirmation email to the speaker; the talk and the email are a single unit.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TalkRequest true "Talk data"
// @Success 201 {object} controllers.TalkSuccessResponse "data contains the submitted talk"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (CFP closed)"
// @Router /api/restricted/sessions [post]
func (c *SessionController) SubmitTalk(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req TalkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	saved, err := c.Service.Submit(r.Context(), uid, req.toTalkUser(0))
	if err != nil {
		c.writeTalkError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, saved)
}

// ListTalks godoc
// @Summary List the caller's decided talks
// @Description Returns the caller's talks in CONFIRMED, ACCEPTED, or REFUSED state.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.TalkListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/restricted/sessions [get]
func (c *SessionController) ListTalks(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	talks, err := c.Service.FindAll(r.Context(), uid, domain.StateConfirmed, domain.StateAccepted, domain.StateRefused)
	if err != nil {
		c.writeTalkError(w, r, err)
		return
	}
	if talks == nil {
		talks = []*domain.TalkUser{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talks)
}

// GetTalk godoc
// @Summary Get one of the caller's talks
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param talkID path int true "Talk ID"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/restricted/sessions/{talkID} [get]
func (c *SessionController) GetTalk(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	talkID, ok := talkIDParam(w, r)
	if !ok {
		return
	}
	talk, err := c.Service.GetOne(r.Context(), uid, talkID)
	if err != nil {
		c.writeTalkError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talk)
}

// SubmitDraft godoc
// @Summary Submit a draft
// @Description Apply final edits and move a draft to SUBMITTED. Sends the confirmation email.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param talkID path int true "Talk ID"
// @Param body body TalkRequest true "Final talk data"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not a draft)"
// @Router /api/restricted/sessions/{talkID} [put]
func (c *SessionController) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	talkID, ok := talkIDParam(w, r)
	if !ok {
		return
	}
	var req TalkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	saved, err := c.Service.SubmitDraft(r.Context(), uid, req.toTalkUser(talkID))
	if err != nil {
		c.writeTalkError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, saved)
}

// ConfirmTalk godoc
// @Summary Confirm an accepted talk
// @Description The speaker confirms an ACCEPTED talk will be given.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param talkID path int true "Talk ID"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not accepted)"
// @Router /api/restricted/sessions/{talkID}/confirm [put]
func (c *SessionController) ConfirmTalk(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	talkID, ok := talkIDParam(w, r)
	if !ok {
		return
	}
	talk, err := c.Service.Confirm(r.Context(), uid, talkID)
	if err != nil {
		c.writeTalkError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talk)
}

// AddDraft godoc
// @Summary Create a draft
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TalkRequest true "Draft data"
// @Success 201 {object} controllers.TalkSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (CFP closed)"
// @Router /api/restricted/drafts [post]
func (c *SessionController) AddDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req TalkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	draft, err := c.Service.AddDraft(r.Context(), uid, req.toTalkUser(0))
	if err != nil {
		c.writeTalkError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, draft)
}

// ListDrafts godoc
// @Summary List the caller's drafts
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.TalkListSuccessResponse
// @Router /api/restricted/drafts [get]
func (c *SessionController) ListDrafts(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	drafts, err := c.Service.FindAll(r.Context(), uid, domain.StateDraft)
	if err != nil {
		c.writeTalkError(w, r, err)
		return
	}
	if drafts == nil {
		drafts = []*domain.TalkUser{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, drafts)
}

// GetDraft godoc
// @Summary Get one of the caller's drafts
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param talkID path int true "Talk ID"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/restricted/drafts/{talkID} [get]
func (c *SessionController) GetDraft(w http.ResponseWriter, r *http.Request) {
	c.GetTalk(w, r)
}

// EditDraft godoc
// @Summary Edit a draft
// @Tags drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param talkID path int true "Talk ID"
// @Param body body TalkRequest true "Draft data"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not a draft)"
// @Router /api/restricted/drafts/{talkID} [put]
func (c *SessionController) EditDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	talkID, ok := talkIDParam(w, r)
	if !ok {
		return
	}
	var req TalkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Service.EditDraft(r.Context(), uid, req.toTalkUser(talkID))
	if err != nil {
		c.writeTalkError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteDraft godoc
// @Summary Delete a draft
// @Description Removes a draft and returns the deleted representation.
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Param talkID path int true "Talk ID"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/restricted/drafts/{talkID} [delete]
func (c *SessionController) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	talkID, ok := talkIDParam(w, r)
	if !ok {
		return
	}
	deleted, err := c.Service.DeleteDraft(r.Context(), uid, talkID)
	if err != nil {
		c.writeTalkError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deleted)
}
