package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erwannT/callForPapers/internal/delivery/http/helpers"
	"github.com/erwannT/callForPapers/internal/delivery/http/middleware"
	"github.com/erwannT/callForPapers/internal/domain"
)

// fakeConfigService implements domain.ConfigService for controller tests.
type fakeConfigService struct {
	appConfigErr error
	appConfig    *domain.ApplicationSettings
	openErr      error
	closeErr     error
	open         bool
	openCalls    int
	closeCalls   int
}

func (f *fakeConfigService) AppConfig(ctx context.Context) (*domain.ApplicationSettings, error) {
	if f.appConfigErr != nil {
		return nil, f.appConfigErr
	}
	return f.appConfig, nil
}

func (f *fakeConfigService) IsCfpOpen(ctx context.Context) (bool, error) {
	return f.open, nil
}

func (f *fakeConfigService) OpenCfp(ctx context.Context) error {
	f.openCalls++
	if f.openErr != nil {
		return f.openErr
	}
	f.open = true
	return nil
}

func (f *fakeConfigService) CloseCfp(ctx context.Context) error {
	f.closeCalls++
	if f.closeErr != nil {
		return f.closeErr
	}
	f.open = false
	return nil
}

func TestAdminController_ListSubmitted(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		submitted  []*domain.TalkUser
		wantStatus int
		wantLen    int
	}{
		{
			name: "success",
			submitted: []*domain.TalkUser{
				{ID: 1, Name: "Talk A", State: domain.StateSubmitted, OwnerID: 42, SpeakerName: "Ada", Email: "ada@example.com"},
				{ID: 2, Name: "Talk B", State: domain.StateSubmitted, OwnerID: 7},
			},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name:       "empty list is a JSON array",
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:       "service error",
			fakeErr:    errors.New("db error"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			talkFake := &fakeTalkService{listSubmittedErr: tt.fakeErr, listSubmitted: tt.submitted}
			ctrl := NewAdminController(testLogger, talkFake, &fakeConfigService{})
			req := httptest.NewRequest(http.MethodGet, "/api/admin/sessions", nil)
			req = req.WithContext(middleware.SetUserID(req.Context(), 1))
			rr := httptest.NewRecorder()

			ctrl.ListSubmitted(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Len(t, decodeTalkList(t, envelope), tt.wantLen)
			} else {
				require.NotNil(t, envelope.Error)
			}
		})
	}
}

func TestAdminController_Decide(t *testing.T) {
	tests := []struct {
		name           string
		refuse         bool
		talkID         string
		fakeErr        error
		wantStatus     int
		wantState      domain.TalkState
		wantBodySubstr string
	}{
		{
			name:       "accept",
			talkID:     "5",
			wantStatus: http.StatusOK,
			wantState:  domain.StateAccepted,
		},
		{
			name:       "refuse",
			refuse:     true,
			talkID:     "5",
			wantStatus: http.StatusOK,
			wantState:  domain.StateRefused,
		},
		{
			name:           "non-numeric id",
			talkID:         "abc",
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "numeric",
		},
		{
			name:           "not submitted",
			talkID:         "5",
			fakeErr:        domain.ErrInvalidState,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: domain.ErrInvalidState.Error(),
		},
		{
			name:           "not found",
			talkID:         "5",
			fakeErr:        domain.ErrTalkNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "talk not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			talkFake := &fakeTalkService{acceptErr: tt.fakeErr, refuseErr: tt.fakeErr}
			ctrl := NewAdminController(testLogger, talkFake, &fakeConfigService{})
			action := "accept"
			handler := ctrl.AcceptTalk
			if tt.refuse {
				action = "refuse"
				handler = ctrl.RefuseTalk
			}
			req := httptest.NewRequest(http.MethodPut, "http://test/api/admin/sessions/"+tt.talkID+"/"+action, nil)
			req.SetPathValue("talkID", tt.talkID)
			req = req.WithContext(middleware.SetUserID(req.Context(), 1))
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, tt.wantState, decodeTalk(t, envelope).State)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestAdminController_OpenCloseCfp(t *testing.T) {
	configFake := &fakeConfigService{}
	ctrl := NewAdminController(testLogger, &fakeTalkService{}, configFake)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/config/open", nil)
	rr := httptest.NewRecorder()
	ctrl.OpenCfp(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok, "data must be object")
	assert.Equal(t, true, data["open"])
	assert.Equal(t, 1, configFake.openCalls)
	assert.True(t, configFake.open)

	req = httptest.NewRequest(http.MethodPut, "/api/admin/config/close", nil)
	rr = httptest.NewRecorder()
	ctrl.CloseCfp(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	data, ok = envelope.Data.(map[string]interface{})
	require.True(t, ok, "data must be object")
	assert.Equal(t, false, data["open"])
	assert.Equal(t, 1, configFake.closeCalls)
	assert.False(t, configFake.open)
}

func TestAdminController_OpenCfpError(t *testing.T) {
	configFake := &fakeConfigService{openErr: errors.New("store down")}
	ctrl := NewAdminController(testLogger, &fakeTalkService{}, configFake)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/config/open", nil)
	rr := httptest.NewRecorder()
	ctrl.OpenCfp(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "store down")
}
