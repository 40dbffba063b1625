package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erwannT/callForPapers/config"
	"github.com/erwannT/callForPapers/internal/delivery/http/helpers"
	"github.com/erwannT/callForPapers/internal/domain"
)

func TestApplicationController_GetApplicationSettings(t *testing.T) {
	tests := []struct {
		name       string
		fakeErr    error
		settings   *domain.ApplicationSettings
		wantStatus int
	}{
		{
			name: "success",
			settings: &domain.ApplicationSettings{
				EventName:    "GopherConf",
				Community:    "Gophers",
				Date:         "2026-11-12",
				DecisionDate: "2026-09-30",
				ReleaseDate:  "2026-10-05",
				Open:         true,
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "service error",
			fakeErr:    errors.New("store down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeConfigService{appConfigErr: tt.fakeErr, appConfig: tt.settings}
			ctrl := NewApplicationController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/api/application", nil)
			rr := httptest.NewRecorder()

			ctrl.GetApplicationSettings(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var got domain.ApplicationSettings
				require.NoError(t, json.Unmarshal(dataBytes, &got))
				assert.Equal(t, *tt.settings, got)
			} else {
				require.NotNil(t, envelope.Error)
			}
		})
	}
}

func TestSettingsController_GetServiceProviders(t *testing.T) {
	providers := config.ServiceProviderSettings{GoogleClientID: "g-123", GithubClientID: "gh-456"}
	ctrl := NewSettingsController(testLogger, &fakeTalkService{}, providers)
	req := httptest.NewRequest(http.MethodGet, "/api/settings/serviceproviders", nil)
	rr := httptest.NewRecorder()

	ctrl.GetServiceProviders(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok, "data must be object")
	assert.Equal(t, "g-123", data["googleClientId"])
	assert.Equal(t, "gh-456", data["githubClientId"])
}

func TestSettingsController_ReferenceData(t *testing.T) {
	fake := &fakeTalkService{
		formats: []*domain.TalkFormat{{ID: 1, Name: "Conference", DurationMinutes: 50}},
		tracks:  []*domain.Track{{ID: 2, Libelle: "Cloud", Description: "Cloud and infra"}},
	}
	ctrl := NewSettingsController(testLogger, fake, config.ServiceProviderSettings{})

	req := httptest.NewRequest(http.MethodGet, "/api/settings/talk/formats", nil)
	rr := httptest.NewRecorder()
	ctrl.GetTalkFormats(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	dataBytes, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var formats []domain.TalkFormat
	require.NoError(t, json.Unmarshal(dataBytes, &formats))
	require.Len(t, formats, 1)
	assert.Equal(t, "Conference", formats[0].Name)

	req = httptest.NewRequest(http.MethodGet, "/api/settings/talk/tracks", nil)
	rr = httptest.NewRecorder()
	ctrl.GetTracks(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	dataBytes, err = json.Marshal(envelope.Data)
	require.NoError(t, err)
	var tracks []domain.Track
	require.NoError(t, json.Unmarshal(dataBytes, &tracks))
	require.Len(t, tracks, 1)
	assert.Equal(t, "Cloud", tracks[0].Libelle)
}

func TestSettingsController_EmptyListsAreArrays(t *testing.T) {
	ctrl := NewSettingsController(testLogger, &fakeTalkService{}, config.ServiceProviderSettings{})

	req := httptest.NewRequest(http.MethodGet, "/api/settings/talk/formats", nil)
	rr := httptest.NewRecorder()
	ctrl.GetTalkFormats(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"data":[]`)
}
