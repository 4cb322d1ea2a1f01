package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/credential"
	"github.com/vfg2006/budget-review-api/internal/api/handler"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/pkg/apiErrors"
)

type fakeTokenService struct {
	metadata   *domain.TokenMetadata
	refreshErr error
	refreshed  int
}

func (f *fakeTokenService) Status(ctx context.Context) (*domain.TokenMetadata, error) {
	return f.metadata, nil
}

func (f *fakeTokenService) RefreshToken(ctx context.Context) (string, error) {
	f.refreshed++
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	return "novo-token", nil
}

type fakeCronJob struct {
	running bool
	runs    int
}

func (f *fakeCronJob) TriggerManualSync() bool {
	if f.running {
		return false
	}
	f.runs++
	return true
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": f.running}
}

func TestGetTokenStatus(t *testing.T) {
	expiresAt := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	services := map[domain.Platform]handler.TokenService{
		domain.PlatformMeta: &fakeTokenService{metadata: &domain.TokenMetadata{
			Platform:  domain.PlatformMeta,
			Status:    domain.TokenStatusValid,
			ExpiresAt: &expiresAt,
		}},
	}
	h := handler.GetTokenStatus(services)

	t.Run("Metadados sem o valor do token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, withParams(httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Param{Key: "platform", Value: "meta"}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"valid"`)
		assert.NotContains(t, rec.Body.String(), "novo-token")
	})

	t.Run("Plataforma sem integração - 503", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, withParams(httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Param{Key: "platform", Value: "google"}))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, apiErrors.ErrPlatformNotConfigured, decodeAPIError(t, rec).Code)
	})

	t.Run("Plataforma desconhecida - 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, withParams(httptest.NewRequest(http.MethodGet, "/", nil), httprouter.Param{Key: "platform", Value: "tiktok"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	tests := []struct {
		name       string
		refreshErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Renovação com sucesso",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Segredos ausentes - 424",
			refreshErr: fmt.Errorf("%w: client_secret", credential.ErrCredentialsIncomplete),
			wantStatus: http.StatusFailedDependency,
			wantCode:   apiErrors.ErrCredentialsIncomplete,
		},
		{
			name:       "Tentativas esgotadas - 502",
			refreshErr: fmt.Errorf("%w: 3 tentativas", credential.ErrTokenRefreshFailed),
			wantStatus: http.StatusBadGateway,
			wantCode:   apiErrors.ErrTokenRefreshFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeTokenService{
				metadata:   &domain.TokenMetadata{Platform: domain.PlatformGoogle, Status: domain.TokenStatusValid},
				refreshErr: tt.refreshErr,
			}
			h := handler.RefreshToken(map[domain.Platform]handler.TokenService{domain.PlatformGoogle: service})

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, withParams(httptest.NewRequest(http.MethodPost, "/", nil), httprouter.Param{Key: "platform", Value: "google"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, 1, service.refreshed)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
			}
		})
	}
}

func TestRunCronJob(t *testing.T) {
	idle := &fakeCronJob{}
	busy := &fakeCronJob{running: true}
	services := handler.CronJobServices{
		handler.CronJobTypeBudgetReview: idle,
		"outro":                         busy,
	}
	h := handler.RunCronJob(services)

	run := func(cronType string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, withParams(httptest.NewRequest(http.MethodPost, "/", nil), httprouter.Param{Key: "type", Value: cronType}))
		return rec
	}

	t.Run("Dispara a revisão diária", func(t *testing.T) {
		rec := run(handler.CronJobTypeBudgetReview)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, 1, idle.runs)
	})

	t.Run("Job em execução - 409", func(t *testing.T) {
		rec := run("outro")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apiErrors.ErrSyncAlreadyRunning, decodeAPIError(t, rec).Code)
	})

	t.Run("Tipo desconhecido - 404", func(t *testing.T) {
		rec := run("ssotica")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrUnknownCronJob, decodeAPIError(t, rec).Code)
	})

	t.Run("Todos - informa quais iniciaram", func(t *testing.T) {
		rec := run(handler.CronJobTypeAll)
		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.Contains(t, rec.Body.String(), `"budget-review":true`)
		assert.Contains(t, rec.Body.String(), `"outro":false`)
	})
}

func TestGetCronStatus(t *testing.T) {
	h := handler.GetCronStatus(handler.CronJobServices{
		handler.CronJobTypeBudgetReview: &fakeCronJob{running: true},
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"budget-review":{"sync_running":true}}`, rec.Body.String())
}
