package metaclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	credentialMocks "github.com/vfg2006/budget-review-api/infrastructure/integrator/credential/mocks"
	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestClient(t *testing.T, serverURL string) *MetaClient {
	ctrl := gomock.NewController(t)
	tokens := credentialMocks.NewMockTokenProvider(ctrl)
	tokens.EXPECT().GetValidAccessToken(gomock.Any()).Return("EAAB-token", nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Meta.URL = serverURL + "/v22.0"
	cfg.Meta.RequestTimeout = 5 * time.Second

	return NewClient(cfg, tokens)
}

func TestMetaClient_GetDailySpend(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v22.0/act_123456/insights", r.URL.Path)
		assert.Equal(t, "EAAB-token", r.URL.Query().Get("access_token"))

		if r.URL.Query().Get("after") == "" {
			assert.Equal(t, "1", r.URL.Query().Get("time_increment"))
			assert.Equal(t, `{"since":"2024-06-01","until":"2024-06-10"}`, r.URL.Query().Get("time_range"))
			_, _ = w.Write([]byte(`{"data":[{"account_id":"123456","date_start":"2024-06-01","date_stop":"2024-06-01","spend":"10.50"}],
				"paging":{"cursors":{"after":"c1"},"next":"` + server.URL + `/v22.0/act_123456/insights?after=c1&access_token=EAAB-token"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"account_id":"123456","date_start":"2024-06-02","date_stop":"2024-06-02","spend":"20"}],"paging":{}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	insights, err := client.GetDailySpend(context.Background(), "123456",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, insights, 2)
	assert.Equal(t, "10.5", insights[0].Spend.String())
	assert.Equal(t, "2024-06-02", insights[1].DateStart)
}

func TestMetaClient_GetActiveCampaigns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v22.0/act_123456/campaigns", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[
			{"id":"1","effective_status":"ACTIVE","daily_budget":"5000"},
			{"id":"2","effective_status":"PAUSED","daily_budget":"9900"},
			{"id":"3","effective_status":"ACTIVE"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	campaigns, err := client.GetActiveCampaigns(context.Background(), "123456")

	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "50", campaigns[0].DailyBudgetAmount().String())
	assert.True(t, campaigns[1].DailyBudgetAmount().IsZero())
}

func TestMetaClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Error validating access token: Session has expired","type":"OAuthException","code":190,"error_subcode":463}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GetActiveCampaigns(context.Background(), "123456")

	var detail *domain.PlatformErrorDetail
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, domain.PlatformMeta, detail.Platform)
	assert.Equal(t, "OAuthException", detail.Status)
	assert.Equal(t, "190/463", detail.Code)
	assert.Equal(t, http.StatusBadRequest, detail.HTTPStatus)
}

func TestExchangeTokenGrant_Exchange(t *testing.T) {
	t.Run("troca o token atual por um de longa duração", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v22.0/oauth/access_token", r.URL.Path)
			assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "app", r.URL.Query().Get("client_id"))
			assert.Equal(t, "old-token", r.URL.Query().Get("fb_exchange_token"))
			_, _ = w.Write([]byte(`{"access_token":"new-token","token_type":"bearer","expires_in":5183944}`))
		}))
		defer server.Close()

		grant := &ExchangeTokenGrant{URL: server.URL + "/v22.0", HTTPClient: server.Client()}

		result, err := grant.Exchange(context.Background(), map[string]string{
			SecretAppID:       "app",
			SecretAppSecret:   "secret",
			SecretAccessToken: "old-token",
		})

		require.NoError(t, err)
		assert.Equal(t, "new-token", result.AccessToken)
		assert.Equal(t, 5183944*time.Second, result.ExpiresIn)
	})

	t.Run("sem expires_in assume validade de 60 dias", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"access_token":"new-token"}`))
		}))
		defer server.Close()

		grant := &ExchangeTokenGrant{URL: server.URL, HTTPClient: server.Client()}

		result, err := grant.Exchange(context.Background(), map[string]string{})

		require.NoError(t, err)
		assert.Equal(t, defaultLongLivedExpiration, result.ExpiresIn)
	})

	t.Run("erro da API é propagado com detalhe", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`))
		}))
		defer server.Close()

		grant := &ExchangeTokenGrant{URL: server.URL, HTTPClient: server.Client()}

		_, err := grant.Exchange(context.Background(), map[string]string{})

		var detail *domain.PlatformErrorDetail
		require.True(t, errors.As(err, &detail))
		assert.Equal(t, "190", detail.Code)
	})
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 dias, 2 horas e 3 minutos", FormatDuration(int64((26*time.Hour + 3*time.Minute).Seconds())))
}
