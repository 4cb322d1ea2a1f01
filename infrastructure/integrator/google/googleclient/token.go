package googleclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vfg2006/budget-review-api/infrastructure/integrator/credential"
	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

// Nomes dos segredos do Google Ads em api_tokens
const (
	SecretClientID        = "google_ads_client_id"
	SecretClientSecret    = "google_ads_client_secret"
	SecretRefreshToken    = "google_ads_refresh_token"
	SecretAccessToken     = "google_ads_access_token"
	SecretDeveloperToken  = "google_ads_developer_token"
	SecretLoginCustomerID = "google_ads_login_customer_id"
)

// TokenResponse representa a resposta do endpoint OAuth do Google
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

type oauthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// RefreshTokenGrant troca o refresh token armazenado por um novo token de acesso
type RefreshTokenGrant struct {
	TokenURL   string
	HTTPClient *http.Client
}

var _ credential.Grant = (*RefreshTokenGrant)(nil)

func NewRefreshTokenGrant(cfg *config.Config) *RefreshTokenGrant {
	return &RefreshTokenGrant{
		TokenURL:   cfg.GoogleAds.TokenURL,
		HTTPClient: &http.Client{Timeout: cfg.GoogleAds.RequestTimeout},
	}
}

func (g *RefreshTokenGrant) Platform() domain.Platform {
	return domain.PlatformGoogle
}

func (g *RefreshTokenGrant) RequiredSecrets() []string {
	return []string{SecretClientID, SecretClientSecret, SecretRefreshToken}
}

func (g *RefreshTokenGrant) AccessTokenSecret() string {
	return SecretAccessToken
}

func (g *RefreshTokenGrant) Exchange(ctx context.Context, secrets map[string]string) (*credential.GrantResult, error) {
	form := url.Values{}
	form.Set("client_id", secrets[SecretClientID])
	form.Set("client_secret", secrets[SecretClientSecret])
	form.Set("refresh_token", secrets[SecretRefreshToken])
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar endpoint de token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var oauthErr oauthError
		if json.Unmarshal(body, &oauthErr) == nil && oauthErr.Error != "" {
			return nil, fmt.Errorf("endpoint de token retornou %d: %s: %s", resp.StatusCode, oauthErr.Error, oauthErr.ErrorDescription)
		}
		return nil, fmt.Errorf("endpoint de token retornou %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	return &credential.GrantResult{
		AccessToken: tokenResp.AccessToken,
		ExpiresIn:   time.Duration(tokenResp.ExpiresIn) * time.Second,
	}, nil
}
