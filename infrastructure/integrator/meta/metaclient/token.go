package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/credential"
	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

// Nomes dos segredos do Meta em api_tokens
const (
	SecretAppID       = "meta_app_id"
	SecretAppSecret   = "meta_app_secret"
	SecretAccessToken = "meta_access_token"
)

// defaultLongLivedExpiration é usado quando a API não informa expires_in
const defaultLongLivedExpiration = 60 * 24 * time.Hour

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeTokenGrant renova o token de longa duração trocando o token atual (fb_exchange_token)
type ExchangeTokenGrant struct {
	URL        string
	HTTPClient *http.Client
}

var _ credential.Grant = (*ExchangeTokenGrant)(nil)

func NewExchangeTokenGrant(cfg *config.Config) *ExchangeTokenGrant {
	return &ExchangeTokenGrant{
		URL:        cfg.Meta.URL,
		HTTPClient: &http.Client{Timeout: cfg.Meta.RequestTimeout},
	}
}

func (g *ExchangeTokenGrant) Platform() domain.Platform {
	return domain.PlatformMeta
}

func (g *ExchangeTokenGrant) RequiredSecrets() []string {
	return []string{SecretAppID, SecretAppSecret, SecretAccessToken}
}

func (g *ExchangeTokenGrant) AccessTokenSecret() string {
	return SecretAccessToken
}

func (g *ExchangeTokenGrant) Exchange(ctx context.Context, secrets map[string]string) (*credential.GrantResult, error) {
	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", secrets[SecretAppID])
	params.Add("client_secret", secrets[SecretAppSecret])
	params.Add("fb_exchange_token", secrets[SecretAccessToken])

	requestURL := fmt.Sprintf("%s/oauth/access_token?%s", g.URL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de longa duração: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erro ao obter token de longa duração: %w", handleErrorResponse("", "token_exchange", resp.StatusCode, body))
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	expiresIn := time.Duration(tokenResp.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = defaultLongLivedExpiration
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(int64(expiresIn.Seconds())))

	return &credential.GrantResult{
		AccessToken: tokenResp.AccessToken,
		ExpiresIn:   expiresIn,
	}, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}
