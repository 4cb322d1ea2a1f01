package googleclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/credential"
	googledomain "github.com/vfg2006/budget-review-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/budget-review-api/infrastructure/repository"
	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxPages limita a paginação de uma consulta
const maxPages = 50

var ErrNoAuthHeaders = errors.New("não foi possível montar os cabeçalhos de autenticação do Google Ads")

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks
type Client interface {
	// Search executa uma consulta GAQL e percorre todas as páginas
	Search(ctx context.Context, customerID, query string) ([]googledomain.Row, error)
	// GetAuthHeaders compõe bearer, developer-token e login-customer-id (opcional)
	GetAuthHeaders(ctx context.Context, loginCustomerID string) (http.Header, error)
}

type GoogleClient struct {
	url        string
	tokens     credential.TokenProvider
	secrets    repository.TokenRepository
	limiter    *rate.Limiter
	httpClient *http.Client
}

func NewClient(cfg *config.Config, tokens credential.TokenProvider, secrets repository.TokenRepository) *GoogleClient {
	rps := cfg.GoogleAds.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.GoogleAds.Burst
	if burst <= 0 {
		burst = 1
	}

	return &GoogleClient{
		url:        cfg.GoogleAds.URL,
		tokens:     tokens,
		secrets:    secrets,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		httpClient: &http.Client{Timeout: cfg.GoogleAds.RequestTimeout},
	}
}

// SearchURL é o endpoint de consulta de uma conta
func (c *GoogleClient) SearchURL(customerID string) string {
	return fmt.Sprintf("%s/customers/%s/googleAds:search", c.url, customerID)
}

// CheckSecrets confirma que o developer token está cadastrado antes de qualquer consulta
func (c *GoogleClient) CheckSecrets(ctx context.Context) error {
	secrets, err := c.secrets.GetSecrets(ctx, SecretDeveloperToken)
	if err != nil {
		return fmt.Errorf("erro ao ler segredos do Google Ads: %w", err)
	}
	if secrets[SecretDeveloperToken] == "" {
		return fmt.Errorf("%w: %s", credential.ErrCredentialsIncomplete, SecretDeveloperToken)
	}
	return nil
}

func (c *GoogleClient) GetAuthHeaders(ctx context.Context, loginCustomerID string) (http.Header, error) {
	token, err := c.tokens.GetValidAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAuthHeaders, err)
	}

	secrets, err := c.secrets.GetSecrets(ctx, SecretDeveloperToken, SecretLoginCustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAuthHeaders, err)
	}

	developerToken := secrets[SecretDeveloperToken]
	if developerToken == "" {
		return nil, fmt.Errorf("%w: %w: %s", ErrNoAuthHeaders, credential.ErrCredentialsIncomplete, SecretDeveloperToken)
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)
	headers.Set("developer-token", developerToken)
	headers.Set("Content-Type", "application/json")

	if loginCustomerID == "" {
		loginCustomerID = secrets[SecretLoginCustomerID]
	}
	if loginCustomerID != "" {
		headers.Set("login-customer-id", strings.ReplaceAll(loginCustomerID, "-", ""))
	}

	return headers, nil
}

func (c *GoogleClient) Search(ctx context.Context, customerID, query string) ([]googledomain.Row, error) {
	headers, err := c.GetAuthHeaders(ctx, "")
	if err != nil {
		return nil, err
	}

	var rows []googledomain.Row
	pageToken := ""
	for page := 0; page < maxPages; page++ {
		resp, err := c.searchPage(ctx, headers, customerID, googledomain.SearchRequest{Query: query, PageToken: pageToken})
		if err != nil {
			return nil, err
		}

		rows = append(rows, resp.Results...)
		if resp.NextPageToken == "" {
			return rows, nil
		}
		pageToken = resp.NextPageToken
	}

	logrus.WithFields(logrus.Fields{
		"account_id": customerID,
		"pages":      maxPages,
	}).Warn("Consulta do Google Ads interrompida no limite de páginas")

	return rows, nil
}

func (c *GoogleClient) searchPage(ctx context.Context, headers http.Header, customerID string, request googledomain.SearchRequest) (*googledomain.SearchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar consulta: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.SearchURL(customerID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	req.Header = headers.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao fazer a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseErrorResponse(customerID, resp.StatusCode, body)
	}

	var searchResp googledomain.SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, &domain.PlatformErrorDetail{
			Platform:   domain.PlatformGoogle,
			AccountID:  customerID,
			Operation:  "search",
			HTTPStatus: resp.StatusCode,
			Status:     "MALFORMED_RESPONSE",
			Message:    err.Error(),
		}
	}

	return &searchResp, nil
}

func parseErrorResponse(customerID string, status int, body []byte) error {
	var errResp googledomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		if errResp.IsTokenExpired() {
			logrus.WithFields(logrus.Fields{
				"account_id": customerID,
				"code":       errResp.FirstErrorCode(),
			}).Warn("Google Ads rejeitou o token de acesso")
		}
		return errResp.ToDetail(customerID, "search", status)
	}

	return &domain.PlatformErrorDetail{
		Platform:   domain.PlatformGoogle,
		AccountID:  customerID,
		Operation:  "search",
		HTTPStatus: status,
		Status:     http.StatusText(status),
		Message:    string(body),
	}
}
