package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/credential"
	metadomain "github.com/vfg2006/budget-review-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxPages limita a paginação de uma chamada
const maxPages = 50

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks
type Client interface {
	GetDailySpend(ctx context.Context, accountID string, since, until time.Time) ([]metadomain.DailyInsight, error)
	GetActiveCampaigns(ctx context.Context, accountID string) ([]metadomain.Campaign, error)
}

type MetaClient struct {
	url        string
	tokens     credential.TokenProvider
	httpClient *http.Client
}

func NewClient(cfg *config.Config, tokens credential.TokenProvider) *MetaClient {
	return &MetaClient{
		url:        cfg.Meta.URL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: cfg.Meta.RequestTimeout},
	}
}

// AccountURL é o endpoint Graph de um recurso da conta de anúncios
func (c *MetaClient) AccountURL(accountID, resource string) string {
	return fmt.Sprintf("%s/act_%s/%s", c.url, accountID, resource)
}

// getAllPages segue paging.next até a última página
func getAllPages[T any](ctx context.Context, c *MetaClient, accountID, operation, endpoint string, params url.Values) ([]T, error) {
	token, err := c.tokens.GetValidAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de acesso: %w", err)
	}
	params.Set("access_token", token)

	var items []T
	next := endpoint + "?" + params.Encode()
	for page := 0; page < maxPages && next != ""; page++ {
		body, err := c.get(ctx, accountID, operation, next)
		if err != nil {
			return nil, err
		}

		var response metadomain.Page[T]
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, &domain.PlatformErrorDetail{
				Platform:  domain.PlatformMeta,
				AccountID: accountID,
				Operation: operation,
				Status:    "MALFORMED_RESPONSE",
				Message:   err.Error(),
			}
		}

		items = append(items, response.Data...)
		next = response.Paging.Next
	}

	return items, nil
}

func (c *MetaClient) get(ctx context.Context, accountID, operation, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(accountID, operation, resp.StatusCode, body)
	}

	return body, nil
}

// handleErrorResponse processa erros nas respostas da API
func handleErrorResponse(accountID, operation string, status int, body []byte) error {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		if errorResp.IsTokenExpired() {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"code":       errorResp.Error.Code,
				"subcode":    errorResp.Error.ErrorSubcode,
			}).Warn("Token expirado detectado pela API Meta")
		}
		return errorResp.ToDetail(accountID, operation, status)
	}

	return &domain.PlatformErrorDetail{
		Platform:   domain.PlatformMeta,
		AccountID:  accountID,
		Operation:  operation,
		HTTPStatus: status,
		Status:     http.StatusText(status),
		Message:    string(body),
	}
}
