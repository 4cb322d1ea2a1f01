package googledomain

import (
	"strings"

	"github.com/vfg2006/budget-review-api/internal/domain"
)

// ErrorResponse representa a estrutura de erro da API do Google Ads
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
	Details []struct {
		Type   string `json:"@type"`
		Errors []struct {
			ErrorCode map[string]string `json:"errorCode"`
			Message   string            `json:"message"`
		} `json:"errors"`
	} `json:"details"`
}

// FirstErrorCode retorna o primeiro código específico do Google Ads (ex.: authenticationError=OAUTH_TOKEN_EXPIRED)
func (e *ErrorResponse) FirstErrorCode() string {
	for _, detail := range e.Error.Details {
		for _, adsErr := range detail.Errors {
			for kind, code := range adsErr.ErrorCode {
				return kind + "=" + code
			}
		}
	}
	return ""
}

// IsTokenExpired verifica se o erro é de token expirado ou inválido
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Status == "UNAUTHENTICATED" || strings.Contains(e.FirstErrorCode(), "OAUTH_TOKEN")
}

// ToDetail converte a resposta em detalhe de erro da plataforma
func (e *ErrorResponse) ToDetail(accountID, operation string, httpStatus int) *domain.PlatformErrorDetail {
	return &domain.PlatformErrorDetail{
		Platform:   domain.PlatformGoogle,
		AccountID:  accountID,
		Operation:  operation,
		HTTPStatus: httpStatus,
		Status:     e.Error.Status,
		Code:       e.FirstErrorCode(),
		Message:    e.Error.Message,
	}
}
