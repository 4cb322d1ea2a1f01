package reviewing

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/budget-review-api/infrastructure/integrator/credential"
	"github.com/vfg2006/budget-review-api/infrastructure/repository"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

// Erros específicos para o contexto de revisões
var (
	// Erros de validação
	ErrClientIDRequired    = errors.New("client ID is required")
	ErrAccountIDRequired   = errors.New("account ID is required")
	ErrClientNotFound      = errors.New("client not found")
	ErrPlatformUnsupported = errors.New("platform not configured")
	ErrReviewNotFound      = errors.New("budget review not found")

	// Erros de banco de dados
	ErrLoadClient         = errors.New("error loading client")
	ErrEnsureAccount      = errors.New("error provisioning ad account")
	ErrResolveBudget      = errors.New("error resolving custom budget")
	ErrPersistReview      = errors.New("error persisting budget review")
	ErrFetchReviews       = errors.New("error fetching budget reviews")
	ErrGenerateID         = errors.New("error generating ID")
	ErrUnexpectedFailure  = errors.New("unexpected failure")
	ErrReviewUnitTimedOut = errors.New("review timed out")
	ErrBatchInterrupted   = errors.New("review batch interrupted before this unit started")
)

// Kind classifica a falha de uma revisão
type Kind string

const (
	KindValidation            Kind = "validation"
	KindCredentialsIncomplete Kind = "credentials_incomplete"
	KindTokenRefreshFailed    Kind = "token_refresh_failed"
	KindPlatformAPI           Kind = "platform_api"
	KindReferentialIntegrity  Kind = "referential_integrity"
	KindPersistence           Kind = "persistence"
	KindUnknown               Kind = "unknown"
)

// Retryable indica se um agendador externo deve tentar a unidade novamente.
// Validação e credenciais ausentes precisam de intervenção humana.
func (k Kind) Retryable() bool {
	switch k {
	case KindValidation, KindCredentialsIncomplete:
		return false
	default:
		return true
	}
}

// ReviewError é um erro com contexto adicional para uma revisão
type ReviewError struct {
	Err       error  // Erro base
	Kind      Kind   // Classificação da falha
	Code      string // Código de erro para API
	ClientID  string
	AccountID string
	Details   string // Detalhes adicionais
}

func (e *ReviewError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

func NewReviewError(err error, kind Kind, code string, details string) *ReviewError {
	return &ReviewError{
		Err:     err,
		Kind:    kind,
		Code:    code,
		Details: details,
	}
}

// withUnit preenche a unidade de trabalho em que o erro ocorreu
func (e *ReviewError) withUnit(clientID, accountID string) *ReviewError {
	e.ClientID = clientID
	e.AccountID = accountID
	return e
}

// classifyReadError converte as falhas das leituras concorrentes (token, gasto, orçamento personalizado)
func classifyReadError(err error) *ReviewError {
	var detail *domain.PlatformErrorDetail

	switch {
	case errors.Is(err, credential.ErrCredentialsIncomplete):
		return NewReviewError(err, KindCredentialsIncomplete, "CREDENTIALS_INCOMPLETE", "")
	case errors.Is(err, credential.ErrTokenRefreshFailed):
		return NewReviewError(err, KindTokenRefreshFailed, "TOKEN_REFRESH_FAILED", "")
	case errors.Is(err, context.DeadlineExceeded):
		return NewReviewError(ErrReviewUnitTimedOut, KindUnknown, "REVIEW_TIMEOUT", err.Error())
	case errors.As(err, &detail):
		return NewReviewError(err, KindPlatformAPI, "PLATFORM_API_ERROR", detail.Message)
	case errors.Is(err, ErrResolveBudget):
		return NewReviewError(err, KindPersistence, "CUSTOM_BUDGET_LOOKUP_FAILED", "")
	default:
		return NewReviewError(err, KindUnknown, "UNKNOWN_ERROR", "")
	}
}

// classifyPersistError converte a falha final da gravação
func classifyPersistError(err error) *ReviewError {
	if errors.Is(err, repository.ErrForeignKeyViolation) {
		return NewReviewError(err, KindReferentialIntegrity, "REFERENTIAL_INTEGRITY_VIOLATION", "")
	}
	return NewReviewError(fmt.Errorf("%w: %w", ErrPersistReview, err), KindPersistence, "PERSISTENCE_FAILED", "")
}
