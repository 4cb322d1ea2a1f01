package reviewing

import (
	"time"

	"github.com/vfg2006/budget-review-api/internal/domain"
)

// ReviewRequest é a unidade de trabalho: uma conta de um cliente em um dia.
// Platform vazio é inferido a partir das contas principais do cliente; ReviewDate nulo é o dia atual.
type ReviewRequest struct {
	ClientID   string          `json:"client_id"`
	AccountID  string          `json:"account_id"`
	Platform   domain.Platform `json:"platform,omitempty"`
	ReviewDate *time.Time      `json:"review_date,omitempty"`
}

// ReviewResult é o retorno do motor. Falhas nunca escapam como erro: ficam em Error/ErrorKind.
type ReviewResult struct {
	Success    bool            `json:"success"`
	ReviewID   string          `json:"review_id,omitempty"`
	ClientID   string          `json:"client_id"`
	AccountID  string          `json:"account_id"`
	Platform   domain.Platform `json:"platform,omitempty"`
	ReviewDate string          `json:"review_date,omitempty"`

	EffectiveBudget     float64    `json:"effective_budget"`
	TotalSpent          float64    `json:"total_spent"`
	DaySpends           [5]float64 `json:"day_spends"`
	WeightedRecentSpend float64    `json:"weighted_recent_spend"`
	CurrentDailyBudget  float64    `json:"current_daily_budget"`

	UsingCustomBudget   bool    `json:"using_custom_budget"`
	CustomBudgetID      *string `json:"custom_budget_id,omitempty"`
	CustomBudgetDropped bool    `json:"custom_budget_dropped,omitempty"`

	Budget *domain.BudgetInfo `json:"budget,omitempty"`

	// Degraded: a revisão foi gravada com gasto zerado por falha da plataforma
	Degraded    bool                        `json:"degraded"`
	SpendError  *domain.PlatformErrorDetail `json:"spend_error,omitempty"`
	BudgetError *domain.PlatformErrorDetail `json:"budget_error,omitempty"`

	Error        string `json:"error,omitempty"`
	ErrorKind    Kind   `json:"error_kind,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorDetails string `json:"error_details,omitempty"`
	Retryable    bool   `json:"retryable,omitempty"`
}

func (r *ReviewResult) fail(err *ReviewError) *ReviewResult {
	r.Success = false
	r.Error = err.Error()
	r.ErrorKind = err.Kind
	r.ErrorCode = err.Code
	r.ErrorDetails = err.Details
	r.Retryable = err.Kind.Retryable()
	return r
}
