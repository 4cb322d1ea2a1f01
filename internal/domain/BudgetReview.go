package domain

import "time"

// BudgetReview é o registro único por (cliente, conta, plataforma, data de revisão)
type BudgetReview struct {
	ID                 string    `json:"id"`
	ClientID           string    `json:"client_id"`
	AccountID          string    `json:"account_id"`
	Platform           Platform  `json:"platform"`
	ReviewDate         time.Time `json:"review_date"`
	DailyBudgetCurrent float64   `json:"daily_budget_current"`
	TotalSpent         float64   `json:"total_spent"`
	LastFiveDaysSpent  float64   `json:"last_five_days_spent"`
	Day1Spent          float64   `json:"day_1_spent"`
	Day2Spent          float64   `json:"day_2_spent"`
	Day3Spent          float64   `json:"day_3_spent"`
	Day4Spent          float64   `json:"day_4_spent"`
	Day5Spent          float64   `json:"day_5_spent"`
	CustomBudgetSnapshot
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomBudgetSnapshot é a cópia desnormalizada do orçamento personalizado em vigor na revisão.
// Mantém a revisão interpretável mesmo se o orçamento for editado ou removido depois.
type CustomBudgetSnapshot struct {
	UsingCustomBudget     bool       `json:"using_custom_budget"`
	CustomBudgetID        *string    `json:"custom_budget_id"`
	CustomBudgetAmount    *float64   `json:"custom_budget_amount"`
	CustomBudgetStartDate *time.Time `json:"custom_budget_start_date"`
	CustomBudgetEndDate   *time.Time `json:"custom_budget_end_date"`
}

// NewCustomBudgetSnapshot é a única fonte do mapeamento CustomBudget -> campos da revisão
func NewCustomBudgetSnapshot(cb *CustomBudget) CustomBudgetSnapshot {
	if cb == nil {
		return CustomBudgetSnapshot{}
	}

	id := cb.ID
	amount := cb.BudgetAmount
	start := TruncateDay(cb.StartDate)
	end := TruncateDay(cb.EndDate)

	return CustomBudgetSnapshot{
		UsingCustomBudget:     true,
		CustomBudgetID:        &id,
		CustomBudgetAmount:    &amount,
		CustomBudgetStartDate: &start,
		CustomBudgetEndDate:   &end,
	}
}

// ReviewKey identifica unicamente uma revisão
type ReviewKey struct {
	ClientID   string
	AccountID  string
	Platform   Platform
	ReviewDate time.Time
}

// Key retorna a chave única da revisão
func (r *BudgetReview) Key() ReviewKey {
	return ReviewKey{
		ClientID:   r.ClientID,
		AccountID:  r.AccountID,
		Platform:   r.Platform,
		ReviewDate: TruncateDay(r.ReviewDate),
	}
}

// SetDaySpends preenche day1..day5 (do mais antigo para o mais recente)
func (r *BudgetReview) SetDaySpends(days [5]float64) {
	r.Day1Spent = days[0]
	r.Day2Spent = days[1]
	r.Day3Spent = days[2]
	r.Day4Spent = days[3]
	r.Day5Spent = days[4]
}

// DaySpends retorna day1..day5 como array
func (r *BudgetReview) DaySpends() [5]float64 {
	return [5]float64{r.Day1Spent, r.Day2Spent, r.Day3Spent, r.Day4Spent, r.Day5Spent}
}

// BudgetReviewFilters filtra a listagem de revisões
type BudgetReviewFilters struct {
	ClientID   string
	AccountID  string
	Platform   Platform
	ReviewDate *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      uint64
}
