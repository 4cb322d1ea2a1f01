package domain

import "time"

type AdjustmentDirection string

const (
	AdjustmentNone     AdjustmentDirection = "none"
	AdjustmentIncrease AdjustmentDirection = "increase"
	AdjustmentDecrease AdjustmentDirection = "decrease"
)

// BudgetInput são as entradas da calculadora de orçamento
type BudgetInput struct {
	EffectiveBudget     float64
	TotalSpent          float64
	CurrentDailyBudget  float64
	WeightedRecentSpend float64
	CustomBudgetEndDate *time.Time
	Today               time.Time
}

// BudgetInfo é o ritmo recomendado e os dois sinais de ajuste, sempre independentes
type BudgetInfo struct {
	PeriodEnd        time.Time `json:"period_end"`
	RemainingDays    int       `json:"remaining_days"`
	RemainingBudget  float64   `json:"remaining_budget"`
	IdealDailyBudget float64   `json:"ideal_daily_budget"`
	SpentPercentage  float64   `json:"spent_percentage"`

	// Sinal comparando o ritmo ideal com o orçamento diário atual da plataforma
	NeedsBudgetAdjustment bool                `json:"needs_budget_adjustment"`
	BudgetAdjustment      float64             `json:"budget_adjustment"`
	AdjustmentDirection   AdjustmentDirection `json:"adjustment_direction"`

	// Sinal comparando o ritmo ideal com o gasto recente ponderado
	NeedsAdjustmentBasedOnAverage bool                `json:"needs_adjustment_based_on_average"`
	AverageAdjustment             float64             `json:"average_adjustment"`
	AverageAdjustmentDirection    AdjustmentDirection `json:"average_adjustment_direction"`
}
