package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RecencyWeights são os pesos dos últimos cinco dias, do mais antigo (5 dias atrás) ao mais recente (ontem)
var RecencyWeights = [5]float64{0.10, 0.15, 0.20, 0.25, 0.30}

// AccountSpend é o resultado agregado do gasto de uma conta no mês
type AccountSpend struct {
	TotalSpent          float64              `json:"total_spent"`
	DaySpends           [5]float64           `json:"day_spends"`
	WeightedRecentSpend float64              `json:"weighted_recent_spend"`
	CurrentDailyBudget  float64              `json:"current_daily_budget"`
	Error               *PlatformErrorDetail `json:"error,omitempty"`
	BudgetError         *PlatformErrorDetail `json:"budget_error,omitempty"`
}

// Degraded indica que o gasto foi zerado por falha da plataforma
func (s *AccountSpend) Degraded() bool {
	return s != nil && (s.Error != nil || s.BudgetError != nil)
}

// ZeroSpend é o resultado conservador usado quando a plataforma falha.
// Nunca reaproveita números antigos ou estimados.
func ZeroSpend(detail *PlatformErrorDetail) *AccountSpend {
	return &AccountSpend{Error: detail}
}

// WeightedAverage calcula a média ponderada dos últimos cinco dias.
// Dias sem gasto entram como zero e puxam o sinal para baixo.
func WeightedAverage(days [5]float64) float64 {
	var sum float64
	for i, v := range days {
		sum += v * RecencyWeights[i]
	}
	return math.Round(sum*100) / 100
}

// PlatformErrorDetail descreve uma falha da API da plataforma para diagnóstico
type PlatformErrorDetail struct {
	Platform   Platform `json:"platform"`
	AccountID  string   `json:"account_id"`
	Operation  string   `json:"operation"`
	HTTPStatus int      `json:"http_status,omitempty"`
	Status     string   `json:"status,omitempty"`
	Code       string   `json:"code,omitempty"`
	Message    string   `json:"message"`
}

func (d *PlatformErrorDetail) Error() string {
	if d == nil {
		return ""
	}
	if d.Status != "" {
		return string(d.Platform) + " " + d.Operation + ": " + d.Status + ": " + d.Message
	}
	return string(d.Platform) + " " + d.Operation + ": " + d.Message
}

// SpendWindow retorna o intervalo consultado na plataforma: do menor entre o primeiro dia do mês
// e cinco dias antes da revisão até o dia da revisão (inclusive)
func SpendWindow(reviewDate time.Time) (start, end time.Time) {
	end = TruncateDay(reviewDate)
	monthStart := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	start = end.AddDate(0, 0, -5)
	if monthStart.Before(start) {
		start = monthStart
	}
	return start, end
}

// DailySpend acumula o gasto por dia (chave AAAA-MM-DD) em valor exato
type DailySpend map[string]decimal.Decimal

func (d DailySpend) Add(date string, amount decimal.Decimal) {
	d[date] = d[date].Add(amount)
}

// Summarize calcula o gasto do mês até a data de revisão e os cinco dias anteriores a ela (day1 = 5 dias atrás)
func (d DailySpend) Summarize(reviewDate time.Time) (total float64, days [5]float64) {
	day := TruncateDay(reviewDate)

	sum := decimal.Zero
	for date, amount := range d {
		t, err := time.ParseInLocation(time.DateOnly, date, day.Location())
		if err != nil {
			continue
		}
		if t.Year() == day.Year() && t.Month() == day.Month() && !t.After(day) {
			sum = sum.Add(amount)
		}
	}

	for i := 0; i < 5; i++ {
		key := day.AddDate(0, 0, i-5).Format(time.DateOnly)
		days[i] = d[key].Round(2).InexactFloat64()
	}

	return sum.Round(2).InexactFloat64(), days
}

// NewAccountSpend monta o resultado a partir do gasto diário e da soma dos orçamentos diários ativos
func NewAccountSpend(reviewDate time.Time, daily DailySpend, currentDailyBudget decimal.Decimal) *AccountSpend {
	total, days := daily.Summarize(reviewDate)
	return &AccountSpend{
		TotalSpent:          total,
		DaySpends:           days,
		WeightedRecentSpend: WeightedAverage(days),
		CurrentDailyBudget:  currentDailyBudget.Round(2).InexactFloat64(),
	}
}
