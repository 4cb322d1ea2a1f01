package domain

import "time"

// CustomBudget é um orçamento personalizado com período definido que substitui o orçamento mensal padrão.
// AccountID nulo significa que vale para todas as contas do cliente na plataforma.
type CustomBudget struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	Platform     Platform  `json:"platform"`
	AccountID    *string   `json:"account_id"`
	BudgetAmount float64   `json:"budget_amount"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IsActive     bool      `json:"is_active"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// Covers indica se a data está dentro do intervalo [StartDate, EndDate] (comparação por dia de calendário).
// Colunas DATE chegam do driver em UTC e a data de revisão no fuso local.
func (c *CustomBudget) Covers(date time.Time) bool {
	d := CalendarDay(date)
	return !d.Before(CalendarDay(c.StartDate)) && !d.After(CalendarDay(c.EndDate))
}

// IsClientWide indica se o orçamento vale para todas as contas do cliente
func (c *CustomBudget) IsClientWide() bool {
	return c.AccountID == nil || *c.AccountID == ""
}

// TruncateDay zera o horário mantendo a data no fuso original
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CalendarDay reduz t ao dia de calendário (ano, mês, dia) em UTC, para comparar datas de fusos diferentes
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
