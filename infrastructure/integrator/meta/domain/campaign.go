package metadomain

import "github.com/shopspring/decimal"

var centsPerUnit = decimal.NewFromInt(100)

// Campaign traz o orçamento diário em centavos da moeda da conta (a API serializa como string)
type Campaign struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	EffectiveStatus string          `json:"effective_status"`
	DailyBudget     decimal.Decimal `json:"daily_budget"`
}

// DailyBudgetAmount converte o orçamento diário de centavos para a unidade monetária
func (c *Campaign) DailyBudgetAmount() decimal.Decimal {
	return c.DailyBudget.Div(centsPerUnit)
}

func (c *Campaign) IsActive() bool {
	return c.EffectiveStatus == "ACTIVE"
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

// Page é o envelope paginado das respostas da Graph API
type Page[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}
