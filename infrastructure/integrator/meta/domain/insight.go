package metadomain

import "github.com/shopspring/decimal"

// DailyInsight é uma linha de insights com time_increment=1; spend já vem na unidade monetária
type DailyInsight struct {
	AccountID string          `json:"account_id"`
	DateStart string          `json:"date_start"`
	DateStop  string          `json:"date_stop"`
	Spend     decimal.Decimal `json:"spend"`
}
