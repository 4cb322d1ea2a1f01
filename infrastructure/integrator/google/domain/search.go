package googledomain

import "github.com/shopspring/decimal"

// SearchRequest é o corpo do endpoint customers/{id}/googleAds:search
type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type SearchResponse struct {
	Results       []Row  `json:"results"`
	NextPageToken string `json:"nextPageToken"`
}

// Row é uma linha GAQL; só os campos selecionados vêm preenchidos
type Row struct {
	Campaign       Campaign       `json:"campaign"`
	CampaignBudget CampaignBudget `json:"campaignBudget"`
	Metrics        Metrics        `json:"metrics"`
	Segments       Segments       `json:"segments"`
}

type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// CampaignBudget traz o valor em micros (a API serializa int64 como string)
type CampaignBudget struct {
	AmountMicros decimal.Decimal `json:"amountMicros"`
}

type Metrics struct {
	CostMicros decimal.Decimal `json:"costMicros"`
}

type Segments struct {
	Date string `json:"date"`
}

var microsPerUnit = decimal.NewFromInt(1_000_000)

// FromMicros converte micros da moeda para a unidade monetária
func FromMicros(micros decimal.Decimal) decimal.Decimal {
	return micros.Div(microsPerUnit)
}
