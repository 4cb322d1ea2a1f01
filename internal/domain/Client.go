package domain

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client é o cliente da agência, com a conta principal e o orçamento mensal padrão de cada plataforma
type Client struct {
	ID              string       `json:"id"`
	CompanyName     string       `json:"company_name"`
	Status          ClientStatus `json:"status"`
	MetaAccountID   *string      `json:"meta_account_id"`
	MetaAdsBudget   float64      `json:"meta_ads_budget"`
	GoogleAccountID *string      `json:"google_account_id"`
	GoogleAdsBudget float64      `json:"google_ads_budget"`
}

func (c *Client) IsActive() bool {
	return c != nil && c.Status == ClientStatusActive
}
