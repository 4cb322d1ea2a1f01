package domain

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "active"
	AdAccountStatusInactive AdAccountStatus = "inactive"
)

// AdAccount é a tripla (cliente, plataforma, conta externa) com id interno.
// Só pode existir uma conta principal por (cliente, plataforma); as secundárias são adicionais.
type AdAccount struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"client_id"`
	Platform     Platform        `json:"platform"`
	AccountID    string          `json:"account_id"`
	AccountName  string          `json:"account_name"`
	BudgetAmount *float64        `json:"budget_amount"`
	IsPrimary    bool            `json:"is_primary"`
	Status       AdAccountStatus `json:"status"`
}

// EffectiveStandingBudget retorna o orçamento mensal padrão que governa a conta:
// a conta principal usa o orçamento do cliente, as secundárias usam o próprio valor.
func (a *AdAccount) EffectiveStandingBudget(client *Client, caps PlatformCapabilities) float64 {
	if a == nil || a.IsPrimary || a.BudgetAmount == nil {
		return caps.StandingBudget(client)
	}
	return *a.BudgetAmount
}
