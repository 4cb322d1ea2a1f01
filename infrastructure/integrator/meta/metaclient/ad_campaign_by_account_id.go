package metaclient

import (
	"context"
	"net/url"

	metadomain "github.com/vfg2006/budget-review-api/infrastructure/integrator/meta/domain"
)

// GetActiveCampaigns retorna as campanhas ativas com o orçamento diário configurado
func (c *MetaClient) GetActiveCampaigns(ctx context.Context, accountID string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status,effective_status,daily_budget")
	params.Add("effective_status", "['ACTIVE']")
	params.Add("limit", "200")

	campaigns, err := getAllPages[metadomain.Campaign](ctx, c, accountID, "campaign_budgets", c.AccountURL(accountID, "campaigns"), params)
	if err != nil {
		return nil, err
	}

	active := campaigns[:0]
	for _, campaign := range campaigns {
		if campaign.IsActive() {
			active = append(active, campaign)
		}
	}

	return active, nil
}
