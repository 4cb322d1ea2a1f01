package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/budget-review-api/infrastructure/integrator/meta/domain"
)

// GetDailySpend retorna o gasto da conta dia a dia no intervalo [since, until]
func (c *MetaClient) GetDailySpend(ctx context.Context, accountID string, since, until time.Time) ([]metadomain.DailyInsight, error) {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", since.Format(time.DateOnly), until.Format(time.DateOnly))

	params := url.Values{}
	params.Add("level", "account")
	params.Add("time_increment", "1")
	params.Add("fields", "account_id,spend")
	params.Add("time_range", timeRange)

	return getAllPages[metadomain.DailyInsight](ctx, c, accountID, "daily_cost", c.AccountURL(accountID, "insights"), params)
}
