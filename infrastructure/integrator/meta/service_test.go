package meta

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/budget-review-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func insight(date, spend string) metadomain.DailyInsight {
	return metadomain.DailyInsight{DateStart: date, DateStop: date, Spend: decimal.RequireFromString(spend)}
}

func TestMetaIntegrator_FetchAccountSpend(t *testing.T) {
	reviewDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("agrega gasto e orçamento das campanhas ativas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		integrator := New(client)

		client.EXPECT().
			GetDailySpend(gomock.Any(), "123456", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), reviewDate).
			Return([]metadomain.DailyInsight{
				insight("2024-06-01", "500"),
				insight("2024-06-05", "50"),
				insight("2024-06-07", "150.25"),
				insight("2024-06-09", "200"),
			}, nil)
		client.EXPECT().GetActiveCampaigns(gomock.Any(), "123456").Return([]metadomain.Campaign{
			{ID: "1", EffectiveStatus: "ACTIVE", DailyBudget: decimal.NewFromInt(5000)},
			{ID: "2", EffectiveStatus: "ACTIVE", DailyBudget: decimal.NewFromInt(2550)},
		}, nil)

		spend := integrator.FetchAccountSpend(context.Background(), "123456", reviewDate)

		assert.Nil(t, spend.Error)
		assert.Equal(t, 900.25, spend.TotalSpent)
		assert.Equal(t, [5]float64{50, 0, 150.25, 0, 200}, spend.DaySpends)
		assert.Equal(t, domain.WeightedAverage([5]float64{50, 0, 150.25, 0, 200}), spend.WeightedRecentSpend)
		assert.Equal(t, 75.5, spend.CurrentDailyBudget)
	})

	t.Run("falha da API zera o gasto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		integrator := New(client)

		client.EXPECT().GetDailySpend(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, &domain.PlatformErrorDetail{
			Platform: domain.PlatformMeta,
			Status:   "OAuthException",
			Code:     "190",
			Message:  "Session has expired",
		})

		spend := integrator.FetchAccountSpend(context.Background(), "123456", reviewDate)

		require.NotNil(t, spend.Error)
		assert.Equal(t, "190", spend.Error.Code)
		assert.Equal(t, 0.0, spend.TotalSpent)
		assert.Equal(t, 0.0, spend.WeightedRecentSpend)
	})
}
