package google

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	googledomain "github.com/vfg2006/budget-review-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/google/googleclient/mocks"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func costRow(date string, micros int64) googledomain.Row {
	return googledomain.Row{
		Metrics:  googledomain.Metrics{CostMicros: decimal.NewFromInt(micros)},
		Segments: googledomain.Segments{Date: date},
	}
}

func budgetRow(micros int64) googledomain.Row {
	return googledomain.Row{CampaignBudget: googledomain.CampaignBudget{AmountMicros: decimal.NewFromInt(micros)}}
}

func TestGoogleIntegrator_FetchAccountSpend(t *testing.T) {
	reviewDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("agrega gasto do mês, cinco dias e orçamento ativo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		integrator := New(client)

		client.EXPECT().
			Search(gomock.Any(), "1234567890", "SELECT campaign.id, metrics.cost_micros, segments.date FROM campaign WHERE segments.date BETWEEN '2024-06-01' AND '2024-06-10'").
			Return([]googledomain.Row{
				costRow("2024-06-01", 200_000_000),
				costRow("2024-06-05", 60_000_000),
				costRow("2024-06-05", 40_000_000),
				costRow("2024-06-06", 100_000_000),
				costRow("2024-06-07", 100_000_000),
				costRow("2024-06-08", 100_000_000),
				costRow("2024-06-09", 100_000_000),
				costRow("2024-06-10", 50_000_000),
			}, nil)
		client.EXPECT().
			Search(gomock.Any(), "1234567890", enabledBudgetsQuery).
			Return([]googledomain.Row{budgetRow(80_000_000), budgetRow(45_500_000)}, nil)

		spend := integrator.FetchAccountSpend(context.Background(), "1234567890", reviewDate)

		require.NotNil(t, spend)
		assert.Nil(t, spend.Error)
		assert.Equal(t, 750.0, spend.TotalSpent)
		assert.Equal(t, [5]float64{100, 100, 100, 100, 100}, spend.DaySpends)
		assert.Equal(t, 100.0, spend.WeightedRecentSpend)
		assert.Equal(t, 125.5, spend.CurrentDailyBudget)
		assert.False(t, spend.Degraded())
	})

	t.Run("janela cruza o mês anterior no início do mês", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		integrator := New(client)

		client.EXPECT().
			Search(gomock.Any(), "1234567890", "SELECT campaign.id, metrics.cost_micros, segments.date FROM campaign WHERE segments.date BETWEEN '2024-05-29' AND '2024-06-03'").
			Return([]googledomain.Row{
				costRow("2024-05-29", 10_000_000),
				costRow("2024-05-31", 30_000_000),
				costRow("2024-06-01", 40_000_000),
				costRow("2024-06-02", 50_000_000),
			}, nil)
		client.EXPECT().Search(gomock.Any(), gomock.Any(), enabledBudgetsQuery).Return(nil, nil)

		spend := integrator.FetchAccountSpend(context.Background(), "1234567890", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, 90.0, spend.TotalSpent)
		assert.Equal(t, [5]float64{10, 0, 30, 40, 50}, spend.DaySpends)
		assert.Equal(t, 0.0, spend.CurrentDailyBudget)
	})

	t.Run("erro 500 retorna gasto zerado com detalhe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		integrator := New(client)

		client.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, &domain.PlatformErrorDetail{
			Platform:   domain.PlatformGoogle,
			AccountID:  "1234567890",
			Operation:  "search",
			HTTPStatus: http.StatusInternalServerError,
			Status:     "INTERNAL",
			Message:    "Internal error encountered.",
		})

		spend := integrator.FetchAccountSpend(context.Background(), "1234567890", reviewDate)

		require.NotNil(t, spend.Error)
		assert.Equal(t, 0.0, spend.TotalSpent)
		assert.Equal(t, [5]float64{}, spend.DaySpends)
		assert.Equal(t, "INTERNAL", spend.Error.Status)
		assert.Equal(t, "daily_cost", spend.Error.Operation)
		assert.True(t, spend.Degraded())
	})

	t.Run("falha no orçamento zera apenas o orçamento diário", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		integrator := New(client)

		client.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Not(enabledBudgetsQuery)).
			Return([]googledomain.Row{costRow("2024-06-09", 30_000_000)}, nil)
		client.EXPECT().Search(gomock.Any(), gomock.Any(), enabledBudgetsQuery).
			Return(nil, errors.New("context deadline exceeded"))

		spend := integrator.FetchAccountSpend(context.Background(), "1234567890", reviewDate)

		assert.Nil(t, spend.Error)
		require.NotNil(t, spend.BudgetError)
		assert.Equal(t, "REQUEST_FAILED", spend.BudgetError.Status)
		assert.Equal(t, 30.0, spend.TotalSpent)
		assert.Equal(t, 0.0, spend.CurrentDailyBudget)
	})
}
