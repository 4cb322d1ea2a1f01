package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	googledomain "github.com/vfg2006/budget-review-api/infrastructure/integrator/google/domain"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

const (
	dailyCostQuery = "SELECT campaign.id, metrics.cost_micros, segments.date FROM campaign " +
		"WHERE segments.date BETWEEN '%s' AND '%s'"
	enabledBudgetsQuery = "SELECT campaign.id, campaign_budget.amount_micros FROM campaign " +
		"WHERE campaign.status = 'ENABLED'"
)

type GoogleIntegrator struct {
	Client googleclient.Client
}

func New(client googleclient.Client) *GoogleIntegrator {
	return &GoogleIntegrator{
		Client: client,
	}
}

func (s *GoogleIntegrator) Platform() domain.Platform {
	return domain.PlatformGoogle
}

// FetchAccountSpend agrega o gasto do mês e dos últimos cinco dias da conta.
// Falhas da API nunca viram números estimados: o gasto volta zerado com o detalhe do erro.
func (s *GoogleIntegrator) FetchAccountSpend(ctx context.Context, accountID string, reviewDate time.Time) *domain.AccountSpend {
	start, end := domain.SpendWindow(reviewDate)
	query := fmt.Sprintf(dailyCostQuery, start.Format(time.DateOnly), end.Format(time.DateOnly))

	rows, err := s.Client.Search(ctx, accountID, query)
	if err != nil {
		detail := toErrorDetail(err, accountID, "daily_cost")
		logrus.WithFields(logrus.Fields{
			"platform":   domain.PlatformGoogle,
			"account_id": accountID,
			"status":     detail.Status,
			"error":      detail.Message,
		}).Error("spend: falha ao consultar gasto diário, usando gasto zerado")
		return domain.ZeroSpend(detail)
	}

	daily := domain.DailySpend{}
	for _, row := range rows {
		daily.Add(row.Segments.Date, googledomain.FromMicros(row.Metrics.CostMicros))
	}

	budget, budgetErr := s.currentDailyBudget(ctx, accountID)

	spend := domain.NewAccountSpend(reviewDate, daily, budget)
	spend.BudgetError = budgetErr

	logrus.WithFields(logrus.Fields{
		"platform":        domain.PlatformGoogle,
		"account_id":      accountID,
		"rows":            len(rows),
		"total_spent":     spend.TotalSpent,
		"weighted_recent": spend.WeightedRecentSpend,
	}).Debug("spend: gasto agregado")

	return spend
}

// currentDailyBudget soma o orçamento diário das campanhas ativas; falha vira zero com detalhe
func (s *GoogleIntegrator) currentDailyBudget(ctx context.Context, accountID string) (decimal.Decimal, *domain.PlatformErrorDetail) {
	rows, err := s.Client.Search(ctx, accountID, enabledBudgetsQuery)
	if err != nil {
		detail := toErrorDetail(err, accountID, "campaign_budgets")
		logrus.WithFields(logrus.Fields{
			"platform":   domain.PlatformGoogle,
			"account_id": accountID,
			"error":      detail.Message,
		}).Warn("spend: falha ao consultar orçamentos das campanhas, usando zero")
		return decimal.Zero, detail
	}

	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(googledomain.FromMicros(row.CampaignBudget.AmountMicros))
	}
	return sum, nil
}

func toErrorDetail(err error, accountID, operation string) *domain.PlatformErrorDetail {
	var detail *domain.PlatformErrorDetail
	if errors.As(err, &detail) {
		out := *detail
		out.Operation = operation
		return &out
	}

	return &domain.PlatformErrorDetail{
		Platform:  domain.PlatformGoogle,
		AccountID: accountID,
		Operation: operation,
		Status:    "REQUEST_FAILED",
		Message:   err.Error(),
	}
}
