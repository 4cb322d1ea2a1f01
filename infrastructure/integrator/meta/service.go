package meta

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

func (s *MetaIntegrator) Platform() domain.Platform {
	return domain.PlatformMeta
}

// FetchAccountSpend agrega o gasto do mês e dos últimos cinco dias da conta.
// Falhas da API nunca viram números estimados: o gasto volta zerado com o detalhe do erro.
func (s *MetaIntegrator) FetchAccountSpend(ctx context.Context, accountID string, reviewDate time.Time) *domain.AccountSpend {
	since, until := domain.SpendWindow(reviewDate)

	insights, err := s.Client.GetDailySpend(ctx, accountID, since, until)
	if err != nil {
		detail := toErrorDetail(err, accountID, "daily_cost")
		logrus.WithFields(logrus.Fields{
			"platform":   domain.PlatformMeta,
			"account_id": accountID,
			"status":     detail.Status,
			"error":      detail.Message,
		}).Error("spend: falha ao consultar gasto diário, usando gasto zerado")
		return domain.ZeroSpend(detail)
	}

	daily := domain.DailySpend{}
	for _, insight := range insights {
		daily.Add(insight.DateStart, insight.Spend)
	}

	budget, budgetErr := s.currentDailyBudget(ctx, accountID)

	spend := domain.NewAccountSpend(reviewDate, daily, budget)
	spend.BudgetError = budgetErr

	logrus.WithFields(logrus.Fields{
		"platform":        domain.PlatformMeta,
		"account_id":      accountID,
		"rows":            len(insights),
		"total_spent":     spend.TotalSpent,
		"weighted_recent": spend.WeightedRecentSpend,
	}).Debug("spend: gasto agregado")

	return spend
}

func (s *MetaIntegrator) currentDailyBudget(ctx context.Context, accountID string) (decimal.Decimal, *domain.PlatformErrorDetail) {
	campaigns, err := s.Client.GetActiveCampaigns(ctx, accountID)
	if err != nil {
		detail := toErrorDetail(err, accountID, "campaign_budgets")
		logrus.WithFields(logrus.Fields{
			"platform":   domain.PlatformMeta,
			"account_id": accountID,
			"error":      detail.Message,
		}).Warn("spend: falha ao consultar orçamentos das campanhas, usando zero")
		return decimal.Zero, detail
	}

	sum := decimal.Zero
	for i := range campaigns {
		sum = sum.Add(campaigns[i].DailyBudgetAmount())
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
		Platform:  domain.PlatformMeta,
		AccountID: accountID,
		Operation: operation,
		Status:    "REQUEST_FAILED",
		Message:   err.Error(),
	}
}
