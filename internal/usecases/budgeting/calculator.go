package budgeting

import (
	"math"
	"time"

	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/pkg/utils"
)

// Policy são os limites usados pela calculadora
type Policy struct {
	AdjustmentThreshold float64
}

func NewPolicy(cfg config.BudgetPolicy) Policy {
	return Policy{AdjustmentThreshold: cfg.AdjustmentThreshold}
}

type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

// Calculate calcula o ritmo ideal e os dois sinais de ajuste. Não tem efeitos colaterais:
// a data de referência vem em input.Today.
func (c *Calculator) Calculate(input domain.BudgetInput) domain.BudgetInfo {
	today := domain.TruncateDay(input.Today)

	periodEnd := utils.LastDayOfMonth(today)
	if input.CustomBudgetEndDate != nil {
		y, m, d := input.CustomBudgetEndDate.Date()
		customEnd := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
		if customEnd.After(today) {
			periodEnd = customEnd
		}
	}

	remainingDays := daysBetween(today, periodEnd) + 1
	remainingBudget := math.Max(0, input.EffectiveBudget-input.TotalSpent)

	idealDailyBudget := 0.0
	if remainingDays > 0 {
		idealDailyBudget = utils.RoundWithTwoDecimalPlace(remainingBudget / float64(remainingDays))
	}

	spentPercentage := 0.0
	if input.EffectiveBudget > 0 {
		spentPercentage = math.Round(input.TotalSpent / input.EffectiveBudget * 100)
	}

	info := domain.BudgetInfo{
		PeriodEnd:                  periodEnd,
		RemainingDays:              remainingDays,
		RemainingBudget:            utils.RoundWithTwoDecimalPlace(remainingBudget),
		IdealDailyBudget:           idealDailyBudget,
		SpentPercentage:            spentPercentage,
		AdjustmentDirection:        domain.AdjustmentNone,
		AverageAdjustmentDirection: domain.AdjustmentNone,
	}

	if input.CurrentDailyBudget > 0 {
		info.NeedsBudgetAdjustment, info.BudgetAdjustment, info.AdjustmentDirection =
			c.compare(idealDailyBudget, input.CurrentDailyBudget)
	}

	if input.WeightedRecentSpend > 0 {
		info.NeedsAdjustmentBasedOnAverage, info.AverageAdjustment, info.AverageAdjustmentDirection =
			c.compare(idealDailyBudget, input.WeightedRecentSpend)
	}

	return info
}

func (c *Calculator) compare(ideal, baseline float64) (bool, float64, domain.AdjustmentDirection) {
	diff := utils.AbsDiff(ideal, baseline)
	if diff == 0 || diff < c.policy.AdjustmentThreshold {
		return false, diff, domain.AdjustmentNone
	}

	if ideal > baseline {
		return true, diff, domain.AdjustmentIncrease
	}
	return true, diff, domain.AdjustmentDecrease
}

// daysBetween conta dias de calendário, imune a mudanças de horário de verão
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Ceil(b.Sub(a).Hours() / 24))
	if days < 0 {
		return -days
	}
	return days
}
