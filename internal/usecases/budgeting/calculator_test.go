package budgeting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculator_Calculate(t *testing.T) {
	calculator := NewCalculator(Policy{AdjustmentThreshold: 5})
	customEnd := date(2024, 7, 15)
	pastCustomEnd := date(2024, 6, 5)
	earlyCustomEnd := date(2024, 6, 20)

	tests := []struct {
		name     string
		input    domain.BudgetInput
		expected domain.BudgetInfo
	}{
		{
			name: "dia 10 de um mês de 30 dias: 21 dias restantes e ritmo de 100",
			input: domain.BudgetInput{
				EffectiveBudget: 3000,
				TotalSpent:      900,
				Today:           date(2024, 6, 10),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                  date(2024, 6, 30),
				RemainingDays:              21,
				RemainingBudget:            2100,
				IdealDailyBudget:           100,
				SpentPercentage:            30,
				AdjustmentDirection:        domain.AdjustmentNone,
				AverageAdjustmentDirection: domain.AdjustmentNone,
			},
		},
		{
			name: "gasto acima do orçamento nunca gera ritmo negativo",
			input: domain.BudgetInput{
				EffectiveBudget:    1000,
				TotalSpent:         1250,
				CurrentDailyBudget: 40,
				Today:              date(2024, 6, 10),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                  date(2024, 6, 30),
				RemainingDays:              21,
				RemainingBudget:            0,
				IdealDailyBudget:           0,
				SpentPercentage:            125,
				NeedsBudgetAdjustment:      true,
				BudgetAdjustment:           40,
				AdjustmentDirection:        domain.AdjustmentDecrease,
				AverageAdjustmentDirection: domain.AdjustmentNone,
			},
		},
		{
			name: "orçamento personalizado que termina depois de hoje define o fim do período",
			input: domain.BudgetInput{
				EffectiveBudget:     4500,
				TotalSpent:          0,
				CustomBudgetEndDate: &customEnd,
				Today:               date(2024, 6, 16),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                  customEnd,
				RemainingDays:              30,
				RemainingBudget:            4500,
				IdealDailyBudget:           150,
				SpentPercentage:            0,
				AdjustmentDirection:        domain.AdjustmentNone,
				AverageAdjustmentDirection: domain.AdjustmentNone,
			},
		},
		{
			name: "orçamento personalizado que termina antes do fim do mês encurta o período",
			input: domain.BudgetInput{
				EffectiveBudget:     1100,
				TotalSpent:          0,
				CustomBudgetEndDate: &earlyCustomEnd,
				Today:               date(2024, 6, 10),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                  earlyCustomEnd,
				RemainingDays:              11,
				RemainingBudget:            1100,
				IdealDailyBudget:           100,
				AdjustmentDirection:        domain.AdjustmentNone,
				AverageAdjustmentDirection: domain.AdjustmentNone,
			},
		},
		{
			name: "orçamento personalizado já encerrado é ignorado",
			input: domain.BudgetInput{
				EffectiveBudget:     2100,
				CustomBudgetEndDate: &pastCustomEnd,
				Today:               date(2024, 6, 10),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                  date(2024, 6, 30),
				RemainingDays:              21,
				RemainingBudget:            2100,
				IdealDailyBudget:           100,
				AdjustmentDirection:        domain.AdjustmentNone,
				AverageAdjustmentDirection: domain.AdjustmentNone,
			},
		},
		{
			name: "sinais independentes: aumentar pelo orçamento atual, sem ajuste pela média",
			input: domain.BudgetInput{
				EffectiveBudget:     3000,
				TotalSpent:          900,
				CurrentDailyBudget:  80,
				WeightedRecentSpend: 97,
				Today:               date(2024, 6, 10),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                     date(2024, 6, 30),
				RemainingDays:                 21,
				RemainingBudget:               2100,
				IdealDailyBudget:              100,
				SpentPercentage:               30,
				NeedsBudgetAdjustment:         true,
				BudgetAdjustment:              20,
				AdjustmentDirection:           domain.AdjustmentIncrease,
				NeedsAdjustmentBasedOnAverage: false,
				AverageAdjustment:             3,
				AverageAdjustmentDirection:    domain.AdjustmentNone,
			},
		},
		{
			name: "os dois sinais ao mesmo tempo em direções opostas",
			input: domain.BudgetInput{
				EffectiveBudget:     3000,
				TotalSpent:          900,
				CurrentDailyBudget:  120,
				WeightedRecentSpend: 60,
				Today:               date(2024, 6, 10),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                     date(2024, 6, 30),
				RemainingDays:                 21,
				RemainingBudget:               2100,
				IdealDailyBudget:              100,
				SpentPercentage:               30,
				NeedsBudgetAdjustment:         true,
				BudgetAdjustment:              20,
				AdjustmentDirection:           domain.AdjustmentDecrease,
				NeedsAdjustmentBasedOnAverage: true,
				AverageAdjustment:             40,
				AverageAdjustmentDirection:    domain.AdjustmentIncrease,
			},
		},
		{
			name: "diferença exatamente no limite de 5 recomenda ajuste",
			input: domain.BudgetInput{
				EffectiveBudget:    3000,
				TotalSpent:         900,
				CurrentDailyBudget: 95,
				Today:              date(2024, 6, 10),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                  date(2024, 6, 30),
				RemainingDays:              21,
				RemainingBudget:            2100,
				IdealDailyBudget:           100,
				SpentPercentage:            30,
				NeedsBudgetAdjustment:      true,
				BudgetAdjustment:           5,
				AdjustmentDirection:        domain.AdjustmentIncrease,
				AverageAdjustmentDirection: domain.AdjustmentNone,
			},
		},
		{
			name: "último dia do mês tem um dia restante",
			input: domain.BudgetInput{
				EffectiveBudget: 3000,
				TotalSpent:      2950,
				Today:           date(2024, 2, 29),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                  date(2024, 2, 29),
				RemainingDays:              1,
				RemainingBudget:            50,
				IdealDailyBudget:           50,
				SpentPercentage:            98,
				AdjustmentDirection:        domain.AdjustmentNone,
				AverageAdjustmentDirection: domain.AdjustmentNone,
			},
		},
		{
			name: "sem orçamento efetivo o percentual gasto é zero",
			input: domain.BudgetInput{
				TotalSpent: 100,
				Today:      date(2024, 6, 10),
			},
			expected: domain.BudgetInfo{
				PeriodEnd:                  date(2024, 6, 30),
				RemainingDays:              21,
				AdjustmentDirection:        domain.AdjustmentNone,
				AverageAdjustmentDirection: domain.AdjustmentNone,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calculator.Calculate(tt.input))
		})
	}
}

func TestCalculator_IgnoresTimeOfDay(t *testing.T) {
	calculator := NewCalculator(Policy{AdjustmentThreshold: 5})

	morning := calculator.Calculate(domain.BudgetInput{EffectiveBudget: 3000, TotalSpent: 900, Today: time.Date(2024, 6, 10, 0, 5, 0, 0, time.UTC)})
	night := calculator.Calculate(domain.BudgetInput{EffectiveBudget: 3000, TotalSpent: 900, Today: time.Date(2024, 6, 10, 23, 55, 0, 0, time.UTC)})

	assert.Equal(t, morning, night)
	assert.Equal(t, 21, morning.RemainingDays)
}

func TestCalculator_FimPersonalizadoEmUTC(t *testing.T) {
	calculator := NewCalculator(Policy{AdjustmentThreshold: 5})
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	customEnd := time.Date(2024, 7, 15, 0, 0, 0, 0, time.FixedZone("", 0))

	info := calculator.Calculate(domain.BudgetInput{
		EffectiveBudget:     3600,
		TotalSpent:          0,
		CustomBudgetEndDate: &customEnd,
		Today:               time.Date(2024, 7, 14, 0, 0, 0, 0, saoPaulo),
	})
	assert.Equal(t, 2, info.RemainingDays)
	assert.Equal(t, 1800.0, info.IdealDailyBudget)

	// no próprio dia final o período continua sendo o fim do mês
	lastDay := calculator.Calculate(domain.BudgetInput{
		EffectiveBudget:     3600,
		CustomBudgetEndDate: &customEnd,
		Today:               time.Date(2024, 7, 15, 0, 0, 0, 0, saoPaulo),
	})
	assert.Equal(t, 17, lastDay.RemainingDays)
}
