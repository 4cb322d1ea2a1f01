package budgeting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repoMocks "github.com/vfg2006/budget-review-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/internal/usecases/budgeting"
	"go.uber.org/mock/gomock"
)

func ptr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func budget(id string, accountID *string, created time.Time) *domain.CustomBudget {
	return &domain.CustomBudget{
		ID:           id,
		ClientID:     "client-1",
		Platform:     domain.PlatformMeta,
		AccountID:    accountID,
		BudgetAmount: 5000,
		StartDate:    day(2024, 6, 1),
		EndDate:      day(2024, 6, 30),
		IsActive:     true,
		CreatedAt:    created,
	}
}

func TestResolver_ResolveActiveCustomBudget(t *testing.T) {
	onDate := day(2024, 6, 15)
	older := day(2024, 5, 1)
	newer := day(2024, 5, 20)

	tests := []struct {
		name       string
		accountID  *string
		candidates []*domain.CustomBudget
		repoErr    error
		expectedID string
		wantErr    bool
	}{
		{
			name:      "orçamento da conta vence o do cliente inteiro",
			accountID: ptr("act_1"),
			candidates: []*domain.CustomBudget{
				budget("cliente", nil, newer),
				budget("conta", ptr("act_1"), older),
			},
			expectedID: "conta",
		},
		{
			name:      "sem orçamento da conta usa o do cliente inteiro",
			accountID: ptr("act_1"),
			candidates: []*domain.CustomBudget{
				budget("outra-conta", ptr("act_2"), newer),
				budget("cliente", nil, older),
			},
			expectedID: "cliente",
		},
		{
			name:      "empate no escopo: o criado por último vence",
			accountID: ptr("act_1"),
			candidates: []*domain.CustomBudget{
				budget("antigo", ptr("act_1"), older),
				budget("novo", ptr("act_1"), newer),
			},
			expectedID: "novo",
		},
		{
			name:      "sem conta informada considera só orçamentos do cliente inteiro",
			accountID: nil,
			candidates: []*domain.CustomBudget{
				budget("conta", ptr("act_1"), newer),
				budget("cliente", nil, older),
			},
			expectedID: "cliente",
		},
		{
			name:       "nenhum candidato",
			accountID:  ptr("act_1"),
			candidates: nil,
		},
		{
			name:      "erro do repositório é propagado",
			accountID: ptr("act_1"),
			repoErr:   errors.New("connection refused"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repoMocks.NewMockCustomBudgetRepository(ctrl)
			repo.EXPECT().
				ListActiveOnDate(gomock.Any(), "client-1", domain.PlatformMeta, onDate).
				Return(tt.candidates, tt.repoErr)

			resolver := budgeting.NewResolver(repo)
			selected, err := resolver.ResolveActiveCustomBudget(context.Background(), "client-1", domain.PlatformMeta, tt.accountID, onDate)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, selected)
				return
			}

			require.NoError(t, err)
			if tt.expectedID == "" {
				assert.Nil(t, selected)
				return
			}
			require.NotNil(t, selected)
			assert.Equal(t, tt.expectedID, selected.ID)
		})
	}
}

func TestResolver_ResolveActiveCustomBudget_ClientIDRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := budgeting.NewResolver(repoMocks.NewMockCustomBudgetRepository(ctrl))

	_, err := resolver.ResolveActiveCustomBudget(context.Background(), "", domain.PlatformMeta, nil, day(2024, 6, 15))
	assert.ErrorIs(t, err, budgeting.ErrClientIDRequired)
}

func TestSelectCustomBudget(t *testing.T) {
	onDate := day(2024, 6, 15)
	created := day(2024, 5, 1)

	t.Run("ignora inativos e fora do intervalo", func(t *testing.T) {
		inactive := budget("inativo", ptr("act_1"), created)
		inactive.IsActive = false

		expired := budget("vencido", ptr("act_1"), created)
		expired.EndDate = day(2024, 6, 14)

		selected := budgeting.SelectCustomBudget([]*domain.CustomBudget{inactive, expired, nil}, ptr("act_1"), onDate)
		assert.Nil(t, selected)
	})

	t.Run("empate exato mantém o primeiro", func(t *testing.T) {
		first := budget("primeiro", nil, created)
		second := budget("segundo", nil, created)

		selected := budgeting.SelectCustomBudget([]*domain.CustomBudget{first, second}, nil, onDate)
		require.NotNil(t, selected)
		assert.Equal(t, "primeiro", selected.ID)
	})

	t.Run("datas de início e fim são inclusivas", func(t *testing.T) {
		cb := budget("junho", nil, created)

		assert.Equal(t, cb, budgeting.SelectCustomBudget([]*domain.CustomBudget{cb}, nil, day(2024, 6, 1)))
		assert.Equal(t, cb, budgeting.SelectCustomBudget([]*domain.CustomBudget{cb}, nil, day(2024, 6, 30)))
		assert.Nil(t, budgeting.SelectCustomBudget([]*domain.CustomBudget{cb}, nil, day(2024, 7, 1)))
	})

	t.Run("datas do banco em UTC e revisão no fuso local", func(t *testing.T) {
		dbZone := time.FixedZone("", 0)
		cb := budget("outubro", nil, created)
		cb.StartDate = time.Date(2026, 10, 1, 0, 0, 0, 0, dbZone)
		cb.EndDate = time.Date(2026, 10, 31, 0, 0, 0, 0, dbZone)

		saoPaulo := time.FixedZone("BRT", -3*60*60)
		tokyo := time.FixedZone("JST", 9*60*60)

		assert.Equal(t, cb, budgeting.SelectCustomBudget([]*domain.CustomBudget{cb}, nil, time.Date(2026, 10, 31, 0, 0, 0, 0, saoPaulo)))
		assert.Equal(t, cb, budgeting.SelectCustomBudget([]*domain.CustomBudget{cb}, nil, time.Date(2026, 10, 1, 0, 0, 0, 0, tokyo)))
	})
}

func TestResolver_HasConflict(t *testing.T) {
	start := day(2024, 6, 10)
	end := day(2024, 6, 20)
	created := day(2024, 5, 1)

	tests := []struct {
		name        string
		accountID   *string
		overlapping []*domain.CustomBudget
		expected    bool
	}{
		{
			name:        "mesma conta conflita",
			accountID:   ptr("act_1"),
			overlapping: []*domain.CustomBudget{budget("a", ptr("act_1"), created)},
			expected:    true,
		},
		{
			name:        "orçamento do cliente inteiro conflita com orçamento de conta",
			accountID:   ptr("act_1"),
			overlapping: []*domain.CustomBudget{budget("b", nil, created)},
			expected:    true,
		},
		{
			name:        "outra conta não conflita",
			accountID:   ptr("act_1"),
			overlapping: []*domain.CustomBudget{budget("c", ptr("act_2"), created)},
			expected:    false,
		},
		{
			name:        "orçamento do cliente inteiro conflita com qualquer sobreposição",
			accountID:   nil,
			overlapping: []*domain.CustomBudget{budget("d", ptr("act_2"), created)},
			expected:    true,
		},
		{
			name:        "o próprio orçamento em edição é ignorado",
			accountID:   ptr("act_1"),
			overlapping: []*domain.CustomBudget{budget("editando", ptr("act_1"), created)},
			expected:    false,
		},
		{
			name:      "sem sobreposição",
			accountID: ptr("act_1"),
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repoMocks.NewMockCustomBudgetRepository(ctrl)
			repo.EXPECT().
				ListActiveOverlapping(gomock.Any(), "client-1", domain.PlatformMeta, start, end, "editando").
				Return(tt.overlapping, nil)

			resolver := budgeting.NewResolver(repo)
			conflict, err := resolver.HasConflict(context.Background(), budgeting.ConflictQuery{
				ClientID:        "client-1",
				Platform:        domain.PlatformMeta,
				StartDate:       start,
				EndDate:         end,
				AccountID:       tt.accountID,
				ExcludeBudgetID: "editando",
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, conflict)
		})
	}
}

func TestResolver_HasConflict_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := budgeting.NewResolver(repoMocks.NewMockCustomBudgetRepository(ctrl))

	_, err := resolver.HasConflict(context.Background(), budgeting.ConflictQuery{
		Platform:  domain.PlatformMeta,
		StartDate: day(2024, 6, 10),
		EndDate:   day(2024, 6, 20),
	})
	assert.ErrorIs(t, err, budgeting.ErrClientIDRequired)

	_, err = resolver.HasConflict(context.Background(), budgeting.ConflictQuery{
		ClientID:  "client-1",
		Platform:  domain.PlatformMeta,
		StartDate: day(2024, 6, 20),
		EndDate:   day(2024, 6, 10),
	})
	assert.ErrorIs(t, err, budgeting.ErrInvalidDateRange)
}
