package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

var customBudgetColumns = []string{"id", "client_id", "platform", "account_id", "budget_amount", "start_date", "end_date", "is_active", "description", "created_at"}

func TestCustomBudgetRepository_ListActiveOnDate(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewCustomBudgetRepository(conn)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM custom_budgets cb WHERE cb.client_id = \$1 AND cb.platform = \$2 AND cb.is_active = \$3 AND cb.start_date <= \$4 AND cb.end_date >= \$5 ORDER BY cb.created_at DESC`).
		WithArgs("client-1", "meta", true, "2024-06-10", "2024-06-10").
		WillReturnRows(sqlmock.NewRows(customBudgetColumns).
			AddRow("cb-2", "client-1", "meta", "123456", 2000.0, start, end, true, nil, created.AddDate(0, 0, 1)).
			AddRow("cb-1", "client-1", "meta", nil, 3000.0, start, end, true, "campanha de junho", created))

	budgets, err := repo.ListActiveOnDate(context.Background(), "client-1", domain.PlatformMeta, time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "cb-2", budgets[0].ID)
	assert.False(t, budgets[0].IsClientWide())
	assert.True(t, budgets[1].IsClientWide())
	require.NotNil(t, budgets[1].Description)
	assert.Equal(t, "campanha de junho", *budgets[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomBudgetRepository_ListActiveOverlapping(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewCustomBudgetRepository(conn)

	mock.ExpectQuery(`SELECT .* FROM custom_budgets cb WHERE .* AND cb.start_date <= \$4 AND cb.end_date >= \$5 AND cb.id <> \$6`).
		WithArgs("client-1", "google", true, "2024-06-30", "2024-06-01", "cb-9").
		WillReturnRows(sqlmock.NewRows(customBudgetColumns))

	budgets, err := repo.ListActiveOverlapping(
		context.Background(),
		"client-1",
		domain.PlatformGoogle,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		"cb-9",
	)

	require.NoError(t, err)
	assert.Empty(t, budgets)
	assert.NoError(t, mock.ExpectationsWereMet())
}
