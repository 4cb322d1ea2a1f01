package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

func newReview() *domain.BudgetReview {
	review := &domain.BudgetReview{
		ClientID:           "client-1",
		AccountID:          "1234567890",
		Platform:           domain.PlatformGoogle,
		ReviewDate:         time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		DailyBudgetCurrent: 120,
		TotalSpent:         900,
		LastFiveDaysSpent:  100,
	}
	review.SetDaySpends([5]float64{100, 100, 100, 100, 100})
	return review
}

func TestBudgetReviewRepository_Upsert(t *testing.T) {
	t.Run("grava e retorna o id da linha", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewBudgetReviewRepository(conn)

		mock.ExpectQuery(`INSERT INTO budget_reviews .* ON CONFLICT \(client_id, account_id, platform, review_date\) DO UPDATE SET`).
			WithArgs(
				sqlmock.AnyArg(), "client-1", "1234567890", "google", "2024-06-10",
				120.0, 900.0, 100.0,
				100.0, 100.0, 100.0, 100.0, 100.0,
				false, nil, nil, nil, nil,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("review-1"))

		id, err := repo.Upsert(context.Background(), newReview())

		require.NoError(t, err)
		assert.Equal(t, "review-1", id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("grava o snapshot do orçamento personalizado", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewBudgetReviewRepository(conn)

		review := newReview()
		review.CustomBudgetSnapshot = domain.NewCustomBudgetSnapshot(&domain.CustomBudget{
			ID:           "cb-1",
			BudgetAmount: 5000,
			StartDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		})

		mock.ExpectQuery(`INSERT INTO budget_reviews`).
			WithArgs(
				sqlmock.AnyArg(), "client-1", "1234567890", "google", "2024-06-10",
				120.0, 900.0, 100.0,
				100.0, 100.0, 100.0, 100.0, 100.0,
				true, "cb-1", 5000.0, "2024-06-01", "2024-07-15",
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("review-1"))

		_, err := repo.Upsert(context.Background(), review)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("violação de chave estrangeira vira ErrForeignKeyViolation", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewBudgetReviewRepository(conn)

		mock.ExpectQuery(`INSERT INTO budget_reviews`).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "budget_reviews_custom_budget_id_fkey"})

		_, err := repo.Upsert(context.Background(), newReview())

		assert.ErrorIs(t, err, ErrForeignKeyViolation)
		var pqErr *pq.Error
		assert.True(t, errors.As(err, &pqErr))
	})

	t.Run("outros erros são embrulhados", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewBudgetReviewRepository(conn)

		mock.ExpectQuery(`INSERT INTO budget_reviews`).
			WillReturnError(errors.New("conexão perdida"))

		_, err := repo.Upsert(context.Background(), newReview())

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrForeignKeyViolation)
		assert.Contains(t, err.Error(), "conexão perdida")
	})
}

func TestBudgetReviewRepository_GetByKey(t *testing.T) {
	columns := []string{
		"id", "client_id", "account_id", "platform", "review_date", "daily_budget_current", "total_spent", "last_five_days_spent",
		"day_1_spent", "day_2_spent", "day_3_spent", "day_4_spent", "day_5_spent",
		"using_custom_budget", "custom_budget_id", "custom_budget_amount", "custom_budget_start_date", "custom_budget_end_date",
		"created_at", "updated_at",
	}
	reviewDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	key := domain.ReviewKey{ClientID: "client-1", AccountID: "1234567890", Platform: domain.PlatformGoogle, ReviewDate: reviewDate}

	t.Run("retorna a revisão com o snapshot", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewBudgetReviewRepository(conn)

		now := time.Now()
		mock.ExpectQuery(`SELECT .* FROM budget_reviews br WHERE br.client_id = \$1 AND br.account_id = \$2 AND br.platform = \$3 AND br.review_date = \$4`).
			WithArgs("client-1", "1234567890", "google", "2024-06-10").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				"review-1", "client-1", "1234567890", "google", reviewDate, 120.0, 900.0, 100.0,
				10.0, 20.0, 30.0, 40.0, 50.0,
				true, "cb-1", 5000.0, reviewDate, reviewDate.AddDate(0, 1, 0),
				now, now,
			))

		review, err := repo.GetByKey(context.Background(), key)

		require.NoError(t, err)
		require.NotNil(t, review)
		assert.Equal(t, "review-1", review.ID)
		assert.Equal(t, domain.PlatformGoogle, review.Platform)
		assert.Equal(t, [5]float64{10, 20, 30, 40, 50}, review.DaySpends())
		assert.True(t, review.UsingCustomBudget)
		require.NotNil(t, review.CustomBudgetID)
		assert.Equal(t, "cb-1", *review.CustomBudgetID)
		assert.Equal(t, 5000.0, *review.CustomBudgetAmount)
	})

	t.Run("retorna nil quando não existe", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewBudgetReviewRepository(conn)

		mock.ExpectQuery(`SELECT .* FROM budget_reviews br`).
			WillReturnRows(sqlmock.NewRows(columns))

		review, err := repo.GetByKey(context.Background(), key)

		assert.NoError(t, err)
		assert.Nil(t, review)
	})
}
