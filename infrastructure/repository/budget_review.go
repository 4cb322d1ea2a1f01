package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/budget-review-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

const (
	budgetReviewsTable   = "budget_reviews br"
	budgetReviewsColumns = "br.id, br.client_id, br.account_id, br.platform, br.review_date, br.daily_budget_current, br.total_spent, br.last_five_days_spent, " +
		"br.day_1_spent, br.day_2_spent, br.day_3_spent, br.day_4_spent, br.day_5_spent, " +
		"br.using_custom_budget, br.custom_budget_id, br.custom_budget_amount, br.custom_budget_start_date, br.custom_budget_end_date, " +
		"br.created_at, br.updated_at"
)

//go:generate mockgen -source=budget_review.go -destination=mocks/budget_review.go -package=mocks
type BudgetReviewRepository interface {
	// Upsert grava a revisão pela chave (client_id, account_id, platform, review_date) e retorna o id da linha
	Upsert(ctx context.Context, review *domain.BudgetReview) (string, error)
	GetByKey(ctx context.Context, key domain.ReviewKey) (*domain.BudgetReview, error)
	List(ctx context.Context, filters domain.BudgetReviewFilters) ([]*domain.BudgetReview, error)
}

type budgetReviewRepository struct {
	conn *postgres.Connection
}

func NewBudgetReviewRepository(conn *postgres.Connection) BudgetReviewRepository {
	return &budgetReviewRepository{
		conn: conn,
	}
}

func (r *budgetReviewRepository) Upsert(ctx context.Context, review *domain.BudgetReview) (string, error) {
	id := review.ID
	if id == "" {
		id = uuid.NewString()
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("budget_reviews").
		Columns(
			"id", "client_id", "account_id", "platform", "review_date",
			"daily_budget_current", "total_spent", "last_five_days_spent",
			"day_1_spent", "day_2_spent", "day_3_spent", "day_4_spent", "day_5_spent",
			"using_custom_budget", "custom_budget_id", "custom_budget_amount",
			"custom_budget_start_date", "custom_budget_end_date",
		).
		Values(
			id,
			review.ClientID,
			review.AccountID,
			review.Platform,
			review.ReviewDate.Format(time.DateOnly),
			review.DailyBudgetCurrent,
			review.TotalSpent,
			review.LastFiveDaysSpent,
			review.Day1Spent,
			review.Day2Spent,
			review.Day3Spent,
			review.Day4Spent,
			review.Day5Spent,
			review.UsingCustomBudget,
			review.CustomBudgetID,
			review.CustomBudgetAmount,
			formatOptionalDate(review.CustomBudgetStartDate),
			formatOptionalDate(review.CustomBudgetEndDate),
		).
		Suffix(`
			ON CONFLICT (client_id, account_id, platform, review_date) DO UPDATE SET
				daily_budget_current = EXCLUDED.daily_budget_current,
				total_spent = EXCLUDED.total_spent,
				last_five_days_spent = EXCLUDED.last_five_days_spent,
				day_1_spent = EXCLUDED.day_1_spent,
				day_2_spent = EXCLUDED.day_2_spent,
				day_3_spent = EXCLUDED.day_3_spent,
				day_4_spent = EXCLUDED.day_4_spent,
				day_5_spent = EXCLUDED.day_5_spent,
				using_custom_budget = EXCLUDED.using_custom_budget,
				custom_budget_id = EXCLUDED.custom_budget_id,
				custom_budget_amount = EXCLUDED.custom_budget_amount,
				custom_budget_start_date = EXCLUDED.custom_budget_start_date,
				custom_budget_end_date = EXCLUDED.custom_budget_end_date,
				updated_at = NOW()
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	var reviewID string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&reviewID); err != nil {
		switch {
		case postgres.HasErrorCode(err, postgres.ForeignKeyViolation):
			return "", fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
		case postgres.HasErrorCode(err, postgres.UniqueViolation):
			return "", fmt.Errorf("%w: %w", ErrUniqueViolation, err)
		}
		return "", fmt.Errorf("erro ao gravar revisão de orçamento: %w", err)
	}

	return reviewID, nil
}

func (r *budgetReviewRepository) GetByKey(ctx context.Context, key domain.ReviewKey) (*domain.BudgetReview, error) {
	query, args, err := squirrel.
		Select(budgetReviewsColumns).
		From(budgetReviewsTable).
		Where(squirrel.Eq{"br.client_id": key.ClientID}).
		Where(squirrel.Eq{"br.account_id": key.AccountID}).
		Where(squirrel.Eq{"br.platform": key.Platform}).
		Where(squirrel.Eq{"br.review_date": key.ReviewDate.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	review, err := scanBudgetReview(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear revisão: %w", err)
	}

	return review, nil
}

func (r *budgetReviewRepository) List(ctx context.Context, filters domain.BudgetReviewFilters) ([]*domain.BudgetReview, error) {
	queryBuilder := squirrel.
		Select(budgetReviewsColumns).
		From(budgetReviewsTable).
		OrderBy("br.review_date DESC", "br.client_id ASC", "br.account_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.ClientID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"br.client_id": filters.ClientID})
	}
	if filters.AccountID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"br.account_id": filters.AccountID})
	}
	if filters.Platform != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"br.platform": filters.Platform})
	}
	if filters.ReviewDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"br.review_date": filters.ReviewDate.Format(time.DateOnly)})
	}
	if filters.StartDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"br.review_date": filters.StartDate.Format(time.DateOnly)})
	}
	if filters.EndDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"br.review_date": filters.EndDate.Format(time.DateOnly)})
	}
	if filters.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filters.Limit)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reviews := make([]*domain.BudgetReview, 0)
	for rows.Next() {
		review, err := scanBudgetReview(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear revisões: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return reviews, nil
}

func scanBudgetReview(row rowScanner) (*domain.BudgetReview, error) {
	review := &domain.BudgetReview{}
	var customBudgetID sql.NullString
	var customBudgetAmount sql.NullFloat64
	var customStart, customEnd sql.NullTime

	if err := row.Scan(
		&review.ID,
		&review.ClientID,
		&review.AccountID,
		&review.Platform,
		&review.ReviewDate,
		&review.DailyBudgetCurrent,
		&review.TotalSpent,
		&review.LastFiveDaysSpent,
		&review.Day1Spent,
		&review.Day2Spent,
		&review.Day3Spent,
		&review.Day4Spent,
		&review.Day5Spent,
		&review.UsingCustomBudget,
		&customBudgetID,
		&customBudgetAmount,
		&customStart,
		&customEnd,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if customBudgetID.Valid {
		review.CustomBudgetID = &customBudgetID.String
	}
	if customBudgetAmount.Valid {
		review.CustomBudgetAmount = &customBudgetAmount.Float64
	}
	if customStart.Valid {
		review.CustomBudgetStartDate = &customStart.Time
	}
	if customEnd.Valid {
		review.CustomBudgetEndDate = &customEnd.Time
	}

	return review, nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
