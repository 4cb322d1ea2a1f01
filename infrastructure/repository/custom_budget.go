package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-review-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

const (
	customBudgetsTable   = "custom_budgets cb"
	customBudgetsColumns = "cb.id, cb.client_id, cb.platform, cb.account_id, cb.budget_amount, cb.start_date, cb.end_date, cb.is_active, cb.description, cb.created_at"
)

//go:generate mockgen -source=custom_budget.go -destination=mocks/custom_budget.go -package=mocks
type CustomBudgetRepository interface {
	// ListActiveOnDate retorna os orçamentos ativos do cliente/plataforma que cobrem a data, mais recentes primeiro
	ListActiveOnDate(ctx context.Context, clientID string, platform domain.Platform, onDate time.Time) ([]*domain.CustomBudget, error)
	// ListActiveOverlapping retorna os orçamentos ativos cujo intervalo cruza [startDate, endDate]
	ListActiveOverlapping(ctx context.Context, clientID string, platform domain.Platform, startDate, endDate time.Time, excludeID string) ([]*domain.CustomBudget, error)
}

type customBudgetRepository struct {
	conn *postgres.Connection
}

func NewCustomBudgetRepository(conn *postgres.Connection) CustomBudgetRepository {
	return &customBudgetRepository{
		conn: conn,
	}
}

func (r *customBudgetRepository) ListActiveOnDate(ctx context.Context, clientID string, platform domain.Platform, onDate time.Time) ([]*domain.CustomBudget, error) {
	day := onDate.Format(time.DateOnly)

	query, args, err := squirrel.
		Select(customBudgetsColumns).
		From(customBudgetsTable).
		Where(squirrel.Eq{"cb.client_id": clientID}).
		Where(squirrel.Eq{"cb.platform": platform}).
		Where(squirrel.Eq{"cb.is_active": true}).
		Where(squirrel.LtOrEq{"cb.start_date": day}).
		Where(squirrel.GtOrEq{"cb.end_date": day}).
		OrderBy("cb.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.query(ctx, query, args...)
}

func (r *customBudgetRepository) ListActiveOverlapping(ctx context.Context, clientID string, platform domain.Platform, startDate, endDate time.Time, excludeID string) ([]*domain.CustomBudget, error) {
	queryBuilder := squirrel.
		Select(customBudgetsColumns).
		From(customBudgetsTable).
		Where(squirrel.Eq{"cb.client_id": clientID}).
		Where(squirrel.Eq{"cb.platform": platform}).
		Where(squirrel.Eq{"cb.is_active": true}).
		Where(squirrel.LtOrEq{"cb.start_date": endDate.Format(time.DateOnly)}).
		Where(squirrel.GtOrEq{"cb.end_date": startDate.Format(time.DateOnly)}).
		OrderBy("cb.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if excludeID != "" {
		queryBuilder = queryBuilder.Where(squirrel.NotEq{"cb.id": excludeID})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.query(ctx, query, args...)
}

func (r *customBudgetRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.CustomBudget, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	budgets := make([]*domain.CustomBudget, 0)
	for rows.Next() {
		budget, err := scanCustomBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear orçamento personalizado: %w", err)
		}
		budgets = append(budgets, budget)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return budgets, nil
}

func scanCustomBudget(row rowScanner) (*domain.CustomBudget, error) {
	budget := &domain.CustomBudget{}
	var accountID, description sql.NullString

	if err := row.Scan(
		&budget.ID,
		&budget.ClientID,
		&budget.Platform,
		&accountID,
		&budget.BudgetAmount,
		&budget.StartDate,
		&budget.EndDate,
		&budget.IsActive,
		&description,
		&budget.CreatedAt,
	); err != nil {
		return nil, err
	}

	if accountID.Valid && accountID.String != "" {
		budget.AccountID = &accountID.String
	}
	if description.Valid {
		budget.Description = &description.String
	}

	return budget, nil
}
