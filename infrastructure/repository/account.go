package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-review-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

const (
	accountsTable   = "client_accounts ca"
	accountsColumns = "ca.id, ca.client_id, ca.platform, ca.account_id, ca.account_name, ca.budget_amount, ca.is_primary, ca.status"
)

//go:generate mockgen -source=account.go -destination=mocks/account.go -package=mocks
type AccountRepository interface {
	GetAccount(ctx context.Context, clientID string, platform domain.Platform, accountID string) (*domain.AdAccount, error)
	ListAccountsByClient(ctx context.Context, clientID string, platform domain.Platform) ([]*domain.AdAccount, error)
	CreateAccount(ctx context.Context, account *domain.AdAccount) (*domain.AdAccount, error)
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) GetAccount(ctx context.Context, clientID string, platform domain.Platform, accountID string) (*domain.AdAccount, error) {
	query, args, err := squirrel.
		Select(accountsColumns).
		From(accountsTable).
		Where(squirrel.Eq{"ca.client_id": clientID}).
		Where(squirrel.Eq{"ca.platform": platform}).
		Where(squirrel.Eq{"ca.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	acc, err := scanAccount(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar conta: %w", err)
	}

	return acc, nil
}

func (r *accountRepository) ListAccountsByClient(ctx context.Context, clientID string, platform domain.Platform) ([]*domain.AdAccount, error) {
	queryBuilder := squirrel.
		Select(accountsColumns).
		From(accountsTable).
		Where(squirrel.Eq{"ca.client_id": clientID}).
		OrderBy("ca.is_primary DESC", "ca.account_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if platform != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"ca.platform": platform})
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

	accounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

// CreateAccount insere a conta caso ainda não exista e retorna a linha persistida.
// Inserções concorrentes da mesma conta convergem para a mesma linha.
func (r *accountRepository) CreateAccount(ctx context.Context, account *domain.AdAccount) (*domain.AdAccount, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert("client_accounts").
		Columns("id", "client_id", "platform", "account_id", "account_name", "budget_amount", "is_primary", "status").
		Values(
			account.ID,
			account.ClientID,
			account.Platform,
			account.AccountID,
			account.AccountName,
			account.BudgetAmount,
			account.IsPrimary,
			account.Status,
		).
		Suffix("ON CONFLICT (client_id, platform, account_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao inserir conta: %w", err)
	}

	created, err := r.GetAccount(ctx, account.ClientID, account.Platform, account.AccountID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("conta %s não encontrada após inserção", account.AccountID)
	}

	return created, nil
}

func scanAccount(row rowScanner) (*domain.AdAccount, error) {
	acc := &domain.AdAccount{}
	var name sql.NullString
	var budget sql.NullFloat64

	if err := row.Scan(
		&acc.ID,
		&acc.ClientID,
		&acc.Platform,
		&acc.AccountID,
		&name,
		&budget,
		&acc.IsPrimary,
		&acc.Status,
	); err != nil {
		return nil, err
	}

	acc.AccountName = name.String
	if budget.Valid {
		acc.BudgetAmount = &budget.Float64
	}

	return acc, nil
}
