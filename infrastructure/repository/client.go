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
	clientsTable   = "clients c"
	clientsColumns = "c.id, c.company_name, c.status, c.meta_account_id, c.meta_ads_budget, c.google_account_id, c.google_ads_budget"
)

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks
type ClientRepository interface {
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, status []domain.ClientStatus) ([]*domain.Client, error)
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query, args, err := squirrel.
		Select(clientsColumns).
		From(clientsTable).
		Where(squirrel.Eq{"c.id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	client, err := scanClient(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return client, nil
}

func (r *clientRepository) ListClients(ctx context.Context, status []domain.ClientStatus) ([]*domain.Client, error) {
	queryBuilder := squirrel.
		Select(clientsColumns).
		From(clientsTable).
		OrderBy("c.company_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(status) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.status": status})
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

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar cliente: %w", err)
		}
		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clients, nil
}

// rowScanner abstrai *sql.Row e *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	client := &domain.Client{}
	var metaBudget, googleBudget sql.NullFloat64

	if err := row.Scan(
		&client.ID,
		&client.CompanyName,
		&client.Status,
		&client.MetaAccountID,
		&metaBudget,
		&client.GoogleAccountID,
		&googleBudget,
	); err != nil {
		return nil, err
	}

	client.MetaAdsBudget = metaBudget.Float64
	client.GoogleAdsBudget = googleBudget.Float64

	return client, nil
}
