package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/budget-review-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

const (
	apiTokensTable   = "api_tokens"
	tokenEventsTable = "token_refresh_events"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// metadataTables mapeia cada plataforma para a sua tabela de metadados de token
var metadataTables = map[domain.Platform]string{
	domain.PlatformGoogle: "google_ads_token_metadata",
	domain.PlatformMeta:   "meta_token_metadata",
}

//go:generate mockgen -source=token.go -destination=mocks/token.go -package=mocks
type TokenRepository interface {
	// GetSecrets retorna os valores encontrados; nomes ausentes não aparecem no mapa
	GetSecrets(ctx context.Context, names ...string) (map[string]string, error)
	SaveSecret(ctx context.Context, name, value string) error
	GetMetadata(ctx context.Context, platform domain.Platform, tokenType string) (*domain.TokenMetadata, error)
	SaveMetadata(ctx context.Context, metadata *domain.TokenMetadata) error
	AppendEvent(ctx context.Context, event *domain.TokenEvent) error
}

type tokenRepository struct {
	conn *postgres.Connection
}

func NewTokenRepository(conn *postgres.Connection) TokenRepository {
	return &tokenRepository{
		conn: conn,
	}
}

func metadataTable(platform domain.Platform) (string, error) {
	table, ok := metadataTables[platform]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownPlatform, platform)
	}
	return table, nil
}

func (r *tokenRepository) GetSecrets(ctx context.Context, names ...string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("name", "value").
		From(apiTokensTable).
		Where(squirrel.Eq{"name": names}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	secrets := make(map[string]string, len(names))
	for rows.Next() {
		var name string
		var value sql.NullString
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("erro ao escanear segredo: %w", err)
		}
		if value.Valid && value.String != "" {
			secrets[name] = value.String
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return secrets, nil
}

func (r *tokenRepository) SaveSecret(ctx context.Context, name, value string) error {
	query, args, err := squirrel.
		Insert(apiTokensTable).
		Columns("name", "value", "updated_at").
		Values(name, value, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar segredo %s: %w", name, err)
	}

	return nil
}

func (r *tokenRepository) GetMetadata(ctx context.Context, platform domain.Platform, tokenType string) (*domain.TokenMetadata, error) {
	table, err := metadataTable(platform)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("token_type", "status", "last_refreshed", "last_checked", "expires_at").
		From(table).
		Where(squirrel.Eq{"token_type": tokenType}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	metadata := &domain.TokenMetadata{Platform: platform}
	var lastRefreshed, lastChecked, expiresAt sql.NullTime

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&metadata.TokenType,
		&metadata.Status,
		&lastRefreshed,
		&lastChecked,
		&expiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar metadados do token: %w", err)
	}

	metadata.LastRefreshed = nullTimePtr(lastRefreshed)
	metadata.LastChecked = nullTimePtr(lastChecked)
	metadata.ExpiresAt = nullTimePtr(expiresAt)

	return metadata, nil
}

func (r *tokenRepository) SaveMetadata(ctx context.Context, metadata *domain.TokenMetadata) error {
	table, err := metadataTable(metadata.Platform)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert(table).
		Columns("token_type", "status", "last_refreshed", "last_checked", "expires_at", "updated_at").
		Values(
			metadata.TokenType,
			metadata.Status,
			metadata.LastRefreshed,
			metadata.LastChecked,
			metadata.ExpiresAt,
			squirrel.Expr("NOW()"),
		).
		Suffix(`ON CONFLICT (token_type) DO UPDATE SET
			status = EXCLUDED.status,
			last_refreshed = COALESCE(EXCLUDED.last_refreshed, ` + table + `.last_refreshed),
			last_checked = COALESCE(EXCLUDED.last_checked, ` + table + `.last_checked),
			expires_at = COALESCE(EXCLUDED.expires_at, ` + table + `.expires_at),
			updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar metadados do token: %w", err)
	}

	return nil
}

func (r *tokenRepository) AppendEvent(ctx context.Context, event *domain.TokenEvent) error {
	var details []byte
	if len(event.Details) > 0 {
		var err error
		details, err = json.Marshal(event.Details)
		if err != nil {
			return fmt.Errorf("erro ao serializar detalhes do evento: %w", err)
		}
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := squirrel.
		Insert(tokenEventsTable).
		Columns("platform", "token_type", "event_type", "status", "message", "details", "created_at").
		Values(event.Platform, event.TokenType, event.EventType, event.Status, event.Message, details, createdAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao registrar evento de token: %w", err)
	}

	return nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
