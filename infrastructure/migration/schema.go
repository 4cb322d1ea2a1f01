package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/database/postgres"
)

// step é uma alteração de schema aplicada uma única vez, na ordem da versão
type step struct {
	version    int
	name       string
	statements []string
}

var steps = []step{
	{
		version: 1,
		name:    "clientes e contas de anúncios",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS clients (
				id                TEXT PRIMARY KEY,
				company_name      TEXT NOT NULL,
				status            TEXT NOT NULL DEFAULT 'active',
				meta_account_id   TEXT,
				meta_ads_budget   NUMERIC(14,2) NOT NULL DEFAULT 0,
				google_account_id TEXT,
				google_ads_budget NUMERIC(14,2) NOT NULL DEFAULT 0,
				created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS client_accounts (
				id            TEXT PRIMARY KEY,
				client_id     TEXT NOT NULL REFERENCES clients(id),
				platform      TEXT NOT NULL,
				account_id    TEXT NOT NULL,
				account_name  TEXT NOT NULL DEFAULT '',
				budget_amount NUMERIC(14,2),
				is_primary    BOOLEAN NOT NULL DEFAULT FALSE,
				status        TEXT NOT NULL DEFAULT 'active',
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (client_id, platform, account_id)
			)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS client_accounts_one_primary
				ON client_accounts (client_id, platform) WHERE is_primary`,
		},
	},
	{
		version: 2,
		name:    "orçamentos personalizados e revisões",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS custom_budgets (
				id            TEXT PRIMARY KEY,
				client_id     TEXT NOT NULL REFERENCES clients(id),
				platform      TEXT NOT NULL,
				account_id    TEXT,
				budget_amount NUMERIC(14,2) NOT NULL,
				start_date    DATE NOT NULL,
				end_date      DATE NOT NULL,
				is_active     BOOLEAN NOT NULL DEFAULT TRUE,
				description   TEXT,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CHECK (end_date >= start_date)
			)`,
			`CREATE INDEX IF NOT EXISTS custom_budgets_lookup
				ON custom_budgets (client_id, platform, start_date, end_date) WHERE is_active`,
			`CREATE TABLE IF NOT EXISTS budget_reviews (
				id                       TEXT PRIMARY KEY,
				client_id                TEXT NOT NULL REFERENCES clients(id),
				account_id               TEXT NOT NULL,
				platform                 TEXT NOT NULL,
				review_date              DATE NOT NULL,
				daily_budget_current     NUMERIC(14,2) NOT NULL DEFAULT 0,
				total_spent              NUMERIC(14,2) NOT NULL DEFAULT 0,
				last_five_days_spent     NUMERIC(14,2) NOT NULL DEFAULT 0,
				day_1_spent              NUMERIC(14,2) NOT NULL DEFAULT 0,
				day_2_spent              NUMERIC(14,2) NOT NULL DEFAULT 0,
				day_3_spent              NUMERIC(14,2) NOT NULL DEFAULT 0,
				day_4_spent              NUMERIC(14,2) NOT NULL DEFAULT 0,
				day_5_spent              NUMERIC(14,2) NOT NULL DEFAULT 0,
				using_custom_budget      BOOLEAN NOT NULL DEFAULT FALSE,
				custom_budget_id         TEXT REFERENCES custom_budgets(id) ON DELETE SET NULL,
				custom_budget_amount     NUMERIC(14,2),
				custom_budget_start_date DATE,
				custom_budget_end_date   DATE,
				created_at               TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at               TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (client_id, account_id, platform, review_date)
			)`,
		},
	},
	{
		version: 3,
		name:    "credenciais e ciclo de vida dos tokens",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS api_tokens (
				name       TEXT PRIMARY KEY,
				value      TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			tokenMetadataTable("google_ads_token_metadata"),
			tokenMetadataTable("meta_token_metadata"),
			`CREATE TABLE IF NOT EXISTS token_refresh_events (
				id         BIGSERIAL PRIMARY KEY,
				platform   TEXT NOT NULL,
				token_type TEXT NOT NULL,
				event_type TEXT NOT NULL,
				status     TEXT NOT NULL,
				message    TEXT,
				details    JSONB,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		},
	},
	{
		version: 4,
		name:    "usuários do console",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id            SERIAL PRIMARY KEY,
				name          TEXT NOT NULL,
				email         TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				active        BOOLEAN NOT NULL DEFAULT TRUE,
				role_id       INTEGER NOT NULL DEFAULT 3,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
		},
	},
}

func tokenMetadataTable(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		token_type     TEXT PRIMARY KEY,
		status         TEXT NOT NULL DEFAULT 'unknown',
		last_refreshed TIMESTAMPTZ,
		last_checked   TIMESTAMPTZ,
		expires_at     TIMESTAMPTZ,
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, name)
}

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Run aplica as versões pendentes do schema, cada uma na sua própria transação
func Run(ctx context.Context, conn *postgres.Connection) error {
	startTime := time.Now()

	if _, err := conn.ExecContext(ctx, createVersionsTable); err != nil {
		return fmt.Errorf("erro ao criar tabela de versões: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return err
	}

	count := 0
	for _, s := range steps {
		if applied[s.version] {
			continue
		}

		err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			for _, stmt := range s.statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, s.version, s.name)
			return err
		})
		if err != nil {
			return fmt.Errorf("erro ao aplicar versão %d (%s): %w", s.version, s.name, err)
		}

		logrus.WithFields(logrus.Fields{
			"version": s.version,
			"name":    s.name,
		}).Info("Versão do schema aplicada")
		count++
	}

	logrus.WithFields(logrus.Fields{
		"applied":  count,
		"duration": time.Since(startTime).String(),
	}).Info("Schema do banco de dados atualizado")

	return nil
}

func appliedVersions(ctx context.Context, conn *postgres.Connection) (map[int]bool, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar versões aplicadas: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
