package main

import (
	"context"
	"database/sql"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/budget-review-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-review-api/infrastructure/migration"
	"github.com/vfg2006/budget-review-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

const (
	idLength   = 6
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	roleAdmin  = 1
)

type seedAccount struct {
	Platform     string
	AccountID    string
	Name         string
	BudgetAmount float64
	IsPrimary    bool
}

type seedClient struct {
	CompanyName     string
	MetaAccountID   string
	MetaAdsBudget   float64
	GoogleAccountID string
	GoogleAdsBudget float64
	Accounts        []seedAccount
}

// Cliente de demonstração usado em ambientes locais
var demoClients = []seedClient{
	{
		CompanyName:     "Loja Demonstração",
		MetaAccountID:   "111222333",
		MetaAdsBudget:   3000,
		GoogleAccountID: "1234567890",
		GoogleAdsBudget: 4500,
		Accounts: []seedAccount{
			{Platform: "meta", AccountID: "111222333", Name: "Principal Meta", BudgetAmount: 3000, IsPrimary: true},
			{Platform: "meta", AccountID: "444555666", Name: "Remarketing", BudgetAmount: 900},
			{Platform: "google", AccountID: "1234567890", Name: "Principal Google", BudgetAmount: 4500, IsPrimary: true},
		},
	},
}

func generateID() string {
	id, _ := gonanoid.Generate(characters, idLength)
	return id
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := migration.Run(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema")
	}

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := insertAdmin(ctx, tx); err != nil {
			return err
		}
		if viper.GetBool("SEED_DEMO_CLIENTS") {
			return insertClients(ctx, tx, demoClients)
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao popular o banco de dados")
	}

	logrus.Info("Script de migração concluído")
}

// insertAdmin cria o usuário administrador inicial se o e-mail ainda não existir
func insertAdmin(ctx context.Context, tx *sql.Tx) error {
	email := viper.GetString("SEED_ADMIN_EMAIL")
	password := viper.GetString("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logrus.Warn("SEED_ADMIN_EMAIL ou SEED_ADMIN_PASSWORD não definidos, administrador não criado")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, active, role_id)
		 VALUES ($1, $2, $3, TRUE, $4)
		 ON CONFLICT (email) DO NOTHING`,
		"Administrador", email, string(hash), roleAdmin,
	)
	if err != nil {
		return err
	}

	if n, _ := result.RowsAffected(); n == 0 {
		logrus.WithField("email", email).Info("Administrador já existe")
		return nil
	}

	logrus.WithField("email", email).Info("Administrador criado")
	return nil
}

func insertClients(ctx context.Context, tx *sql.Tx, clients []seedClient) error {
	logrus.Infof("Iniciando inserção de %d clientes...", len(clients))
	startTime := time.Now()

	clientStmt, err := tx.PrepareContext(ctx, `INSERT INTO clients
		(id, company_name, status, meta_account_id, meta_ads_budget, google_account_id, google_ads_budget)
		VALUES ($1, $2, 'active', $3, $4, $5, $6)`)
	if err != nil {
		return err
	}
	defer clientStmt.Close()

	accountStmt, err := tx.PrepareContext(ctx, `INSERT INTO client_accounts
		(id, client_id, platform, account_id, account_name, budget_amount, is_primary, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'active')
		ON CONFLICT (client_id, platform, account_id) DO NOTHING`)
	if err != nil {
		return err
	}
	defer accountStmt.Close()

	accounts := 0
	for _, c := range clients {
		clientID := generateID()
		if _, err := clientStmt.ExecContext(ctx, clientID, c.CompanyName, c.MetaAccountID, c.MetaAdsBudget, c.GoogleAccountID, c.GoogleAdsBudget); err != nil {
			return err
		}

		for _, a := range c.Accounts {
			if _, err := accountStmt.ExecContext(ctx, generateID(), clientID, a.Platform, a.AccountID, a.Name, a.BudgetAmount, a.IsPrimary); err != nil {
				return err
			}
			accounts++
		}
	}

	logrus.WithFields(logrus.Fields{
		"clients":  len(clients),
		"accounts": accounts,
		"duration": time.Since(startTime).String(),
	}).Info("Inserção de clientes concluída")

	return nil
}
