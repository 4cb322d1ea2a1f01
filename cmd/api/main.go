package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/credential"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/google"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/google/googleclient"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/meta"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/budget-review-api/infrastructure/migration"
	"github.com/vfg2006/budget-review-api/infrastructure/repository"
	"github.com/vfg2006/budget-review-api/internal/api"
	"github.com/vfg2006/budget-review-api/internal/api/handler"
	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/internal/scheduler"
	"github.com/vfg2006/budget-review-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-review-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-review-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-review-api/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	log.Setup(cfg.App.Env, logLevel)
	logrus.WithField("env", cfg.App.Env).Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.Run(ctx, pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco de dados")
		}
	}

	clientRepo := repository.NewClientRepository(pgConn)
	accountRepo := repository.NewAccountRepository(pgConn)
	customBudgetRepo := repository.NewCustomBudgetRepository(pgConn)
	budgetReviewRepo := repository.NewBudgetReviewRepository(pgConn)
	tokenRepo := repository.NewTokenRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg.Auth)

	// Gerenciadores de token por plataforma; o token renovado é espelhado no Render quando configurado
	tokenPolicy := credential.NewPolicy(cfg.TokenLifecycle)
	tokenOptions := []credential.Option{}
	if cfg.Render.ServiceID != "" {
		tokenOptions = append(tokenOptions, credential.WithSecretMirror(config.NewRenderClient(cfg), cfg.Render.ServiceID))
	}

	googleTokens := credential.NewTokenManager(googleclient.NewRefreshTokenGrant(cfg), tokenRepo, tokenPolicy, tokenOptions...)
	metaTokens := credential.NewTokenManager(metaclient.NewExchangeTokenGrant(cfg), tokenRepo, tokenPolicy, tokenOptions...)

	googleClient := googleclient.NewClient(cfg, googleTokens, tokenRepo)
	googleIntegrator := google.New(googleClient)
	metaIntegrator := meta.New(metaclient.NewClient(cfg, metaTokens))

	gateways := map[domain.Platform]reviewing.PlatformGateway{
		domain.PlatformGoogle: {Tokens: googleTokens, Secrets: googleClient, Spend: googleIntegrator},
		domain.PlatformMeta:   {Tokens: metaTokens, Spend: metaIntegrator},
	}

	resolver := budgeting.NewResolver(customBudgetRepo)
	calculator := budgeting.NewCalculator(budgeting.NewPolicy(cfg.BudgetPolicy))

	reviewService := reviewing.NewService(
		clientRepo,
		accountRepo,
		budgetReviewRepo,
		resolver,
		calculator,
		gateways,
		reviewing.WithBatch(cfg.BudgetReviewSync.MaxConcurrentJobs, cfg.BudgetReviewSync.UnitTimeout),
	)

	budgetReviewSyncService := scheduler.NewBudgetReviewSyncService(
		clientRepo,
		accountRepo,
		reviewService,
		cfg,
	)

	if err := budgetReviewSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de revisões de orçamento")
	} else {
		logrus.Info("Agendador de revisões de orçamento iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		DB:            pgConn.DB,
		Authenticator: authenticator,
		Reviewer:      reviewService,
		Resolver:      resolver,
		TokenServices: map[domain.Platform]handler.TokenService{
			domain.PlatformGoogle: googleTokens,
			domain.PlatformMeta:   metaTokens,
		},
		CronJobs: handler.CronJobServices{
			handler.CronJobTypeBudgetReview: budgetReviewSyncService,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
