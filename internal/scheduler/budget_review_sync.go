package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/repository"
	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-review-api/pkg/log"
)

//go:generate mockgen -source=budget_review_sync.go -destination=mocks/budget_review_sync.go -package=mocks
type Reviewer interface {
	Review(ctx context.Context, req reviewing.ReviewRequest) *reviewing.ReviewResult
}

// BudgetReviewSyncConfig representa a configuração do agendador de revisões de orçamento
type BudgetReviewSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	UnitTimeout         time.Duration
	Platforms           []domain.Platform
	SyncEnabled         bool
}

// RunSummary resume uma execução do lote
type RunSummary struct {
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	Units       int       `json:"units"`
	Succeeded   int       `json:"succeeded"`
	Degraded    int       `json:"degraded"`
	Failed      int       `json:"failed"`
	Retryable   int       `json:"retryable"`
}

// BudgetReviewSyncService revisa diariamente todas as contas dos clientes ativos
type BudgetReviewSyncService struct {
	scheduler   *gocron.Scheduler
	config      BudgetReviewSyncConfig
	clientRepo  repository.ClientRepository
	accountRepo repository.AccountRepository
	reviewer    Reviewer
	now         func() time.Time
	syncRunning bool
	syncMutex   sync.Mutex
	lastRun     *RunSummary
}

func NewBudgetReviewSyncService(
	clientRepo repository.ClientRepository,
	accountRepo repository.AccountRepository,
	reviewer Reviewer,
	appConfig *config.Config,
) *BudgetReviewSyncService {
	platforms := make([]domain.Platform, 0, len(appConfig.BudgetReviewSync.Platforms))
	for _, name := range appConfig.BudgetReviewSync.Platforms {
		p, err := domain.ParsePlatform(name)
		if err != nil {
			logrus.WithField("platform", name).Warn("Plataforma desconhecida ignorada no agendador de revisões")
			continue
		}
		platforms = append(platforms, p)
	}

	syncConfig := BudgetReviewSyncConfig{
		CronSchedule:        appConfig.BudgetReviewSync.CronSchedule,
		RequestDelaySeconds: appConfig.BudgetReviewSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.BudgetReviewSync.MaxConcurrentJobs,
		UnitTimeout:         appConfig.BudgetReviewSync.UnitTimeout,
		Platforms:           platforms,
		SyncEnabled:         appConfig.BudgetReviewSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"unit_timeout":          syncConfig.UnitTimeout.String(),
		"platforms":             syncConfig.Platforms,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de revisões de orçamento carregada")

	return newBudgetReviewSyncService(clientRepo, accountRepo, reviewer, syncConfig)
}

func newBudgetReviewSyncService(
	clientRepo repository.ClientRepository,
	accountRepo repository.AccountRepository,
	reviewer Reviewer,
	syncConfig BudgetReviewSyncConfig,
) *BudgetReviewSyncService {
	if syncConfig.MaxConcurrentJobs < 1 {
		syncConfig.MaxConcurrentJobs = 1
	}

	return &BudgetReviewSyncService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      syncConfig,
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
		reviewer:    reviewer,
		now:         time.Now,
	}
}

// Start inicia o agendador
func (s *BudgetReviewSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Revisão diária de orçamentos desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de revisões de orçamento")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllBudgetReviews(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar revisões de orçamento: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de revisões de orçamento")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllBudgetReviews executa o lote, ignorando o disparo se já houver um em andamento
func (s *BudgetReviewSyncService) syncAllBudgetReviews(ctx context.Context) *RunSummary {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Revisão de orçamentos já em andamento, ignorando")
		return nil
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	return s.run(ctx)
}

func (s *BudgetReviewSyncService) run(ctx context.Context) *RunSummary {
	ctx, correlationID := log.WithCorrelationID(ctx)
	summary := &RunSummary{StartedAt: s.now()}

	logrus.WithField("correlation_id", correlationID).Info("Iniciando revisão de orçamentos de todos os clientes ativos")

	requests, err := s.buildRequests(ctx, domain.TruncateDay(summary.StartedAt))
	if err != nil {
		logrus.WithError(err).Error("Erro ao montar a lista de contas para revisão")
		summary.CompletedAt = s.now()
		s.setLastRun(summary)
		return summary
	}

	summary.Units = len(requests)
	results := s.processReviews(ctx, requests)

	for _, result := range results {
		switch {
		case result == nil:
			summary.Failed++
		case !result.Success:
			summary.Failed++
			if result.Retryable {
				summary.Retryable++
			}
		case result.Degraded:
			summary.Succeeded++
			summary.Degraded++
		default:
			summary.Succeeded++
		}
	}

	summary.CompletedAt = s.now()
	s.setLastRun(summary)

	logrus.WithFields(logrus.Fields{
		"correlation_id": correlationID,
		"duration":       summary.CompletedAt.Sub(summary.StartedAt).String(),
		"units":          summary.Units,
		"succeeded":      summary.Succeeded,
		"degraded":       summary.Degraded,
		"failed":         summary.Failed,
	}).Info("Revisão de orçamentos concluída")

	return summary
}

// buildRequests gera uma unidade por conta (principal e secundárias) de cada cliente ativo
func (s *BudgetReviewSyncService) buildRequests(ctx context.Context, reviewDate time.Time) ([]reviewing.ReviewRequest, error) {
	clients, err := s.clientRepo.ListClients(ctx, []domain.ClientStatus{domain.ClientStatusActive})
	if err != nil {
		return nil, err
	}

	requests := make([]reviewing.ReviewRequest, 0)
	for _, client := range clients {
		for _, platform := range s.config.Platforms {
			caps, err := domain.CapabilitiesFor(platform)
			if err != nil {
				continue
			}

			seen := make(map[string]bool)
			add := func(accountID string) {
				normalized := caps.NormalizeAccountID(accountID)
				if normalized == "" || seen[normalized] {
					return
				}
				seen[normalized] = true
				date := reviewDate
				requests = append(requests, reviewing.ReviewRequest{
					ClientID:   client.ID,
					AccountID:  normalized,
					Platform:   platform,
					ReviewDate: &date,
				})
			}

			add(caps.ResolveAccountID(client))

			accounts, err := s.accountRepo.ListAccountsByClient(ctx, client.ID, platform)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"client_id": client.ID,
					"platform":  platform,
					"error":     err.Error(),
				}).Error("Erro ao buscar contas secundárias do cliente")
				continue
			}
			for _, acc := range accounts {
				if acc.Status != domain.AdAccountStatusActive {
					continue
				}
				add(acc.AccountID)
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"active_clients": len(clients),
		"units":          len(requests),
	}).Info("Contas encontradas para revisão de orçamento")

	return requests, nil
}

// processReviews executa as unidades com concorrência limitada; a falha de uma não interrompe as demais
func (s *BudgetReviewSyncService) processReviews(ctx context.Context, requests []reviewing.ReviewRequest) []*reviewing.ReviewResult {
	results := make([]*reviewing.ReviewResult, len(requests))
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

loop:
	for i, req := range requests {
		if ctx.Err() != nil {
			logrus.WithError(ctx.Err()).Warn("Revisão de orçamentos interrompida")
			break
		}

		select {
		case <-ctx.Done():
			logrus.WithError(ctx.Err()).Warn("Revisão de orçamentos interrompida")
			break loop
		case semaphore <- struct{}{}:
		}

		wg.Add(1)

		go func(i int, req reviewing.ReviewRequest) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			results[i] = s.reviewUnit(ctx, req)

			// Aguardar antes da próxima requisição para evitar sobrecarga na API
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}(i, req)
	}

	wg.Wait()

	return results
}

func (s *BudgetReviewSyncService) reviewUnit(ctx context.Context, req reviewing.ReviewRequest) *reviewing.ReviewResult {
	unitCtx := ctx
	if s.config.UnitTimeout > 0 {
		var cancel context.CancelFunc
		unitCtx, cancel = context.WithTimeout(ctx, s.config.UnitTimeout)
		defer cancel()
	}

	result := s.reviewer.Review(unitCtx, req)
	if result != nil && !result.Success {
		logrus.WithFields(logrus.Fields{
			"client_id":  req.ClientID,
			"account_id": req.AccountID,
			"platform":   req.Platform,
			"error_kind": result.ErrorKind,
			"retryable":  result.Retryable,
			"error":      result.Error,
		}).Warn("Revisão de orçamento falhou para a conta")
	}

	return result
}

func (s *BudgetReviewSyncService) setLastRun(summary *RunSummary) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.lastRun = summary
}

// TriggerManualSync inicia manualmente uma revisão em lote. Retorna false se já houver uma em andamento.
func (s *BudgetReviewSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Revisão de orçamentos já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando revisão manual de orçamentos")
	go s.syncAllBudgetReviews(context.Background())
	return true
}

// IsRunning indica se há um lote em execução
func (s *BudgetReviewSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *BudgetReviewSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":         s.config.SyncEnabled,
		"sync_cron":            s.config.CronSchedule,
		"sync_max_concurrent":  s.config.MaxConcurrentJobs,
		"sync_request_delay_s": s.config.RequestDelaySeconds,
		"sync_unit_timeout":    s.config.UnitTimeout.String(),
		"sync_platforms":       s.config.Platforms,
		"sync_running":         s.syncRunning,
	}
	if s.lastRun != nil {
		status["last_run"] = *s.lastRun
	}

	return status
}
