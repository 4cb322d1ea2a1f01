package reviewing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/budget-review-api/infrastructure/repository"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-review-api/pkg/log"
	"github.com/vfg2006/budget-review-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 3

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type BudgetReviewer interface {
	Review(ctx context.Context, req ReviewRequest) *ReviewResult
	ReviewBatch(ctx context.Context, reqs []ReviewRequest) []*ReviewResult
	GetReview(ctx context.Context, clientID, accountID string, platform domain.Platform, date time.Time) (*domain.BudgetReview, error)
	ListReviews(ctx context.Context, filters domain.BudgetReviewFilters) ([]*domain.BudgetReview, error)
}

type Service struct {
	clientRepo  repository.ClientRepository
	accountRepo repository.AccountRepository
	reviewRepo  repository.BudgetReviewRepository
	resolver    *budgeting.Resolver
	calculator  *budgeting.Calculator
	gateways    map[domain.Platform]PlatformGateway

	batchConcurrency int
	unitTimeout      time.Duration
	now              func() time.Time
}

type Option func(*Service)

// WithClock substitui o relógio usado para a data padrão da revisão
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithBatch define a concorrência e o tempo máximo de cada unidade em ReviewBatch
func WithBatch(concurrency int, unitTimeout time.Duration) Option {
	return func(s *Service) {
		if concurrency > 0 {
			s.batchConcurrency = concurrency
		}
		s.unitTimeout = unitTimeout
	}
}

func NewService(
	clientRepo repository.ClientRepository,
	accountRepo repository.AccountRepository,
	reviewRepo repository.BudgetReviewRepository,
	resolver *budgeting.Resolver,
	calculator *budgeting.Calculator,
	gateways map[domain.Platform]PlatformGateway,
	opts ...Option,
) *Service {
	s := &Service{
		clientRepo:       clientRepo,
		accountRepo:      accountRepo,
		reviewRepo:       reviewRepo,
		resolver:         resolver,
		calculator:       calculator,
		gateways:         gateways,
		batchConcurrency: defaultBatchConcurrency,
		now:              time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// unit é uma requisição já validada
type unit struct {
	client     *domain.Client
	caps       domain.PlatformCapabilities
	gateway    PlatformGateway
	accountID  string
	reviewDate time.Time
}

// Review reconcilia uma conta em um dia. Nunca retorna erro: o resultado carrega a falha.
func (s *Service) Review(ctx context.Context, req ReviewRequest) (result *ReviewResult) {
	result = &ReviewResult{
		ClientID:  req.ClientID,
		AccountID: req.AccountID,
		Platform:  req.Platform,
	}

	logger := log.ForReview(ctx, req.ClientID, req.AccountID, req.Platform)

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("Pânico durante a revisão de orçamento")
			result.fail(NewReviewError(ErrUnexpectedFailure, KindUnknown, "UNKNOWN_ERROR", fmt.Sprint(r)).withUnit(req.ClientID, req.AccountID))
		}
	}()

	u, rerr := s.prepare(ctx, req)
	if rerr != nil {
		logger.WithError(rerr).Warn("Revisão de orçamento rejeitada")
		return result.fail(rerr.withUnit(req.ClientID, req.AccountID))
	}

	result.AccountID = u.accountID
	result.Platform = u.caps.Name()
	result.ReviewDate = u.reviewDate.Format(time.DateOnly)

	logger = log.ForReview(ctx, req.ClientID, u.accountID, u.caps.Name()).WithField(log.FieldReviewDate, result.ReviewDate)

	account, rerr := s.ensureAccount(ctx, u)
	if rerr != nil {
		logger.WithError(rerr).Error("Erro ao garantir a conta de anúncios")
		return result.fail(rerr.withUnit(req.ClientID, u.accountID))
	}

	spend, customBudget, err := s.read(ctx, u)
	if err != nil {
		rerr := classifyReadError(err)
		logger.WithError(err).WithField("error_kind", rerr.Kind).Error("Erro nas leituras da revisão")
		return result.fail(rerr.withUnit(req.ClientID, u.accountID))
	}

	effectiveBudget := account.EffectiveStandingBudget(u.client, u.caps)
	var customEnd *time.Time
	if customBudget != nil {
		effectiveBudget = customBudget.BudgetAmount
		customEnd = &customBudget.EndDate
	}

	info := s.calculator.Calculate(domain.BudgetInput{
		EffectiveBudget:     effectiveBudget,
		TotalSpent:          spend.TotalSpent,
		CurrentDailyBudget:  spend.CurrentDailyBudget,
		WeightedRecentSpend: spend.WeightedRecentSpend,
		CustomBudgetEndDate: customEnd,
		Today:               u.reviewDate,
	})

	review := &domain.BudgetReview{
		ClientID:             u.client.ID,
		AccountID:            u.accountID,
		Platform:             u.caps.Name(),
		ReviewDate:           u.reviewDate,
		DailyBudgetCurrent:   spend.CurrentDailyBudget,
		TotalSpent:           spend.TotalSpent,
		LastFiveDaysSpent:    spend.WeightedRecentSpend,
		CustomBudgetSnapshot: domain.NewCustomBudgetSnapshot(customBudget),
	}
	review.SetDaySpends(spend.DaySpends)

	reviewID, dropped, err := s.persist(ctx, review)
	if err != nil {
		rerr := classifyPersistError(err)
		logger.WithError(err).WithField("error_kind", rerr.Kind).Error("Erro ao gravar a revisão de orçamento")
		return result.fail(rerr.withUnit(req.ClientID, u.accountID))
	}

	result.Success = true
	result.ReviewID = reviewID
	result.EffectiveBudget = effectiveBudget
	result.TotalSpent = spend.TotalSpent
	result.DaySpends = spend.DaySpends
	result.WeightedRecentSpend = spend.WeightedRecentSpend
	result.CurrentDailyBudget = spend.CurrentDailyBudget
	result.UsingCustomBudget = review.UsingCustomBudget
	result.CustomBudgetID = review.CustomBudgetID
	result.CustomBudgetDropped = dropped
	result.Budget = &info
	result.Degraded = spend.Degraded()
	result.SpendError = spend.Error
	result.BudgetError = spend.BudgetError

	logger.WithFields(log.Fields{
		log.FieldReviewID:    reviewID,
		"total_spent":        spend.TotalSpent,
		"ideal_daily_budget": info.IdealDailyBudget,
		"degraded":           result.Degraded,
	}).Info("Revisão de orçamento concluída")

	return result
}

// prepare valida a requisição sem nenhuma chamada de rede além da leitura do cliente
func (s *Service) prepare(ctx context.Context, req ReviewRequest) (*unit, *ReviewError) {
	if req.ClientID == "" {
		return nil, NewReviewError(ErrClientIDRequired, KindValidation, "CLIENT_ID_REQUIRED", "")
	}
	if req.AccountID == "" {
		return nil, NewReviewError(ErrAccountIDRequired, KindValidation, "ACCOUNT_ID_REQUIRED", "")
	}

	var caps domain.PlatformCapabilities
	if req.Platform != "" {
		var err error
		if caps, err = domain.CapabilitiesFor(req.Platform); err != nil {
			return nil, NewReviewError(err, KindValidation, "INVALID_PLATFORM", "")
		}
		if err := caps.ValidateAccountID(req.AccountID); err != nil {
			return nil, NewReviewError(err, KindValidation, "INVALID_ACCOUNT_ID", "")
		}
	}

	client, err := s.clientRepo.GetClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, NewReviewError(fmt.Errorf("%w: %w", ErrLoadClient, err), KindPersistence, "CLIENT_LOOKUP_FAILED", "")
	}
	if client == nil {
		return nil, NewReviewError(ErrClientNotFound, KindValidation, "CLIENT_NOT_FOUND", req.ClientID)
	}

	if caps == nil {
		caps = inferPlatform(client, req.AccountID)
		if err := caps.ValidateAccountID(req.AccountID); err != nil {
			return nil, NewReviewError(err, KindValidation, "INVALID_ACCOUNT_ID", "")
		}
	}

	gateway, ok := s.gateways[caps.Name()]
	if !ok {
		return nil, NewReviewError(ErrPlatformUnsupported, KindValidation, "PLATFORM_NOT_CONFIGURED", caps.Name().String())
	}

	reviewDate := domain.TruncateDay(s.now())
	if req.ReviewDate != nil && !req.ReviewDate.IsZero() {
		reviewDate = domain.TruncateDay(*req.ReviewDate)
	}

	return &unit{
		client:     client,
		caps:       caps,
		gateway:    gateway,
		accountID:  caps.NormalizeAccountID(req.AccountID),
		reviewDate: reviewDate,
	}, nil
}

// inferPlatform procura a plataforma cuja conta principal do cliente é a conta pedida; sem correspondência, meta
func inferPlatform(client *domain.Client, accountID string) domain.PlatformCapabilities {
	for _, p := range domain.SupportedPlatforms() {
		caps, err := domain.CapabilitiesFor(p)
		if err != nil {
			continue
		}
		primary := caps.ResolveAccountID(client)
		if primary != "" && caps.NormalizeAccountID(primary) == caps.NormalizeAccountID(accountID) {
			return caps
		}
	}

	caps, _ := domain.CapabilitiesFor(domain.PlatformMeta)
	return caps
}

// ensureAccount cria a conta na primeira vez que o motor a encontra
func (s *Service) ensureAccount(ctx context.Context, u *unit) (*domain.AdAccount, *ReviewError) {
	account, err := s.accountRepo.GetAccount(ctx, u.client.ID, u.caps.Name(), u.accountID)
	if err != nil {
		return nil, NewReviewError(fmt.Errorf("%w: %w", ErrEnsureAccount, err), KindPersistence, "ACCOUNT_LOOKUP_FAILED", "")
	}
	if account != nil {
		return account, nil
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewReviewError(fmt.Errorf("%w: %w", ErrGenerateID, err), KindUnknown, "ID_GENERATION_FAILED", "")
	}

	primary := u.caps.ResolveAccountID(u.client)
	isPrimary := primary != "" && u.caps.NormalizeAccountID(primary) == u.accountID

	name := u.accountID
	if isPrimary && u.client.CompanyName != "" {
		name = u.client.CompanyName
	}

	account, err = s.accountRepo.CreateAccount(ctx, &domain.AdAccount{
		ID:          id,
		ClientID:    u.client.ID,
		Platform:    u.caps.Name(),
		AccountID:   u.accountID,
		AccountName: name,
		IsPrimary:   isPrimary,
		Status:      domain.AdAccountStatusActive,
	})
	if err != nil {
		return nil, NewReviewError(fmt.Errorf("%w: %w", ErrEnsureAccount, err), KindPersistence, "ACCOUNT_PROVISION_FAILED", "")
	}

	log.ForReview(ctx, u.client.ID, u.accountID, u.caps.Name()).WithField("is_primary", isPrimary).Info("Conta de anúncios criada automaticamente")

	return account, nil
}

// read busca em paralelo o gasto (depois de garantir um token válido) e o orçamento personalizado
func (s *Service) read(ctx context.Context, u *unit) (*domain.AccountSpend, *domain.CustomBudget, error) {
	var (
		spend        *domain.AccountSpend
		customBudget *domain.CustomBudget
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(guarded(func() error {
		if _, err := u.gateway.Tokens.GetValidAccessToken(gctx); err != nil {
			return err
		}
		if u.gateway.Secrets != nil {
			if err := u.gateway.Secrets.CheckSecrets(gctx); err != nil {
				return err
			}
		}
		spend = u.gateway.Spend.FetchAccountSpend(gctx, u.accountID, u.reviewDate)
		return nil
	}))

	g.Go(guarded(func() error {
		accountID := u.accountID
		cb, err := s.resolver.ResolveActiveCustomBudget(gctx, u.client.ID, u.caps.Name(), &accountID, u.reviewDate)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrResolveBudget, err)
		}
		customBudget = cb
		return nil
	}))

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if spend == nil {
		spend = domain.ZeroSpend(nil)
	}

	return spend, customBudget, nil
}

// guarded converte um pânico da leitura em erro da unidade
func guarded(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrUnexpectedFailure, r)
			}
		}()
		return fn()
	}
}

// persist grava a revisão e, se o orçamento personalizado referenciado não existir mais, tenta uma vez sem ele
func (s *Service) persist(ctx context.Context, review *domain.BudgetReview) (string, bool, error) {
	id, err := s.reviewRepo.Upsert(ctx, review)
	if err == nil {
		return id, false, nil
	}

	if !review.UsingCustomBudget || !errors.Is(err, repository.ErrForeignKeyViolation) {
		return "", false, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"client_id":        review.ClientID,
		"account_id":       review.AccountID,
		"custom_budget_id": *review.CustomBudgetID,
		"error":            err.Error(),
	}).Warn("Orçamento personalizado removido durante a revisão, gravando sem ele")

	id, err = s.persistWithoutCustomBudget(ctx, review)
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// persistWithoutCustomBudget é o caminho de fallback: mesma revisão com o snapshot zerado
func (s *Service) persistWithoutCustomBudget(ctx context.Context, review *domain.BudgetReview) (string, error) {
	review.CustomBudgetSnapshot = domain.NewCustomBudgetSnapshot(nil)
	return s.reviewRepo.Upsert(ctx, review)
}

// ReviewBatch revisa as unidades com concorrência limitada e devolve os resultados na mesma ordem.
// A falha de uma unidade não interrompe as demais.
func (s *Service) ReviewBatch(ctx context.Context, reqs []ReviewRequest) []*ReviewResult {
	results := make([]*ReviewResult, len(reqs))
	semaphore := make(chan struct{}, s.batchConcurrency)
	var wg sync.WaitGroup

	for i, req := range reqs {
		if ctx.Err() != nil {
			results[i] = interruptedResult(req, ctx.Err())
			continue
		}

		select {
		case <-ctx.Done():
			results[i] = interruptedResult(req, ctx.Err())
			continue
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, req ReviewRequest) {
			defer wg.Done()
			defer func() { <-semaphore }()

			unitCtx := ctx
			if s.unitTimeout > 0 {
				var cancel context.CancelFunc
				unitCtx, cancel = context.WithTimeout(ctx, s.unitTimeout)
				defer cancel()
			}

			results[i] = s.Review(unitCtx, req)
		}(i, req)
	}

	wg.Wait()

	return results
}

// interruptedResult marca a unidade que não chegou a ser iniciada porque o lote foi cancelado
func interruptedResult(req ReviewRequest, cause error) *ReviewResult {
	result := &ReviewResult{
		ClientID:  req.ClientID,
		AccountID: req.AccountID,
		Platform:  req.Platform,
	}
	return result.fail(NewReviewError(ErrBatchInterrupted, KindUnknown, "REVIEW_CANCELLED", cause.Error()).withUnit(req.ClientID, req.AccountID))
}

// GetReview busca a revisão gravada para a chave
func (s *Service) GetReview(ctx context.Context, clientID, accountID string, platform domain.Platform, date time.Time) (*domain.BudgetReview, error) {
	if clientID == "" {
		return nil, NewReviewError(ErrClientIDRequired, KindValidation, "CLIENT_ID_REQUIRED", "")
	}
	if accountID == "" {
		return nil, NewReviewError(ErrAccountIDRequired, KindValidation, "ACCOUNT_ID_REQUIRED", "")
	}

	caps, err := domain.CapabilitiesFor(platform)
	if err != nil {
		return nil, NewReviewError(err, KindValidation, "INVALID_PLATFORM", "")
	}

	review, err := s.reviewRepo.GetByKey(ctx, domain.ReviewKey{
		ClientID:   clientID,
		AccountID:  caps.NormalizeAccountID(accountID),
		Platform:   platform,
		ReviewDate: domain.TruncateDay(date),
	})
	if err != nil {
		return nil, NewReviewError(fmt.Errorf("%w: %w", ErrFetchReviews, err), KindPersistence, "FETCH_REVIEWS_FAILED", "")
	}
	if review == nil {
		return nil, NewReviewError(ErrReviewNotFound, KindValidation, "REVIEW_NOT_FOUND", "")
	}

	return review, nil
}

// ListReviews lista as revisões de um cliente para os painéis
func (s *Service) ListReviews(ctx context.Context, filters domain.BudgetReviewFilters) ([]*domain.BudgetReview, error) {
	if filters.ClientID == "" {
		return nil, NewReviewError(ErrClientIDRequired, KindValidation, "CLIENT_ID_REQUIRED", "")
	}

	if filters.Platform != "" {
		caps, err := domain.CapabilitiesFor(filters.Platform)
		if err != nil {
			return nil, NewReviewError(err, KindValidation, "INVALID_PLATFORM", "")
		}
		filters.AccountID = caps.NormalizeAccountID(filters.AccountID)
	}

	reviews, err := s.reviewRepo.List(ctx, filters)
	if err != nil {
		return nil, NewReviewError(fmt.Errorf("%w: %w", ErrFetchReviews, err), KindPersistence, "FETCH_REVIEWS_FAILED", "")
	}

	return reviews, nil
}
