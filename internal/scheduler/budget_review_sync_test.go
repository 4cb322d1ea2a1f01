package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-review-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-review-api/internal/domain"
	schedulermocks "github.com/vfg2006/budget-review-api/internal/scheduler/mocks"
	"github.com/vfg2006/budget-review-api/internal/usecases/reviewing"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 10, 7, 0, 0, 0, time.Local)
}

func newTestSyncService(
	clientRepo *mocks.MockClientRepository,
	accountRepo *mocks.MockAccountRepository,
	reviewer Reviewer,
	platforms ...domain.Platform,
) *BudgetReviewSyncService {
	service := newBudgetReviewSyncService(clientRepo, accountRepo, reviewer, BudgetReviewSyncConfig{
		CronSchedule:      "0 7 * * *",
		MaxConcurrentJobs: 2,
		UnitTimeout:       time.Second,
		Platforms:         platforms,
		SyncEnabled:       true,
	})
	service.now = fixedNow
	return service
}

func TestBudgetReviewSyncService_buildRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClientRepo := mocks.NewMockClientRepository(ctrl)
	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)

	service := newTestSyncService(mockClientRepo, mockAccountRepo, nil, domain.PlatformGoogle, domain.PlatformMeta)
	reviewDate := domain.TruncateDay(fixedNow())

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, requests []reviewing.ReviewRequest, err error)
	}{
		{
			name: "Cliente com conta principal e secundária - gera uma unidade por conta",
			setup: func() {
				mockClientRepo.EXPECT().
					ListClients(gomock.Any(), []domain.ClientStatus{domain.ClientStatusActive}).
					Return([]*domain.Client{
						{ID: "c1", Status: domain.ClientStatusActive, GoogleAccountID: stringPtr("123-456-7890")},
					}, nil)

				mockAccountRepo.EXPECT().
					ListAccountsByClient(gomock.Any(), "c1", domain.PlatformGoogle).
					Return([]*domain.AdAccount{
						{AccountID: "1234567890", IsPrimary: true, Status: domain.AdAccountStatusActive},
						{AccountID: "9876543210", Status: domain.AdAccountStatusActive},
						{AccountID: "5555555555", Status: domain.AdAccountStatusInactive},
					}, nil)

				mockAccountRepo.EXPECT().
					ListAccountsByClient(gomock.Any(), "c1", domain.PlatformMeta).
					Return(nil, nil)
			},
			validate: func(t *testing.T, requests []reviewing.ReviewRequest, err error) {
				require.NoError(t, err)
				require.Len(t, requests, 2)
				assert.Equal(t, "1234567890", requests[0].AccountID)
				assert.Equal(t, "9876543210", requests[1].AccountID)
				for _, req := range requests {
					assert.Equal(t, "c1", req.ClientID)
					assert.Equal(t, domain.PlatformGoogle, req.Platform)
					require.NotNil(t, req.ReviewDate)
					assert.True(t, reviewDate.Equal(*req.ReviewDate))
				}
			},
		},
		{
			name: "Erro ao listar contas secundárias - mantém a conta principal",
			setup: func() {
				mockClientRepo.EXPECT().
					ListClients(gomock.Any(), gomock.Any()).
					Return([]*domain.Client{
						{ID: "c2", Status: domain.ClientStatusActive, MetaAccountID: stringPtr("act_111222333")},
					}, nil)

				mockAccountRepo.EXPECT().
					ListAccountsByClient(gomock.Any(), "c2", domain.PlatformGoogle).
					Return(nil, nil)

				mockAccountRepo.EXPECT().
					ListAccountsByClient(gomock.Any(), "c2", domain.PlatformMeta).
					Return(nil, errors.New("db down"))
			},
			validate: func(t *testing.T, requests []reviewing.ReviewRequest, err error) {
				require.NoError(t, err)
				require.Len(t, requests, 1)
				assert.Equal(t, "111222333", requests[0].AccountID)
				assert.Equal(t, domain.PlatformMeta, requests[0].Platform)
			},
		},
		{
			name: "Erro ao listar clientes - retorna erro",
			setup: func() {
				mockClientRepo.EXPECT().
					ListClients(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db down"))
			},
			validate: func(t *testing.T, requests []reviewing.ReviewRequest, err error) {
				assert.Error(t, err)
				assert.Nil(t, requests)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			requests, err := service.buildRequests(context.Background(), reviewDate)
			tt.validate(t, requests, err)
		})
	}
}

func TestBudgetReviewSyncService_RunContinuaAposFalhas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClientRepo := mocks.NewMockClientRepository(ctrl)
	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockReviewer := schedulermocks.NewMockReviewer(ctrl)

	service := newTestSyncService(mockClientRepo, mockAccountRepo, mockReviewer, domain.PlatformGoogle)

	mockClientRepo.EXPECT().
		ListClients(gomock.Any(), gomock.Any()).
		Return([]*domain.Client{
			{ID: "c1", Status: domain.ClientStatusActive, GoogleAccountID: stringPtr("1111111111")},
			{ID: "c2", Status: domain.ClientStatusActive, GoogleAccountID: stringPtr("2222222222")},
			{ID: "c3", Status: domain.ClientStatusActive, GoogleAccountID: stringPtr("3333333333")},
		}, nil)
	mockAccountRepo.EXPECT().
		ListAccountsByClient(gomock.Any(), gomock.Any(), domain.PlatformGoogle).
		Return(nil, nil).
		Times(3)

	mockReviewer.EXPECT().
		Review(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req reviewing.ReviewRequest) *reviewing.ReviewResult {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)

			switch req.ClientID {
			case "c1":
				return &reviewing.ReviewResult{Success: true, ClientID: req.ClientID}
			case "c2":
				return &reviewing.ReviewResult{Success: true, Degraded: true, ClientID: req.ClientID}
			default:
				return &reviewing.ReviewResult{Success: false, Retryable: true, ErrorKind: reviewing.KindPlatformAPI, ClientID: req.ClientID}
			}
		}).
		Times(3)

	summary := service.syncAllBudgetReviews(context.Background())

	require.NotNil(t, summary)
	assert.Equal(t, 3, summary.Units)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Degraded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Retryable)
	assert.False(t, service.IsRunning())

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, *summary, status["last_run"])
}

func TestBudgetReviewSyncService_LimitaConcorrencia(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClientRepo := mocks.NewMockClientRepository(ctrl)
	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)
	mockReviewer := schedulermocks.NewMockReviewer(ctrl)

	service := newTestSyncService(mockClientRepo, mockAccountRepo, mockReviewer, domain.PlatformGoogle)

	requests := make([]reviewing.ReviewRequest, 6)
	for i := range requests {
		requests[i] = reviewing.ReviewRequest{ClientID: "c", AccountID: string(rune('a' + i)), Platform: domain.PlatformGoogle}
	}

	var current, peak int32
	mockReviewer.EXPECT().
		Review(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req reviewing.ReviewRequest) *reviewing.ReviewResult {
			n := atomic.AddInt32(&current, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&current, -1)
			return &reviewing.ReviewResult{Success: true, AccountID: req.AccountID}
		}).
		Times(len(requests))

	results := service.processReviews(context.Background(), requests)

	require.Len(t, results, len(requests))
	for i, result := range results {
		assert.Equal(t, requests[i].AccountID, result.AccountID)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestBudgetReviewSyncService_IgnoraDisparoConcorrente(t *testing.T) {
	service := newTestSyncService(nil, nil, nil)

	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	assert.Nil(t, service.syncAllBudgetReviews(context.Background()))
	assert.False(t, service.TriggerManualSync())
	assert.True(t, service.IsRunning())
}

func TestBudgetReviewSyncService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClientRepo := mocks.NewMockClientRepository(ctrl)
	mockAccountRepo := mocks.NewMockAccountRepository(ctrl)

	service := newTestSyncService(mockClientRepo, mockAccountRepo, nil, domain.PlatformGoogle)

	var wg sync.WaitGroup
	wg.Add(1)
	mockClientRepo.EXPECT().
		ListClients(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, status []domain.ClientStatus) ([]*domain.Client, error) {
			defer wg.Done()
			return nil, nil
		})

	assert.True(t, service.TriggerManualSync())
	wg.Wait()

	assert.Eventually(t, func() bool { return !service.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestBudgetReviewSyncService_StartDesabilitado(t *testing.T) {
	service := newTestSyncService(nil, nil, nil)
	service.config.SyncEnabled = false

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, 0, len(service.scheduler.Jobs()))
}

func TestBudgetReviewSyncService_StartCronInvalido(t *testing.T) {
	service := newTestSyncService(nil, nil, nil)
	service.config.CronSchedule = "isso não é cron"

	assert.Error(t, service.Start(context.Background()))
}
