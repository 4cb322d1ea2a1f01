package credential

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/repository"
	"github.com/vfg2006/budget-review-api/internal/config"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/pkg/utils"
	"golang.org/x/sync/singleflight"
)

// Policy controla quando e quantas vezes o token é renovado
type Policy struct {
	RefreshThreshold time.Duration
	MaxAttempts      int
	RetryDelay       time.Duration
	// RefreshTimeout limita a renovação compartilhada, que não herda o cancelamento de quem a iniciou
	RefreshTimeout time.Duration
	// CheckInterval é o intervalo mínimo entre gravações de last_checked
	CheckInterval time.Duration
}

const defaultRefreshTimeout = 2 * time.Minute

func NewPolicy(cfg config.TokenLifecycle) Policy {
	return Policy{
		RefreshThreshold: cfg.RefreshThreshold,
		MaxAttempts:      cfg.MaxAttempts,
		RetryDelay:       cfg.RetryDelay,
		RefreshTimeout:   cfg.RefreshTimeout,
		CheckInterval:    cfg.CheckInterval,
	}
}

type Option func(*TokenManager)

func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) {
		m.now = now
	}
}

func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(m *TokenManager) {
		m.sleep = sleep
	}
}

// WithSecretMirror replica o token renovado no Render quando serviceID estiver configurado
func WithSecretMirror(storage config.SecretStorage, serviceID string) Option {
	return func(m *TokenManager) {
		m.mirror = storage
		m.mirrorServiceID = serviceID
	}
}

// TokenManager controla o ciclo de vida do token de acesso de uma plataforma.
//
// O estado vive no armazenamento de credenciais (tabela api_tokens + metadados), não em memória.
// Renovações concorrentes no mesmo processo são colapsadas em uma única chamada; entre processos
// a corrida é tolerada, pois a troca é idempotente e a última escrita vence.
type TokenManager struct {
	grant  Grant
	repo   repository.TokenRepository
	policy Policy

	mirror          config.SecretStorage
	mirrorServiceID string

	group singleflight.Group
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewTokenManager(grant Grant, repo repository.TokenRepository, policy Policy, opts ...Option) *TokenManager {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.RefreshTimeout <= 0 {
		policy.RefreshTimeout = defaultRefreshTimeout
	}

	m := &TokenManager{
		grant:  grant,
		repo:   repo,
		policy: policy,
		now:    time.Now,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *TokenManager) Platform() domain.Platform {
	return m.grant.Platform()
}

// GetValidAccessToken devolve o token armazenado se ainda estiver além do limite de segurança,
// senão renova antes de entregar
func (m *TokenManager) GetValidAccessToken(ctx context.Context) (string, error) {
	metadata, err := m.repo.GetMetadata(ctx, m.Platform(), domain.TokenTypeAccess)
	if err != nil {
		return "", fmt.Errorf("erro ao ler metadados do token: %w", err)
	}

	secrets, err := m.repo.GetSecrets(ctx, m.grant.AccessTokenSecret())
	if err != nil {
		return "", fmt.Errorf("erro ao ler token de acesso: %w", err)
	}
	token := secrets[m.grant.AccessTokenSecret()]

	now := m.now()
	if token != "" && metadata.UsableAt(now, m.policy.RefreshThreshold) {
		if m.checkDue(metadata, now) {
			metadata.LastChecked = &now
			if err := m.repo.SaveMetadata(ctx, metadata); err != nil {
				logrus.WithFields(logrus.Fields{
					"platform": m.Platform(),
					"error":    err,
				}).Warn("Não foi possível registrar a verificação do token")
			}
		}
		return token, nil
	}

	fields := logrus.Fields{"platform": m.Platform()}
	if metadata != nil {
		fields["status"] = metadata.Status
		if metadata.ExpiresAt != nil {
			fields["expires_at"] = metadata.ExpiresAt.Format(time.RFC3339)
		}
	}
	logrus.WithFields(fields).Info("Token ausente ou próximo da expiração, renovando")

	return m.RefreshToken(ctx)
}

// checkDue evita gravar last_checked a cada leitura do token
func (m *TokenManager) checkDue(metadata *domain.TokenMetadata, now time.Time) bool {
	return metadata.LastChecked == nil || now.Sub(*metadata.LastChecked) >= m.policy.CheckInterval
}

// RefreshToken força a renovação do token de acesso.
//
// A renovação é compartilhada entre chamadas concorrentes e roda com prazo próprio (RefreshTimeout);
// o cancelamento de ctx libera apenas quem chamou, sem abortar a renovação para os demais.
func (m *TokenManager) RefreshToken(ctx context.Context) (string, error) {
	ch := m.group.DoChan(string(m.Platform()), func() (interface{}, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.policy.RefreshTimeout)
		defer cancel()
		return m.refresh(refreshCtx)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrTokenRefreshFailed, ctx.Err())
	case res := <-ch:
		if res.Shared {
			logrus.WithField("platform", m.Platform()).Debug("Renovação de token compartilhada com outra chamada")
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Status retorna os metadados atuais do token para diagnóstico
func (m *TokenManager) Status(ctx context.Context) (*domain.TokenMetadata, error) {
	metadata, err := m.repo.GetMetadata(ctx, m.Platform(), domain.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		return &domain.TokenMetadata{
			Platform:  m.Platform(),
			TokenType: domain.TokenTypeAccess,
			Status:    domain.TokenStatusUnknown,
		}, nil
	}

	return metadata, nil
}

func (m *TokenManager) refresh(ctx context.Context) (string, error) {
	secrets, err := m.repo.GetSecrets(ctx, m.grant.RequiredSecrets()...)
	if err != nil {
		return "", fmt.Errorf("erro ao ler credenciais: %w", err)
	}

	if missing := missingSecrets(secrets, m.grant.RequiredSecrets()); len(missing) > 0 {
		m.recordEvent(ctx, domain.TokenEventMissingSecrets, domain.TokenStatusError,
			"credenciais ausentes no armazenamento", map[string]any{"missing": missing})
		m.saveStatus(ctx, domain.TokenStatusError)

		logrus.WithFields(logrus.Fields{
			"platform": m.Platform(),
			"missing":  strings.Join(missing, ","),
		}).Error("Credenciais incompletas, renovação abortada")

		return "", fmt.Errorf("%w: %s", ErrCredentialsIncomplete, strings.Join(missing, ", "))
	}

	m.saveStatus(ctx, domain.TokenStatusRefreshing)

	var lastErr error
	for attempt := 1; attempt <= m.policy.MaxAttempts; attempt++ {
		m.recordEvent(ctx, domain.TokenEventRefreshAttempt, domain.TokenStatusRefreshing,
			fmt.Sprintf("tentativa %d de %d", attempt, m.policy.MaxAttempts), map[string]any{"attempt": attempt})

		result, err := m.grant.Exchange(ctx, secrets)
		if err == nil && (result == nil || result.AccessToken == "") {
			err = fmt.Errorf("endpoint de token retornou token vazio")
		}
		if err == nil {
			return m.persist(ctx, result)
		}

		lastErr = err
		m.recordEvent(ctx, domain.TokenEventRefreshFailure, domain.TokenStatusRefreshing,
			err.Error(), map[string]any{"attempt": attempt})

		logrus.WithFields(logrus.Fields{
			"platform": m.Platform(),
			"attempt":  attempt,
			"error":    err,
		}).Warn("Falha na tentativa de renovação do token")

		if attempt < m.policy.MaxAttempts {
			if sleepErr := m.sleep(ctx, m.policy.RetryDelay); sleepErr != nil {
				lastErr = sleepErr
				break
			}
		}
	}

	// ctx pode já estar cancelado; o estado final precisa ser gravado mesmo assim
	finalCtx := context.WithoutCancel(ctx)
	m.saveStatus(finalCtx, domain.TokenStatusError)
	m.recordEvent(finalCtx, domain.TokenEventRefreshFailure, domain.TokenStatusError,
		"renovação abandonada após esgotar as tentativas", map[string]any{"error": lastErr.Error()})

	return "", fmt.Errorf("%w: %w", ErrTokenRefreshFailed, lastErr)
}

func (m *TokenManager) persist(ctx context.Context, result *GrantResult) (string, error) {
	now := m.now()
	expiresAt := now.Add(result.ExpiresIn)

	if err := m.repo.SaveSecret(ctx, m.grant.AccessTokenSecret(), result.AccessToken); err != nil {
		m.saveStatus(ctx, domain.TokenStatusError)
		return "", fmt.Errorf("erro ao gravar token renovado: %w", err)
	}

	metadata := &domain.TokenMetadata{
		Platform:      m.Platform(),
		TokenType:     domain.TokenTypeAccess,
		Status:        domain.TokenStatusValid,
		LastRefreshed: &now,
		LastChecked:   &now,
		ExpiresAt:     &expiresAt,
	}
	if err := m.repo.SaveMetadata(ctx, metadata); err != nil {
		return "", fmt.Errorf("erro ao gravar metadados do token: %w", err)
	}

	m.recordEvent(ctx, domain.TokenEventRefreshSuccess, domain.TokenStatusValid,
		"token renovado com sucesso", map[string]any{"expires_at": expiresAt.Format(time.RFC3339)})

	logrus.WithFields(logrus.Fields{
		"platform":   m.Platform(),
		"token":      utils.MaskSecret(result.AccessToken),
		"expires_at": expiresAt.Format(time.RFC3339),
	}).Info("Token de acesso renovado com sucesso")

	m.mirrorToken(ctx, result.AccessToken)

	return result.AccessToken, nil
}

func (m *TokenManager) mirrorToken(ctx context.Context, token string) {
	if m.mirror == nil || m.mirrorServiceID == "" {
		return
	}

	if err := m.mirror.AddOrUpdateSecret(ctx, m.mirrorServiceID, m.grant.AccessTokenSecret(), token); err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": m.Platform(),
			"error":    err,
		}).Warn("Não foi possível espelhar o token no Render")
		m.recordEvent(ctx, domain.TokenEventMirrorFailure, domain.TokenStatusValid, err.Error(), nil)
	}
}

func (m *TokenManager) saveStatus(ctx context.Context, status domain.TokenStatus) {
	metadata := &domain.TokenMetadata{
		Platform:  m.Platform(),
		TokenType: domain.TokenTypeAccess,
		Status:    status,
	}
	if err := m.repo.SaveMetadata(ctx, metadata); err != nil {
		logrus.WithFields(logrus.Fields{
			"platform": m.Platform(),
			"status":   status,
			"error":    err,
		}).Warn("Não foi possível atualizar o status do token")
	}
}

// recordEvent grava no log de eventos; falhas aqui nunca interrompem a renovação
func (m *TokenManager) recordEvent(ctx context.Context, eventType domain.TokenEventType, status domain.TokenStatus, message string, details map[string]any) {
	event := &domain.TokenEvent{
		Platform:  m.Platform(),
		TokenType: domain.TokenTypeAccess,
		EventType: eventType,
		Status:    status,
		Message:   message,
		Details:   details,
		CreatedAt: m.now(),
	}
	if err := m.repo.AppendEvent(ctx, event); err != nil {
		logrus.WithFields(logrus.Fields{
			"platform":   m.Platform(),
			"event_type": eventType,
			"error":      err,
		}).Warn("Não foi possível registrar evento de token")
	}
}

func missingSecrets(secrets map[string]string, required []string) []string {
	var missing []string
	for _, name := range required {
		if secrets[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
