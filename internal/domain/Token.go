package domain

import "time"

type TokenStatus string

const (
	TokenStatusValid      TokenStatus = "valid"
	TokenStatusExpired    TokenStatus = "expired"
	TokenStatusUnknown    TokenStatus = "unknown"
	TokenStatusRefreshing TokenStatus = "refreshing"
	TokenStatusError      TokenStatus = "error"
)

// TokenTypeAccess é o único tipo de token acompanhado hoje
const TokenTypeAccess = "access_token"

// TokenMetadata é o estado do ciclo de vida de um token. Só o gerenciador de tokens escreve aqui.
type TokenMetadata struct {
	Platform      Platform    `json:"platform"`
	TokenType     string      `json:"token_type"`
	Status        TokenStatus `json:"status"`
	LastRefreshed *time.Time  `json:"last_refreshed"`
	LastChecked   *time.Time  `json:"last_checked"`
	ExpiresAt     *time.Time  `json:"expires_at"`
}

// UsableAt indica se o token ainda pode ser entregue: status válido e expiração além do limite de segurança
func (m *TokenMetadata) UsableAt(now time.Time, threshold time.Duration) bool {
	if m == nil || m.Status != TokenStatusValid || m.ExpiresAt == nil {
		return false
	}
	return m.ExpiresAt.Sub(now) > threshold
}

type TokenEventType string

const (
	TokenEventCheck          TokenEventType = "check"
	TokenEventRefreshAttempt TokenEventType = "refresh_attempt"
	TokenEventRefreshSuccess TokenEventType = "refresh_success"
	TokenEventRefreshFailure TokenEventType = "refresh_failure"
	TokenEventMissingSecrets TokenEventType = "missing_credentials"
	TokenEventMirrorFailure  TokenEventType = "mirror_failure"
)

// TokenEvent é uma entrada do log de eventos de token (somente inserção)
type TokenEvent struct {
	Platform  Platform       `json:"platform"`
	TokenType string         `json:"token_type"`
	EventType TokenEventType `json:"event_type"`
	Status    TokenStatus    `json:"status"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
