package credential

import (
	"context"
	"time"

	"github.com/vfg2006/budget-review-api/internal/domain"
)

// GrantResult é o token devolvido pelo endpoint de autorização da plataforma
type GrantResult struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// Grant troca as credenciais armazenadas por um novo token de acesso.
// Cada plataforma implementa o seu fluxo (refresh_token no Google, fb_exchange_token no Meta).
//
//go:generate mockgen -source=grant.go -destination=mocks/grant.go -package=mocks
type Grant interface {
	Platform() domain.Platform
	// RequiredSecrets são os nomes em api_tokens sem os quais não dá para renovar
	RequiredSecrets() []string
	// AccessTokenSecret é o nome em api_tokens onde o token de acesso é gravado
	AccessTokenSecret() string
	Exchange(ctx context.Context, secrets map[string]string) (*GrantResult, error)
}

// TokenProvider entrega um token de acesso pronto para uso
type TokenProvider interface {
	GetValidAccessToken(ctx context.Context) (string, error)
}
