package reviewing

import (
	"context"
	"time"

	"github.com/vfg2006/budget-review-api/infrastructure/integrator/credential"
	"github.com/vfg2006/budget-review-api/internal/domain"
)

//go:generate mockgen -source=gateway.go -destination=mocks/gateway.go -package=mocks
type SpendFetcher interface {
	// FetchAccountSpend nunca falha: em erro da plataforma devolve gasto zerado com o detalhe do erro
	FetchAccountSpend(ctx context.Context, accountID string, reviewDate time.Time) *domain.AccountSpend
}

// SecretChecker confirma os segredos que a plataforma exige em toda chamada além do token de acesso
type SecretChecker interface {
	CheckSecrets(ctx context.Context) error
}

// PlatformGateway reúne o que o motor precisa de uma plataforma de anúncios.
// Secrets é opcional: só plataformas com segredos extras por chamada o preenchem.
type PlatformGateway struct {
	Tokens  credential.TokenProvider
	Secrets SecretChecker
	Spend   SpendFetcher
}
