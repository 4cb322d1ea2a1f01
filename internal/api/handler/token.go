package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/infrastructure/integrator/credential"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/pkg/apiErrors"
)

// TokenService expõe o ciclo de vida do token de uma plataforma
type TokenService interface {
	Status(ctx context.Context) (*domain.TokenMetadata, error)
	RefreshToken(ctx context.Context) (string, error)
}

// GetTokenStatus retorna os metadados do token de acesso (nunca o valor)
func GetTokenStatus(services map[domain.Platform]TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platform, service, ok := tokenServiceFor(w, r, services)
		if !ok {
			return
		}

		metadata, err := service.Status(r.Context())
		if err != nil {
			logrus.WithField("platform", platform).WithError(err).Error("Erro ao consultar status do token")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar status do token", nil)
			return
		}

		writeJSON(w, http.StatusOK, metadata)
	}
}

// RefreshToken força a renovação do token e retorna os novos metadados
func RefreshToken(services map[domain.Platform]TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RefreshToken")

		platform, service, ok := tokenServiceFor(w, r, services)
		if !ok {
			return
		}

		if _, err := service.RefreshToken(r.Context()); err != nil {
			logrus.WithField("platform", platform).WithError(err).Error("Erro ao renovar token")

			switch {
			case errors.Is(err, credential.ErrCredentialsIncomplete):
				apiErrors.WriteError(w, apiErrors.ErrCredentialsIncomplete, err.Error(), nil)
			case errors.Is(err, credential.ErrTokenRefreshFailed):
				apiErrors.WriteError(w, apiErrors.ErrTokenRefreshFailed, err.Error(), nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao renovar token", nil)
			}
			return
		}

		metadata, err := service.Status(r.Context())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Token renovado, mas não foi possível consultar o status", nil)
			return
		}

		writeJSON(w, http.StatusOK, metadata)
	}
}

func tokenServiceFor(w http.ResponseWriter, r *http.Request, services map[domain.Platform]TokenService) (domain.Platform, TokenService, bool) {
	platform, err := domain.ParsePlatform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))
	if err != nil {
		writeRequestError(w, err)
		return "", nil, false
	}

	service, ok := services[platform]
	if !ok || service == nil {
		apiErrors.WriteError(w, apiErrors.ErrPlatformNotConfigured, "Plataforma sem integração configurada", map[string]any{
			"platform": platform,
		})
		return "", nil, false
	}

	return platform, service, true
}
