package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/pkg/apiErrors"
)

// Pinger verifica a conexão com o banco (satisfeito por *sql.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				logrus.WithError(err).Warn("Banco de dados indisponível no healthcheck")
				apiErrors.WriteError(w, apiErrors.ErrCommunication, "Banco de dados indisponível", nil)
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}
