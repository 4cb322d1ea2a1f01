package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/budget-review-api/pkg/apiErrors"
	"github.com/vfg2006/budget-review-api/pkg/log"
)

// CorrelationIDHeader devolve ao chamador o id usado nos logs da requisição
const CorrelationIDHeader = "X-Correlation-ID"

// Revisões em lote consultam as plataformas; abaixo disso não vale o aviso
const slowRequestThreshold = 5 * time.Second

// LoggingMiddleware registra cada requisição com o ID de correlação que também segue para as revisões.
// Um X-Correlation-ID válido recebido do chamador (ex.: o agendador externo) é reaproveitado.
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := requestCorrelationID(r)
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			logger := log.ForContext(ctx).WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"query":       r.URL.RawQuery,
				"remote_addr": r.RemoteAddr,
			})
			logger.Debug("Requisição iniciada")

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			logger = logger.WithFields(log.Fields{
				"status_code": rec.status,
				"duration_ms": elapsed.Milliseconds(),
			})

			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("Requisição finalizada com erro")
			case rec.status >= http.StatusBadRequest:
				logger.Warn("Requisição recusada")
			case elapsed > slowRequestThreshold:
				logger.Warnf("Requisição lenta: %s", elapsed.Round(time.Millisecond))
			default:
				logger.Info("Requisição finalizada")
			}
		})
	}
}

func requestCorrelationID(r *http.Request) (context.Context, string) {
	if id := r.Header.Get(CorrelationIDHeader); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return log.ContextWithCorrelationID(r.Context(), id), id
		}
	}
	return log.WithCorrelationID(r.Context())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware converte pânicos em 500 no formato padrão de erro da API
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := debug.Stack()
					// o ID é gravado no header pelo LoggingMiddleware, que roda depois deste
					correlationID := w.Header().Get(CorrelationIDHeader)

					logger := log.L.WithFields(log.Fields{
						log.FieldCorrelationID: correlationID,
						"error":                fmt.Sprint(err),
						"method":               r.Method,
						"path":                 r.URL.Path,
					})
					if log.Compact() {
						logger.Error("Pânico na aplicação")
						fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n", stack)
					} else {
						logger.WithField("stack_trace", string(stack)).Error("Pânico na aplicação")
					}

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor",
						map[string]string{log.FieldCorrelationID: correlationID})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
