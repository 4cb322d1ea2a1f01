package log

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

// Logger é o subconjunto de logrus usado pelas revisões e pelos middlewares HTTP
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
}

type contextKey string

const correlationIDKey contextKey = "correlation_id"

// Campos padronizados da unidade de revisão
const (
	FieldCorrelationID = "correlation_id"
	FieldClientID      = "client_id"
	FieldAccountID     = "account_id"
	FieldPlatform      = "platform"
	FieldReviewDate    = "review_date"
	FieldReviewID      = "review_id"
)

// compactFields são os únicos campos mantidos no modo compacto (desenvolvimento)
var compactFields = map[string]bool{
	FieldCorrelationID: true,
	FieldClientID:      true,
	FieldAccountID:     true,
	FieldPlatform:      true,
	FieldReviewDate:    true,
	FieldReviewID:      true,
	"method":           true,
	"path":             true,
	"status_code":      true,
	"duration_ms":      true,
	"error":            true,
	"error_kind":       true,
	"degraded":         true,
}

var compact atomic.Bool

func init() {
	compact.Store(true)
}

// Setup ajusta formato e nível do logrus para o ambiente.
// Fora de desenvolvimento os logs saem em JSON com todos os campos.
func Setup(env string, level logrus.Level) {
	dev := IsDevelopmentEnv(env)
	compact.Store(dev)

	if dev {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
			PadLevelText:    true,
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}
	logrus.SetLevel(level)
}

func IsDevelopmentEnv(env string) bool {
	switch strings.ToLower(env) {
	case "", "development", "dev", "local":
		return true
	}
	return false
}

// Compact indica se o modo compacto de desenvolvimento está ativo
func Compact() bool {
	return compact.Load()
}

type logger struct {
	entry *logrus.Entry
}

// L usa o logger padrão do logrus, para que hooks e formatter configurados valham aqui também
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

func keep(key string) bool {
	return !Compact() || compactFields[key] || strings.HasPrefix(key, "user_")
}

func (l *logger) WithField(key string, value any) Logger {
	if !keep(key) {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	kept := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if keep(k) {
			kept[k] = v
		}
	}
	if len(kept) == 0 {
		return l
	}
	return &logger{entry: l.entry.WithFields(kept)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

func (l *logger) Debug(args ...any) { l.entry.Debug(args...) }
func (l *logger) Info(args ...any)  { l.entry.Info(args...) }
func (l *logger) Warn(args ...any)  { l.entry.Warn(args...) }
func (l *logger) Error(args ...any) { l.entry.Error(args...) }

func (l *logger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

// WithCorrelationID gera um novo ID de correlação e o guarda no contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	id := uuid.New().String()
	return ContextWithCorrelationID(ctx, id), id
}

// ContextWithCorrelationID reaproveita um ID recebido (por exemplo do header X-Correlation-ID)
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID devolve o ID de correlação do contexto, ou vazio
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// ForContext cria um logger com o ID de correlação do contexto
func ForContext(ctx context.Context) Logger {
	if id := CorrelationID(ctx); id != "" {
		return L.WithField(FieldCorrelationID, id)
	}
	return L
}

// ForReview cria o logger de uma unidade de revisão (cliente, conta e plataforma)
func ForReview(ctx context.Context, clientID, accountID string, platform any) Logger {
	return ForContext(ctx).WithFields(Fields{
		FieldClientID:  clientID,
		FieldAccountID: accountID,
		FieldPlatform:  platform,
	})
}
