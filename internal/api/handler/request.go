package handler

import (
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errInvalidDate = errors.New("data deve estar no formato AAAA-MM-DD")

// parseDate interpreta datas AAAA-MM-DD no fuso local; string vazia retorna nil
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	date, err := utils.ParseDate(value)
	if err != nil {
		return nil, errors.Wrapf(errInvalidDate, "valor recebido %q", value)
	}

	return date, nil
}

// parsePlatform aceita vazio (inferência pelo motor) ou uma plataforma conhecida
func parsePlatform(value string) (domain.Platform, error) {
	if value == "" {
		return "", nil
	}
	return domain.ParsePlatform(value)
}

func parseLimit(value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseUint(value, 10, 64)
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}
