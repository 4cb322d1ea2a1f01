package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-review-api/pkg/apiErrors"
	"github.com/vfg2006/budget-review-api/pkg/utils"
)

type ActiveCustomBudgetResponse struct {
	Found        bool                 `json:"found"`
	CustomBudget *domain.CustomBudget `json:"custom_budget"`
}

type ConflictResponse struct {
	HasConflict bool `json:"has_conflict"`
}

// GetActiveCustomBudget retorna o orçamento personalizado que governa a conta na data
func GetActiveCustomBudget(resolver budgeting.CustomBudgetResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		clientID := query.Get("client_id")
		if clientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "client_id é obrigatório", nil)
			return
		}

		platform, err := domain.ParsePlatform(query.Get("platform"))
		if err != nil {
			writeRequestError(w, err)
			return
		}

		date, err := parseDate(query.Get("date"))
		if err != nil {
			writeRequestError(w, err)
			return
		}
		onDate := utils.Today()
		if date != nil {
			onDate = *date
		}

		accountID := optionalString(query.Get("account_id"))
		if accountID != nil {
			caps, _ := domain.CapabilitiesFor(platform)
			normalized := caps.NormalizeAccountID(*accountID)
			accountID = &normalized
		}

		cb, err := resolver.ResolveActiveCustomBudget(r.Context(), clientID, platform, accountID, onDate)
		if err != nil {
			writeCustomBudgetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ActiveCustomBudgetResponse{
			Found:        cb != nil,
			CustomBudget: cb,
		})
	}
}

// CheckCustomBudgetConflict avisa o editor quando outro orçamento ativo do mesmo escopo cruza o intervalo
func CheckCustomBudgetConflict(resolver budgeting.CustomBudgetResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		platform, err := domain.ParsePlatform(query.Get("platform"))
		if err != nil {
			writeRequestError(w, err)
			return
		}

		startDate, err := parseDate(query.Get("start_date"))
		if err != nil {
			writeRequestError(w, err)
			return
		}
		endDate, err := parseDate(query.Get("end_date"))
		if err != nil {
			writeRequestError(w, err)
			return
		}
		if startDate == nil || endDate == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "start_date e end_date são obrigatórios", nil)
			return
		}

		accountID := optionalString(query.Get("account_id"))
		if accountID != nil {
			caps, _ := domain.CapabilitiesFor(platform)
			normalized := caps.NormalizeAccountID(*accountID)
			accountID = &normalized
		}

		conflict, err := resolver.HasConflict(r.Context(), budgeting.ConflictQuery{
			ClientID:        query.Get("client_id"),
			Platform:        platform,
			StartDate:       *startDate,
			EndDate:         *endDate,
			AccountID:       accountID,
			ExcludeBudgetID: query.Get("exclude_id"),
		})
		if err != nil {
			writeCustomBudgetError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ConflictResponse{HasConflict: conflict})
	}
}

func writeCustomBudgetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, budgeting.ErrClientIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "client_id é obrigatório", nil)
	case errors.Is(err, budgeting.ErrInvalidDateRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
	default:
		logrus.WithError(err).Error("Erro ao consultar orçamentos personalizados")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar orçamentos personalizados", nil)
	}
}
