package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-review-api/pkg/apiErrors"
)

const maxBatchSize = 200

type ReviewBudgetRequest struct {
	ClientID   string `json:"client_id"`
	AccountID  string `json:"account_id"`
	Platform   string `json:"platform"`
	ReviewDate string `json:"review_date"`
}

type ReviewBudgetBatchRequest struct {
	Reviews []ReviewBudgetRequest `json:"reviews"`
}

type ReviewBudgetBatchResponse struct {
	Total     int                       `json:"total"`
	Succeeded int                       `json:"succeeded"`
	Failed    int                       `json:"failed"`
	Results   []*reviewing.ReviewResult `json:"results"`
}

func (r ReviewBudgetRequest) toReviewRequest() (reviewing.ReviewRequest, error) {
	platform, err := parsePlatform(r.Platform)
	if err != nil {
		return reviewing.ReviewRequest{}, err
	}

	reviewDate, err := parseDate(r.ReviewDate)
	if err != nil {
		return reviewing.ReviewRequest{}, err
	}

	return reviewing.ReviewRequest{
		ClientID:   r.ClientID,
		AccountID:  r.AccountID,
		Platform:   platform,
		ReviewDate: reviewDate,
	}, nil
}

// ReviewBudget executa a revisão de uma conta. Falhas voltam como ReviewResult com o status HTTP da categoria.
func ReviewBudget(service reviewing.BudgetReviewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ReviewBudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		req, err := body.toReviewRequest()
		if err != nil {
			writeRequestError(w, err)
			return
		}

		result := service.Review(r.Context(), req)
		if result == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Revisão não retornou resultado", nil)
			return
		}

		status := http.StatusOK
		if !result.Success {
			status = apiErrors.StatusFor(apiCodeForReview(result.ErrorCode, result.ErrorKind))
		}

		writeJSON(w, status, result)
	}
}

// ReviewBudgetBatch executa várias revisões; a falha de uma não interrompe as demais
func ReviewBudgetBatch(service reviewing.BudgetReviewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ReviewBudgetBatch")

		var body ReviewBudgetBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if len(body.Reviews) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhuma revisão informada", nil)
			return
		}
		if len(body.Reviews) > maxBatchSize {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Quantidade de revisões acima do limite", map[string]any{
				"max": maxBatchSize,
			})
			return
		}

		reqs := make([]reviewing.ReviewRequest, 0, len(body.Reviews))
		for i, item := range body.Reviews {
			req, err := item.toReviewRequest()
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), map[string]any{
					"index": i,
				})
				return
			}
			reqs = append(reqs, req)
		}

		results := service.ReviewBatch(r.Context(), reqs)

		response := ReviewBudgetBatchResponse{
			Total:   len(results),
			Results: results,
		}
		for _, result := range results {
			if result != nil && result.Success {
				response.Succeeded++
			} else {
				response.Failed++
			}
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// ListBudgetReviews lista as revisões de um cliente com filtros opcionais
func ListBudgetReviews(service reviewing.BudgetReviewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		platform, err := parsePlatform(query.Get("platform"))
		if err != nil {
			writeRequestError(w, err)
			return
		}

		reviewDate, err := parseDate(query.Get("review_date"))
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

		limit, err := parseLimit(query.Get("limit"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um número inteiro positivo", nil)
			return
		}

		reviews, err := service.ListReviews(r.Context(), domain.BudgetReviewFilters{
			ClientID:   query.Get("client_id"),
			AccountID:  query.Get("account_id"),
			Platform:   platform,
			ReviewDate: reviewDate,
			StartDate:  startDate,
			EndDate:    endDate,
			Limit:      limit,
		})
		if err != nil {
			writeReviewError(w, err)
			return
		}

		if reviews == nil {
			reviews = []*domain.BudgetReview{}
		}

		writeJSON(w, http.StatusOK, reviews)
	}
}

// GetBudgetReview busca a revisão gravada de uma conta em um dia
func GetBudgetReview(service reviewing.BudgetReviewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		platform, err := domain.ParsePlatform(params.ByName("platform"))
		if err != nil {
			writeRequestError(w, err)
			return
		}

		date, err := parseDate(params.ByName("date"))
		if err != nil || date == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, errInvalidDate.Error(), nil)
			return
		}

		review, err := service.GetReview(r.Context(), params.ByName("client_id"), params.ByName("account_id"), platform, *date)
		if err != nil {
			writeReviewError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, review)
	}
}

func writeRequestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownPlatform):
		apiErrors.WriteError(w, apiErrors.ErrInvalidPlatform, err.Error(), map[string]any{
			"supported": domain.SupportedPlatforms(),
		})
	case errors.Is(err, errInvalidDate):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	}
}

func writeReviewError(w http.ResponseWriter, err error) {
	var reviewErr *reviewing.ReviewError
	if errors.As(err, &reviewErr) {
		apiErrors.WriteError(w, apiCodeForReview(reviewErr.Code, reviewErr.Kind), reviewErr.Error(), nil)
		return
	}

	logrus.WithError(err).Error("Erro inesperado ao consultar revisões")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar revisões", nil)
}

// apiCodeForReview traduz o código do motor para o código da API
func apiCodeForReview(code string, kind reviewing.Kind) string {
	switch code {
	case "CLIENT_ID_REQUIRED", "ACCOUNT_ID_REQUIRED":
		return apiErrors.ErrMissingRequiredData
	case "INVALID_PLATFORM":
		return apiErrors.ErrInvalidPlatform
	case "INVALID_ACCOUNT_ID":
		return apiErrors.ErrInvalidAccountID
	case "CLIENT_NOT_FOUND":
		return apiErrors.ErrClientNotFound
	case "REVIEW_NOT_FOUND":
		return apiErrors.ErrReviewNotFound
	case "PLATFORM_NOT_CONFIGURED":
		return apiErrors.ErrPlatformNotConfigured
	case "CREDENTIALS_INCOMPLETE":
		return apiErrors.ErrCredentialsIncomplete
	case "TOKEN_REFRESH_FAILED":
		return apiErrors.ErrTokenRefreshFailed
	case "PLATFORM_API_ERROR":
		return apiErrors.ErrExternalService
	case "REFERENTIAL_INTEGRITY_VIOLATION":
		return apiErrors.ErrReferentialIntegrity
	case "CLIENT_LOOKUP_FAILED", "ACCOUNT_LOOKUP_FAILED", "ACCOUNT_PROVISION_FAILED",
		"CUSTOM_BUDGET_LOOKUP_FAILED", "PERSISTENCE_FAILED", "FETCH_REVIEWS_FAILED":
		return apiErrors.ErrDatabaseOperation
	}

	if kind == reviewing.KindValidation {
		return apiErrors.ErrInvalidRequest
	}
	return apiErrors.ErrReviewFailed
}
