package handler

import (
	"net/http"

	"github.com/vfg2006/budget-review-api/internal/api/handler/router"
	"github.com/vfg2006/budget-review-api/internal/domain"
	"github.com/vfg2006/budget-review-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-review-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-review-api/internal/usecases/reviewing"
	"github.com/vfg2006/budget-review-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func BudgetReviews(service reviewing.BudgetReviewer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/budget-reviews",
			Method:      http.MethodPost,
			Handler:     ReviewBudget(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/budget-reviews/batch",
			Method:      http.MethodPost,
			Handler:     ReviewBudgetBatch(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/budget-reviews",
			Method:      http.MethodGet,
			Handler:     ListBudgetReviews(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:client_id/budget-reviews/:platform/:account_id/:date",
			Method:      http.MethodGet,
			Handler:     GetBudgetReview(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CustomBudgets(resolver budgeting.CustomBudgetResolver) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/custom-budgets/active",
			Method:      http.MethodGet,
			Handler:     GetActiveCustomBudget(resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/custom-budgets/conflicts",
			Method:      http.MethodGet,
			Handler:     CheckCustomBudgetConflict(resolver),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Tokens(services map[domain.Platform]TokenService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tokens/:platform",
			Method:      http.MethodGet,
			Handler:     GetTokenStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/tokens/:platform/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshToken(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
