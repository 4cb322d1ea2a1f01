package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-review-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeBudgetReview = "budget-review"
	CronJobTypeAll          = "all"
)

// CronJob é um agendador que pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os agendadores indexados pelo tipo usado na URL
type CronJobServices map[string]CronJob

func (s CronJobServices) types() []string {
	types := make([]string, 0, len(s))
	for name := range s {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		if cronType == CronJobTypeAll {
			started := make(map[string]bool, len(services))
			for _, name := range services.types() {
				started[name] = services[name].TriggerManualSync()
			}

			writeJSON(w, http.StatusAccepted, map[string]any{
				"message": "Cron jobs disparadas",
				"type":    cronType,
				"started": started,
			})
			return
		}

		job, ok := services[cronType]
		if !ok || job == nil {
			apiErrors.WriteError(w, apiErrors.ErrUnknownCronJob, "Tipo de cron job inválido", map[string]any{
				"accepted": append(services.types(), CronJobTypeAll),
			})
			return
		}

		if !job.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, "Cron job já em execução", map[string]any{
				"type": cronType,
			})
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			if job != nil {
				status[name] = job.GetStatus()
			}
		}

		writeJSON(w, http.StatusOK, status)
	}
}
