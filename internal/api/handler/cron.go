package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeMetricsRebuild = "metrics-rebuild"
	CronJobTypeAll            = "all"
)

// ManualJob é um job agendado que também pode ser disparado pela API
type ManualJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	MetricsRebuildService ManualJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeMetricsRebuild, CronJobTypeAll:
			if services.MetricsRebuildService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recálculo das métricas não disponível", nil)
				return
			}
			if !services.MetricsRebuildService.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrAlreadyRunning, "Recálculo das métricas já em andamento", nil)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: metrics-rebuild, all", nil)
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
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.MetricsRebuildService != nil {
			status[CronJobTypeMetricsRebuild] = services.MetricsRebuildService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
