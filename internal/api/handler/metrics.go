package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vfg2006/saas-metrics-api/internal/usecases/narrating"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

// GetPortfolioMetrics retorna as métricas mensais; ?window=N limita aos últimos N meses
func GetPortfolioMetrics(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Debug("INIT - GetPortfolioMetrics")

		window := 0
		if raw := strings.TrimSpace(r.URL.Query().Get("window")); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "window deve ser um inteiro não negativo", nil)
				return
			}
			window = parsed
		}

		metrics, err := reporter.GetPortfolioMetrics(r.Context(), window)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	}
}

func GetLatestMetrics(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		latest, err := reporter.GetLatestMetrics(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, latest)
	}
}

func GetAvailablePeriods(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		periods, err := reporter.GetAvailablePeriods(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, periods)
	}
}

// GetMetricCatalog lista as métricas explicáveis e as janelas pré-definidas
func GetMetricCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, narrating.GetCatalog())
	}
}
