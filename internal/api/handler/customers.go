package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
)

// ListCustomers retorna os clientes; ?active=true filtra apenas os ativos no último mês
func ListCustomers(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := false
		if raw := r.URL.Query().Get("active"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "active deve ser true ou false", nil)
				return
			}
			activeOnly = parsed
		}

		customers, err := reporter.ListCustomers(r.Context(), activeOnly)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, customers)
	}
}

func GetCustomerTimeline(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		rows, err := reporter.GetCustomerTimeline(r.Context(), customerID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, rows)
	}
}

func GetCustomerEvents(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		events, err := reporter.GetCustomerEvents(r.Context(), customerID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, events)
	}
}
