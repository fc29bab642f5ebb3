package handler

import (
	"net/http"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/narrating"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

func decodeNarrativeRequest(w http.ResponseWriter, r *http.Request) (domain.NarrativeRequest, bool) {
	req := domain.NarrativeRequest{WindowMonths: narrating.DefaultWindowMonths}
	if r.Body == nil || r.ContentLength == 0 {
		return req, true
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
		return req, false
	}

	return req, true
}

// ExplainMetric gera a explicação de uma métrica na janela pedida
func ExplainMetric(narrator narrating.Narrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeNarrativeRequest(w, r)
		if !ok {
			return
		}

		if req.Column == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "column é obrigatório", nil)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"column": req.Column,
		}).Info("Gerando explicação da métrica")

		narrative, err := narrator.ExplainMetric(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, narrative)
	}
}

// SummarizeMetrics gera o resumo executivo da carteira na janela pedida
func SummarizeMetrics(narrator narrating.Narrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeNarrativeRequest(w, r)
		if !ok {
			return
		}

		narrative, err := narrator.Summarize(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, narrative)
	}
}
