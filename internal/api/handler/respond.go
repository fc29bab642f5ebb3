package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.L.WithError(err).Error("Erro ao serializar resposta")
	}
}

// writeServiceError converte os erros dos casos de uso no corpo padrão {code, message}
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var validationErr *domain.DataValidationError
	switch {
	case errors.Is(err, domain.ErrUnknownMetric):
		apiErrors.WriteError(w, apiErrors.ErrUnknownMetric, err.Error(), nil)
	case errors.As(err, &validationErr):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), map[string]any{"field": validationErr.Field})
	case errors.Is(err, domain.ErrEmptyDataset):
		apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, "Nenhuma métrica disponível para a consulta", nil)
	case errors.Is(err, reporting.ErrCustomerNotFound):
		apiErrors.WriteError(w, apiErrors.ErrCustomerNotFound, "Cliente não encontrado", nil)
	case errors.Is(err, domain.ErrNarrativeBackend):
		logger.Error("Erro no provedor de narrativas")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao gerar a narrativa", nil)
	default:
		logger.Error("Erro interno ao processar a requisição")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
	}
}
