package domain

import (
	"errors"
	"fmt"
)

// Erros de validação dos dados de entrada
var (
	ErrDataValidation    = errors.New("data validation error")
	ErrMissingCustomerID = errors.New("customer id is required")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidAmount     = errors.New("invalid mrr amount")
	ErrNegativeMRR       = errors.New("mrr amount must not be negative")
	ErrEndBeforeStart    = errors.New("end date is before start date")
	ErrUnknownMetric     = errors.New("unknown metric column")
)

// ErrNarrativeBackend indica falha no provedor que gera as narrativas
var ErrNarrativeBackend = errors.New("narrative backend failure")

// ErrEmptyDataset indica uma consulta de valor único sem dados para consultar
var ErrEmptyDataset = errors.New("empty dataset")

// DataValidationError é um erro de validação com o contexto do registro inválido
type DataValidationError struct {
	Err        error  // Erro base
	Field      string // Campo inválido
	CustomerID string // Cliente do registro (quando conhecido)
	Row        int    // Posição do registro na entrada, começando em 1 (0 = desconhecida)
	Details    string // Detalhes adicionais
}

func (e *DataValidationError) Error() string {
	msg := e.Err.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	return msg
}

func (e *DataValidationError) Unwrap() error {
	return e.Err
}

// Is permite errors.Is(err, ErrDataValidation) para qualquer erro de validação
func (e *DataValidationError) Is(target error) bool {
	return target == ErrDataValidation
}

// NewDataValidationError cria um novo DataValidationError
func NewDataValidationError(err error, field string, row int, customerID string, details string) *DataValidationError {
	return &DataValidationError{
		Err:        err,
		Field:      field,
		CustomerID: customerID,
		Row:        row,
		Details:    details,
	}
}

// EmptyDatasetError é retornado quando uma consulta de valor único não tem dados
type EmptyDatasetError struct {
	Lookup string
}

func (e *EmptyDatasetError) Error() string {
	if e.Lookup == "" {
		return ErrEmptyDataset.Error()
	}
	return fmt.Sprintf("%s: nothing to look up for %s", ErrEmptyDataset, e.Lookup)
}

func (e *EmptyDatasetError) Is(target error) bool {
	return target == ErrEmptyDataset
}

func NewEmptyDatasetError(lookup string) *EmptyDatasetError {
	return &EmptyDatasetError{Lookup: lookup}
}
