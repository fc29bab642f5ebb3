package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{code: ErrUnknownMetric, status: http.StatusBadRequest},
		{code: ErrEmptyDataset, status: http.StatusNotFound},
		{code: ErrExternalService, status: http.StatusBadGateway},
		{code: ErrAlreadyRunning, status: http.StatusConflict},
		{code: "XYZ_999", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, "mensagem", nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
			assert.Nil(t, body.Details)
		})
	}
}

func TestFromError(t *testing.T) {
	apiErr := FromError(errors.New("falhou"), ErrDatabaseOperation)
	assert.Equal(t, ErrDatabaseOperation, apiErr.Code)
	assert.Equal(t, "falhou", apiErr.Message)

	assert.Equal(t, ErrInternalServer, FromError(nil, ErrDatabaseOperation).Code)
}
