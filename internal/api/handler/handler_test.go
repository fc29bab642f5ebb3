package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/internal/api/handler/router"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
)

// serve monta um router só com as rotas informadas, sem os middlewares de papel
func serve(t *testing.T, routes []router.Route, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	for i := range routes {
		routes[i].Middlewares = nil
	}
	rt := router.New(router.WithRoutes(routes...))

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func assertAPIError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rec.Code)

	var body apiErrors.APIError
	decode(t, rec, &body)
	assert.Equal(t, code, body.Code)
}
