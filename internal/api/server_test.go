package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/telemetry"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/authenticating"
	narratingmocks "github.com/vfg2006/saas-metrics-api/internal/usecases/narrating/mocks"
	reportingmocks "github.com/vfg2006/saas-metrics-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

type idleJob struct{}

func (idleJob) TriggerManualSync() bool   { return true }
func (idleJob) GetStatus() map[string]any { return map[string]any{"running": false} }

func newTestServer(t *testing.T) (*Server, *reportingmocks.MockReporter, authenticating.Authenticator, *telemetry.Collector) {
	t.Helper()

	ctrl := gomock.NewController(t)
	reporter := reportingmocks.NewMockReporter(ctrl)
	narrator := narratingmocks.NewMockNarrator(ctrl)

	cfg := &config.Config{
		Server: config.Server{Host: "localhost", Port: "0", AllowedOrigins: []string{"http://localhost:3000"}},
		Auth:   config.Auth{Secret: "segredo", TokenTTL: time.Hour},
	}
	auth := authenticating.NewService(cfg.Auth)
	collector := telemetry.NewCollector("test")

	srv, err := New(cfg, reporter, narrator, auth, idleJob{}, collector)
	require.NoError(t, err)

	return srv, reporter, auth, collector
}

func bearer(t *testing.T, auth authenticating.Authenticator, role string) string {
	t.Helper()
	token, err := auth.IssueToken("dashboard", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestServer_AuthenticationAndRoles(t *testing.T) {
	srv, reporter, auth, _ := newTestServer(t)

	reporter.EXPECT().GetPortfolioMetrics(gomock.Any(), 0).Return([]domain.MonthlyPortfolioMetrics{}, nil)

	tests := []struct {
		name           string
		method         string
		target         string
		authorization  string
		expectedStatus int
	}{
		{"Healthcheck sem token", http.MethodGet, "/healthcheck", "", http.StatusOK},
		{"Métricas sem token", http.MethodGet, "/v1/metrics", "", http.StatusUnauthorized},
		{"Viewer lê as métricas", http.MethodGet, "/v1/metrics", bearer(t, auth, domain.RoleViewer), http.StatusOK},
		{"Viewer não dispara o recálculo", http.MethodPost, "/v1/cron/metrics-rebuild/run", bearer(t, auth, domain.RoleViewer), http.StatusForbidden},
		{"Admin dispara o recálculo", http.MethodPost, "/v1/cron/metrics-rebuild/run", bearer(t, auth, domain.RoleAdmin), http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestServer_PrometheusEndpoint(t *testing.T) {
	srv, _, _, collector := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, float64(1), testutil.ToFloat64(collector.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/healthcheck", "200")))

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_http_requests_total")
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, nil, nil, nil, nil, nil)
	assert.Error(t, err)
}
