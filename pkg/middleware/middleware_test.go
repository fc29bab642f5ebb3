package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/authenticating"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const testSecret = "segredo-de-teste"

func newAuthenticator(ttl time.Duration) authenticating.Authenticator {
	return authenticating.NewService(config.Auth{Secret: testSecret, TokenTTL: ttl})
}

func issue(t *testing.T, auth authenticating.Authenticator, role string) string {
	t.Helper()
	token, err := auth.IssueToken("analista@empresa.com", role)
	require.NoError(t, err)
	return token
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// okHandler responde 200 e devolve o papel das claims no header
func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			w.Header().Set("X-Role", claims.Role)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	auth := newAuthenticator(time.Hour)
	expired := newAuthenticator(-time.Hour)

	tests := []struct {
		name         string
		method       string
		path         string
		header       string
		expectedCode int
		expectedErr  string
		expectedRole string
	}{
		{
			name:         "Healthcheck é público",
			method:       http.MethodGet,
			path:         "/healthcheck",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Métricas Prometheus são públicas",
			method:       http.MethodGet,
			path:         "/metrics",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Preflight não exige token",
			method:       http.MethodOptions,
			path:         "/v1/metrics",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Sem header de autorização",
			method:       http.MethodGet,
			path:         "/v1/metrics",
			expectedCode: http.StatusUnauthorized,
			expectedErr:  apiErrors.ErrInvalidToken,
		},
		{
			name:         "Header sem Bearer",
			method:       http.MethodGet,
			path:         "/v1/metrics",
			header:       "Token abc",
			expectedCode: http.StatusUnauthorized,
			expectedErr:  apiErrors.ErrInvalidToken,
		},
		{
			name:         "Token malformado",
			method:       http.MethodGet,
			path:         "/v1/metrics",
			header:       "Bearer abc.def.ghi",
			expectedCode: http.StatusUnauthorized,
			expectedErr:  apiErrors.ErrInvalidToken,
		},
		{
			name:         "Token expirado",
			method:       http.MethodGet,
			path:         "/v1/metrics",
			header:       "Bearer " + issue(t, expired, domain.RoleViewer),
			expectedCode: http.StatusUnauthorized,
			expectedErr:  apiErrors.ErrExpiredToken,
		},
		{
			name:         "Token válido grava as claims no contexto",
			method:       http.MethodGet,
			path:         "/v1/metrics",
			header:       "Bearer " + issue(t, auth, domain.RoleViewer),
			expectedCode: http.StatusOK,
			expectedRole: domain.RoleViewer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(auth)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeAPIError(t, rec).Code)
			}
			assert.Equal(t, tt.expectedRole, rec.Header().Get("X-Role"))
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	auth := newAuthenticator(time.Hour)

	tests := []struct {
		name         string
		middleware   func(http.Handler) http.Handler
		role         string
		expectedCode int
		expectedErr  string
	}{
		{"Admin acessa rota administrativa", AdminOnly(), domain.RoleAdmin, http.StatusOK, ""},
		{"Viewer bloqueado em rota administrativa", AdminOnly(), domain.RoleViewer, http.StatusForbidden, apiErrors.ErrInsufficientPrivilege},
		{"Viewer acessa rota comum", AllRoles(), domain.RoleViewer, http.StatusOK, ""},
		{"Admin acessa rota comum", AllRoles(), domain.RoleAdmin, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
			req.Header.Set("Authorization", "Bearer "+issue(t, auth, tt.role))
			rec := httptest.NewRecorder()

			AuthMiddleware(auth)(tt.middleware(okHandler())).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, decodeAPIError(t, rec).Code)
			}
		})
	}

	t.Run("Sem claims no contexto", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AllRoles()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/metrics", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidToken, decodeAPIError(t, rec).Code)
	})
}

func TestCors(t *testing.T) {
	t.Run("Origem permitida recebe os headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/metrics", nil)
		req.Header.Set("Origin", "http://localhost:8501")
		rec := httptest.NewRecorder()

		Cors([]string{"http://localhost:3000", "http://localhost:8501"})(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:8501", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Origem desconhecida não recebe headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/metrics", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		Cors([]string{"http://localhost:3000"})(okHandler()).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Curinga libera qualquer origem", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/metrics", nil)
		req.Header.Set("Origin", "https://dash.example.com")
		rec := httptest.NewRecorder()

		Cors([]string{"*"})(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, "https://dash.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight responde sem chamar o handler", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		req := httptest.NewRequest(http.MethodOptions, "/v1/metrics/explain", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		Cors([]string{"http://localhost:3000"})(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
	})
}

func TestLoggingMiddleware_SetsCorrelationHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	LoggingMiddleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
}

func TestLoggingMiddleware_ReusesIncomingCorrelationID(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/metrics", nil)
	req.Header.Set(CorrelationIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	LoggingMiddleware()(handler).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(CorrelationIDHeader))
	assert.Equal(t, "abc-123", seen)
}

func TestLoggingMiddleware_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  logrus.Level
	}{
		{name: "Sucesso", status: http.StatusOK, level: logrus.InfoLevel},
		{name: "Erro do cliente", status: http.StatusNotFound, level: logrus.WarnLevel},
		{name: "Erro do servidor", status: http.StatusBadGateway, level: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := logtest.NewGlobal()
			defer hook.Reset()

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			LoggingMiddleware()(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/customers", nil))

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.status, entry.Data["status_code"])
			assert.Equal(t, "/v1/customers", entry.Data["path"])
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	})

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		LogPanicMiddleware()(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/metrics", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, decodeAPIError(t, rec).Code)
}
