package middleware

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

// CorrelationIDHeader devolve ao cliente o ID usado nos logs da requisição.
// Um valor enviado pelo cliente é reaproveitado.
const CorrelationIDHeader = "X-Correlation-ID"

// slowRequestThreshold marca requisições lentas no log de finalização
const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware registra o início e o fim de cada requisição HTTP
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := correlationContext(r)
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			startTime := time.Now()

			log.ForContext(ctx).WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"query":       r.URL.RawQuery,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.UserAgent(),
			}).Debug("Requisição iniciada")

			next.ServeHTTP(sw, r)

			duration := time.Since(startTime)
			fields := log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": sw.statusCode,
				"duration_ms": duration.Milliseconds(),
			}
			if duration > slowRequestThreshold {
				fields["slow"] = true
			}

			logger := log.ForContext(ctx).WithFields(fields)
			switch {
			case sw.statusCode >= http.StatusInternalServerError:
				logger.Error("Requisição finalizada com erro")
			case sw.statusCode >= http.StatusBadRequest:
				logger.Warn("Requisição finalizada com aviso")
			default:
				logger.Info("Requisição finalizada")
			}
		})
	}
}

func correlationContext(r *http.Request) (context.Context, string) {
	if incoming := r.Header.Get(CorrelationIDHeader); incoming != "" {
		return context.WithValue(r.Context(), log.CorrelationIDKey, incoming), incoming
	}
	return log.WithCorrelationID(r.Context())
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.statusCode = code
	sw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware recupera panics dos handlers e responde 500
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]

					log.ForContext(r.Context()).WithFields(log.Fields{
						"error":       recovered,
						"method":      r.Method,
						"path":        r.URL.Path,
						"stack_trace": string(stack),
					}).Error("Erro não tratado na aplicação")

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
