package handler

import (
	"net/http"

	"github.com/vfg2006/saas-metrics-api/internal/api/handler/router"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/narrating"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Telemetry expõe as métricas no formato Prometheus
func Telemetry(metricsHandler http.Handler) []router.Route {
	if metricsHandler == nil {
		return nil
	}

	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metricsHandler,
		},
	}
}

func Metrics(reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/metrics",
			Method:      http.MethodGet,
			Handler:     GetPortfolioMetrics(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/metrics/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestMetrics(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/metrics/periods",
			Method:      http.MethodGet,
			Handler:     GetAvailablePeriods(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/metrics/catalog",
			Method:      http.MethodGet,
			Handler:     GetMetricCatalog(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Narratives(narrator narrating.Narrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/metrics/explain",
			Method:      http.MethodPost,
			Handler:     ExplainMetric(narrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/metrics/summary",
			Method:      http.MethodPost,
			Handler:     SummarizeMetrics(narrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Customers(reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/customers",
			Method:      http.MethodGet,
			Handler:     ListCustomers(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers/:id/timeline",
			Method:      http.MethodGet,
			Handler:     GetCustomerTimeline(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers/:id/events",
			Method:      http.MethodGet,
			Handler:     GetCustomerEvents(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
