package router

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}

	// WithObserver registra a latência e o status de cada rota usando o caminho declarado
	WithObserver = func(observer Observer) ConfigRouter {
		return func(router *Router) {
			router.observer = observer
		}
	}
)

// Observer recebe as medições das requisições atendidas
type Observer interface {
	ObserveHTTP(method, path string, statusCode int, duration time.Duration)
}

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // Lista de middlewares específicos para esta rota
}

type Router struct {
	router   *httprouter.Router
	observer Observer
	routes   []Route
}

type ConfigRouter func(router *Router)

func New(configs ...ConfigRouter) Router {
	router := &Router{
		router: httprouter.New(),
	}

	for _, config := range configs {
		config(router)
	}

	// As rotas só são registradas depois de todas as opções, assim a ordem de WithObserver não importa
	for _, route := range router.routes {
		router.register(route)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes enfileira rotas para registro com seus middlewares específicos
func (r *Router) AddRoutes(routes ...Route) {
	r.routes = append(r.routes, routes...)
}

func (r *Router) register(route Route) {
	var handler http.Handler = route.Handler

	// Aplicar middlewares específicos da rota, do último para o primeiro
	for i := len(route.Middlewares) - 1; i >= 0; i-- {
		middleware := route.Middlewares[i]
		handler = middleware(handler)
	}

	if r.observer != nil {
		handler = instrument(r.observer, route, handler)
	}

	r.router.Handler(route.Method, route.Path, handler)
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.statusCode = code
	s.ResponseWriter.WriteHeader(code)
}

func instrument(observer Observer, route Route, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(recorder, req)

		observer.ObserveHTTP(route.Method, route.Path, recorder.statusCode, time.Since(start))
	})
}
