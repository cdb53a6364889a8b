package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/daap14/crewdesk/internal/api/handler"
	"github.com/daap14/crewdesk/internal/api/middleware"
	"github.com/daap14/crewdesk/internal/api/response"
	"github.com/daap14/crewdesk/internal/project"
	"github.com/daap14/crewdesk/internal/teammate"
)

// Mount points of the two resource collections.
const (
	ProjectsPath  = "/Projects"
	TeammatesPath = "/Teammates"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Projects    project.Repository
	Teammates   teammate.Repository
	DBPinger    handler.DBPinger
	Driver      string
	Version     string
	OpenAPISpec []byte

	// CORSAllowedOrigins enables CORS for the listed origins; "*" allows any.
	CORSAllowedOrigins []string

	// Registry receives the HTTP metrics and backs /metrics. A private
	// registry is created when nil.
	Registry *prometheus.Registry
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) (*chi.Mux, error) {
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	r.Use(metrics.Handler)
	if len(deps.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{"Location", middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	// Set before mounting so the resource subrouters inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", middleware.GetRequestID(r.Context()))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Err(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", middleware.GetRequestID(r.Context()))
	})

	if deps.DBPinger != nil {
		healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Driver, deps.Version)
		r.Get("/health", healthHandler.ServeHTTP)
	}

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler, err := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		if err != nil {
			return nil, err
		}
		r.Get("/openapi.json", openapiHandler.ServeHTTP)
		r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/openapi.json")))
	}

	if deps.Projects != nil {
		projectHandler := handler.NewProjectHandler(deps.Projects)
		r.Route(ProjectsPath, func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)
			r.Get("/{id:[0-9]+}", projectHandler.GetByID)
			r.Put("/{id:[0-9]+}", projectHandler.Update)
			r.Delete("/{id:[0-9]+}", projectHandler.Delete)
		})
	}

	if deps.Teammates != nil {
		teammateHandler := handler.NewTeammateHandler(deps.Teammates, TeammatesPath)
		r.Route(TeammatesPath, func(r chi.Router) {
			r.Get("/", teammateHandler.List)
			r.Post("/", teammateHandler.Create)
			r.Get("/{id:[0-9]+}", teammateHandler.GetByID)
			r.Delete("/{id:[0-9]+}", teammateHandler.Delete)
		})
	}

	return r, nil
}
