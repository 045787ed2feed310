package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/feedpulse/feedpulse"
	apimiddleware "github.com/feedpulse/feedpulse/infrastructure/api/middleware"
	v1 "github.com/feedpulse/feedpulse/infrastructure/api/v1"
)

// APIServer provides an HTTP API backed by a feedpulse Client.
type APIServer struct {
	client       *feedpulse.Client
	apiKeys      []string
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given feedpulse Client.
// apiKeys configures write-protection: mutating endpoints (POST, PUT, PATCH,
// DELETE) require a valid key. Read-only endpoints and health remain open.
func NewAPIServer(client *feedpulse.Client, apiKeys []string) *APIServer {
	return &APIServer{
		client:  client,
		apiKeys: apiKeys,
		logger:  client.Logger(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call
// MountRoutes(). If not called, ListenAndServe creates a default router
// with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all v1 API routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

// mountRoutes wires up all v1 API routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	recordsRouter := v1.NewRecordsRouter(c)
	scoringRouter := v1.NewScoringRouter(c)
	analyticsRouter := v1.NewAnalyticsRouter(c)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Use(apimiddleware.Logging(a.logger))

		// Open routes, read-only.
		r.Mount("/analytics", analyticsRouter.Routes())

		// Write-protected routes. Mutating methods require a valid API key.
		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.WriteProtectAuth(a.apiKeys))
			r.Mount("/records", recordsRouter.Routes())
			r.Mount("/scoring", scoringRouter.Routes())
		})
	})

	router.Get("/healthz", a.health)
}

// health reports process liveness and database connectivity.
func (a *APIServer) health(w http.ResponseWriter, r *http.Request) {
	dbOK := a.client.Ping(r.Context()) == nil

	status := "ok"
	code := http.StatusOK
	if !dbOK {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	apimiddleware.WriteJSON(w, code, map[string]any{
		"status": status,
		"db":     dbOK,
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	if a.routerCalled && a.router != nil {
		server.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(server.Router())
	}

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}
