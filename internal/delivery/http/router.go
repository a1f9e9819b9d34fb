package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"conventions/internal/authz"
	"conventions/internal/delivery/http/controllers"
	"conventions/internal/delivery/http/middleware"
	"conventions/internal/domain"
	"conventions/internal/platform/metrics"

	_ "conventions/docs"
)

// RouterConfig carries everything NewRouter wires into the mux.
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string

	Venues      *controllers.VenueController
	Conventions *controllers.ConventionController
	Talks       *controllers.TalkController
	Users       *controllers.UserController
}

// NewRouter initializes the HTTP router with all application routes and wraps
// it in CORS, request id, access logging and metrics middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	authn := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	need := func(policy authz.Policy, h http.HandlerFunc) http.HandlerFunc {
		return authn(middleware.RequirePermission(policy)(h))
	}
	perm := func(p string, h http.HandlerFunc) http.HandlerFunc {
		return need(authz.Policy{p}, h)
	}

	// Venues
	mux.HandleFunc("POST /v1/venues", perm(authz.CreateVenues, cfg.Venues.CreateVenue))
	mux.HandleFunc("PUT /v1/venues/{venueId}", perm(authz.UpdateVenues, cfg.Venues.UpdateVenue))
	mux.HandleFunc("DELETE /v1/venues/{venueId}", perm(authz.DeleteVenues, cfg.Venues.DeleteVenue))
	mux.HandleFunc("GET /v1/venues/{venueId}", authn(cfg.Venues.GetVenue))
	mux.HandleFunc("GET /v1/venues", authn(cfg.Venues.ListVenues))

	// Conventions
	mux.HandleFunc("POST /v1/conventions", perm(authz.CreateConventions, cfg.Conventions.CreateConvention))
	mux.HandleFunc("PUT /v1/conventions/{conventionId}", perm(authz.UpdateConventions, cfg.Conventions.UpdateConvention))
	mux.HandleFunc("DELETE /v1/conventions/{conventionId}", perm(authz.DeleteConventions, cfg.Conventions.DeleteConvention))
	mux.HandleFunc("GET /v1/conventions/{conventionId}", authn(cfg.Conventions.GetConvention))
	mux.HandleFunc("GET /v1/conventions", authn(cfg.Conventions.ListConventions))
	mux.HandleFunc("POST /v1/conventions/{conventionId}/users/{userId}", authn(cfg.Conventions.JoinConvention))
	mux.HandleFunc("DELETE /v1/conventions/{conventionId}/users/{userId}", authn(cfg.Conventions.LeaveConvention))
	mux.HandleFunc("GET /v1/conventions/users/{userId}", authn(cfg.Conventions.ListConventionsForUser))

	// Talks
	mux.HandleFunc("POST /v1/talks", need(authz.CreateTalkPolicy, cfg.Talks.CreateTalk))
	mux.HandleFunc("PUT /v1/talks/{talkId}", authn(cfg.Talks.UpdateTalk))
	mux.HandleFunc("DELETE /v1/talks/{talkId}", authn(cfg.Talks.DeleteTalk))
	mux.HandleFunc("GET /v1/talks/{talkId}", authn(cfg.Talks.GetTalk))
	mux.HandleFunc("GET /v1/talks", authn(cfg.Talks.ListTalks))
	mux.HandleFunc("POST /v1/talks/{talkId}/users/{userId}", authn(cfg.Talks.JoinTalk))
	mux.HandleFunc("DELETE /v1/talks/{talkId}/users/{userId}", authn(cfg.Talks.LeaveTalk))
	mux.HandleFunc("GET /v1/talks/users/{userId}", authn(cfg.Talks.ListTalksForUser))

	// Users
	mux.HandleFunc("POST /v1/users", authn(cfg.Users.CreateUser))
	mux.HandleFunc("PUT /v1/users/{userId}", authn(cfg.Users.UpdateUser))
	mux.HandleFunc("DELETE /v1/users/{userId}", authn(cfg.Users.DeleteUser))
	mux.HandleFunc("GET /v1/users/{userId}", authn(cfg.Users.GetUser))
	mux.HandleFunc("GET /v1/users", perm(authz.ReadUsers, cfg.Users.ListUsers))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Metrics
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	var handler http.Handler = middleware.Metrics(cfg.Metrics, mux)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.RequestID(handler)
	return middleware.CORS(cfg.AllowedOrigins, handler)
}
