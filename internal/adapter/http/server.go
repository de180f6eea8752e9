// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"petcare/internal/app"
	"petcare/internal/metrics"
)

// Services bundles the application services the server routes to.
type Services struct {
	Auth          *app.AuthService
	Profile       *app.ProfileService
	Pets          *app.PetService
	Vaccines      *app.VaccineService
	Notifications *app.NotificationService
	Dashboard     *app.DashboardService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	Services

	log     *zap.Logger
	metrics *metrics.Metrics
	limiter *RateLimiter
	sso     *SSO
	webDir  string
}

// Option customizes a Server.
type Option func(*Server)

// WithSSO enables the OIDC login routes.
func WithSSO(sso *SSO) Option {
	return func(s *Server) { s.sso = sso }
}

// WithRateLimiter throttles the /api/auth routes per client IP.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) { s.limiter = rl }
}

// New creates a Server wired to the given application services.
func New(log *zap.Logger, m *metrics.Metrics, svc Services, webDir string, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	s := &Server{Services: svc, log: log, metrics: m, webDir: webDir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, s.loggingMiddleware, s.metricsMiddleware, withNoCache)

	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})
		r.Get("/config", s.handleConfig)
		r.Post("/validate/password", s.handleValidatePassword)
		r.Post("/validate/cpf", s.handleValidateCPF)

		r.Route("/auth", func(r chi.Router) {
			if s.limiter != nil {
				r.Use(s.limiter.Middleware)
			}
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Get("/sso/login", s.handleSSOLogin)
			r.Get("/sso/callback", s.handleSSOCallback)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile", s.handleUpdateProfile)
			r.Delete("/profile", s.handleDeleteAccount)
			r.Put("/profile/password", s.handleChangePassword)

			r.Get("/pets", s.handleListPets)
			r.Post("/pets", s.handleCreatePet)
			r.Get("/pets/{id}", s.handleGetPet)
			r.Put("/pets/{id}", s.handleUpdatePet)
			r.Delete("/pets/{id}", s.handleDeletePet)

			r.Get("/vaccines", s.handleListVaccines)
			r.Post("/vaccines", s.handleCreateVaccine)
			r.Get("/vaccines/upcoming", s.handleUpcomingVaccines)
			r.Get("/vaccines/stats", s.handleVaccineStats)
			r.Get("/vaccines/{id}", s.handleGetVaccine)
			r.Put("/vaccines/{id}", s.handleUpdateVaccine)
			r.Delete("/vaccines/{id}", s.handleDeleteVaccine)

			r.Get("/notifications", s.handleListNotifications)
			r.Post("/notifications/read-all", s.handleMarkAllRead)
			r.Post("/notifications/{id}/read", s.handleMarkRead)
			r.Delete("/notifications/{id}", s.handleDeleteNotification)

			r.Get("/dashboard", s.handleDashboard)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
		})
	})

	r.Handle("/*", spaFromDisk(s.webDir))
	return r
}
