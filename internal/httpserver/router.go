package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"appointment-planner-api/internal/config"
	"appointment-planner-api/internal/handler"
	"appointment-planner-api/internal/metrics"
	"appointment-planner-api/internal/middleware"
	"appointment-planner-api/internal/store"
)

// NewRouter wires all HTTP routes: public auth endpoints, the
// token-protected appointment and participant APIs, and the operational
// endpoints.
func NewRouter(cfg *config.Config, st *store.Store, h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.HealthCheck(ctx); err != nil {
			http.Error(w, "unready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsOn {
		r.Get("/metrics", metrics.Handler().ServeHTTP)
	}

	// auth endpoints: 5 requests per second, burst of 10
	authLimiter := middleware.NewRateLimiter(5, 10)
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/token/refresh", h.RefreshToken)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/list", h.ListAppointments)
			r.Post("/create", h.CreateAppointment)
			r.Get("/view/{id}", h.GetAppointment)
			r.Put("/update/{id}", h.UpdateAppointment)
			r.Delete("/delete/{id}", h.DeleteAppointment)
		})

		r.Route("/participants", func(r chi.Router) {
			r.Get("/list", h.ListParticipants)
			r.Post("/create", h.CreateParticipant)
			r.Get("/view/{id}", h.GetParticipant)
			r.Put("/update/{id}", h.UpdateParticipant)
			r.Delete("/delete/{id}", h.DeleteParticipant)
		})
	})

	return r
}
