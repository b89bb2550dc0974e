package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"appointment-booking-api/internal/middleware"
)

// Routes wires the full HTTP surface. Auth endpoints are rate limited per
// IP; everything under /appointments except the doctor listing requires a
// valid bearer token.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.Recoverer,
		chimw.StripSlashes,
		middleware.Metrics,
	)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(h.authLimiter))
			r.Post("/signup", h.Signup)
			r.Post("/signin", h.Signin)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/doctors", h.ListDoctors)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(h.log, h.tokens, h.store))
				r.Post("/", h.CreateAppointment)
				r.Get("/", h.ListAppointments)
				r.Put("/{id}", h.UpdateAppointment)
				r.Delete("/{id}", h.CancelAppointment)
			})
		})
	})

	return r
}
