package http

import (
	"net/http"

	"github.com/pxeeio/flex-api/models"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withRecovery)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.resolveIdentity)

	router.Route("/auth", func(r chi.Router) {
		// routes without authorization
		r.Post("/", h.login)
		r.Post("/register", h.register)
		r.Delete("/", h.logout)

		// routes behind the auth gate
		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)
			r.Get("/", h.currentUser)
		})
	})

	router.Get("/health", h.health)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, models.Envelope{
			Success: false,
			Message: "Not found.",
		})
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
