package http

import (
	"net/http"

	"github.com/pxeeio/flex-api/internal/apperr"
	"github.com/pxeeio/flex-api/internal/utils"
)

// requireAuth rejects requests that reached this point without a resolved
// identity. It runs after resolveIdentity and only checks the context.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserFromContext(r.Context()); !ok {
			h.writeError(w, r, apperr.AuthenticationRequired())
			return
		}

		next.ServeHTTP(w, r)
	})
}
