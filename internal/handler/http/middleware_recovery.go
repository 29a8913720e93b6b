package http

import (
	"fmt"
	"net/http"

	"github.com/pxeeio/flex-api/internal/apperr"
)

// withRecovery converts a panicked handler into a uniform 500 envelope so a
// single broken request cannot take the process down.
func (h *Handler) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.writeError(w, r, apperr.Unexpected(fmt.Errorf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
