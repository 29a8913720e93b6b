package http

import (
	"errors"
	"net/http"

	"github.com/pxeeio/flex-api/internal/logger"
	"github.com/pxeeio/flex-api/internal/service"
	"github.com/pxeeio/flex-api/internal/utils"
)

// resolveIdentity attaches the authenticated user to the request context when
// a valid session cookie is present. Resolution never fails the request:
// a missing, malformed, or expired cookie simply leaves the request anonymous,
// and enforcement is left to requireAuth on the routes that want it.
func (h *Handler) resolveIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.auth.SessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.services.AuthService.ResolveCookie(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, service.ErrSessionInvalid) {
				logger.FromRequest(r).Err(err).Msg("error resolving session cookie")
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
	})
}
