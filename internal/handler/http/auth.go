package http

import (
	"encoding/json"
	"net/http"

	"github.com/pxeeio/flex-api/internal/apperr"
	"github.com/pxeeio/flex-api/internal/logger"
	"github.com/pxeeio/flex-api/internal/utils"
	"github.com/pxeeio/flex-api/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeEnvelope(w, http.StatusBadRequest, models.Envelope{
			Success: false,
			Message: "Invalid JSON was passed.",
		})
		return
	}

	registeredUser, session, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, session)
	writeData(w, http.StatusCreated, registeredUser.Resource(), "")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeEnvelope(w, http.StatusBadRequest, models.Envelope{
			Success: false,
			Message: "Invalid JSON was passed.",
		})
		return
	}

	foundUser, session, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, session)
	writeData(w, http.StatusOK, foundUser.Resource(), "")
}

// logout destroys the caller's session record unconditionally and clears the
// cookie. An anonymous caller still receives a success envelope: destroying
// nothing is a successful logout.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cookieValue string
	if cookie, err := r.Cookie(h.auth.SessionCookieName); err == nil {
		cookieValue = cookie.Value
	}

	if err := h.services.AuthService.Logout(ctx, cookieValue); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	writeData(w, http.StatusOK, nil, "Successfully logged out.")
}

// currentUser returns the resource of the identity resolved for this
// request. The route sits behind the auth gate, so the identity is present.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.writeError(w, r, apperr.AuthenticationRequired())
		return
	}

	writeData(w, http.StatusOK, user.Resource(), "")
}

// setSessionCookie delivers the signed session id to the client in an
// HTTP-only cookie. Max-Age derives from the session expiry so cookie and
// record age out together.
func (h *Handler) setSessionCookie(w http.ResponseWriter, session models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.auth.SessionCookieName,
		Value:    h.services.AuthService.CookieValue(session),
		Path:     "/",
		MaxAge:   int(h.auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
