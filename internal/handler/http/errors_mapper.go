package http

import (
	"net/http"
	"runtime/debug"

	"github.com/pxeeio/flex-api/internal/apperr"
	"github.com/pxeeio/flex-api/internal/logger"
	"github.com/pxeeio/flex-api/models"
)

// statusFromKind maps every failure kind to its HTTP status code. The switch
// is exhaustive over the closed [apperr.Kind] set; adding a kind without
// extending it is a compile-visible omission at review, not a silent runtime
// fallthrough.
func statusFromKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindAuthenticationRequired:
		return http.StatusUnauthorized
	case apperr.KindInvalidCredentials:
		return http.StatusUnauthorized
	case apperr.KindAccessDenied:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnexpected:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// writeError is the single boundary where failures become HTTP responses.
//
// It normalises err into an *apperr.Error, logs the full detail server-side,
// and writes the policy-permitted portion to the client: message and field
// errors always, the internal error name and stack only outside production.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	appErr := apperr.From(err)

	if appErr.Kind == apperr.KindUnexpected {
		log.Err(err).Msg("unexpected error reached the response boundary")
	} else {
		log.Error().Err(err).Stringer("kind", appErr.Kind).Msg("request failed")
	}

	envelope := models.Envelope{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	}

	if !h.isProduction {
		envelope.DebugError = appErr.Kind.String()
		if appErr.Kind == apperr.KindUnexpected {
			envelope.DebugStack = string(debug.Stack())
		}
	}

	writeEnvelope(w, statusFromKind(appErr.Kind), envelope)
}
