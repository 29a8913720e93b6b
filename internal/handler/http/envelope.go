package http

import (
	"encoding/json"
	"net/http"

	"github.com/pxeeio/flex-api/models"
)

// writeEnvelope serializes the envelope to JSON and writes it with the given
// status code. It is pure formatting: the caller decides which status
// applies.
func writeEnvelope(w http.ResponseWriter, statusCode int, envelope models.Envelope) {
	body, err := json.Marshal(envelope)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// writeData writes a success envelope carrying data and an optional message.
// statusCode should be one of 200, 201, 204.
func writeData(w http.ResponseWriter, statusCode int, data any, message string) {
	writeEnvelope(w, statusCode, models.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}
