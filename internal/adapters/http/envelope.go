package web

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"fringe/internal/application/listutil"
)

// envelope is the uniform JSON response shape for every endpoint.
type envelope struct {
	Success bool               `json:"success"`
	Data    any                `json:"data"`
	Error   string             `json:"error,omitempty"`
	Message string             `json:"message,omitempty"`
	Meta    *listutil.PageInfo `json:"meta,omitempty"`
}

// respondOK writes a success envelope.
func respondOK(w http.ResponseWriter, data any, message string) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

// respondCreated writes a success envelope with 201.
func respondCreated(w http.ResponseWriter, data any, message string) {
	respondJSON(w, http.StatusCreated, envelope{Success: true, Data: data, Message: message})
}

// respondList writes a success envelope with pagination metadata.
func respondList(w http.ResponseWriter, data any, meta listutil.PageInfo) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: data, Meta: &meta})
}

// respondError writes a failure envelope with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, envelope{Success: false, Error: msg, Message: msg})
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("internal error")
	respondError(w, http.StatusInternalServerError, "internal server error")
}

func respondJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("encode response failed")
	}
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
