package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/garderoba/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response with an error kind the client can
// branch on and a human-readable message.
func jsonError(w http.ResponseWriter, status int, kind, message string) {
	jsonResponse(w, status, map[string]string{"error": kind, "message": message})
}

// storeError maps registry/aggregator errors to HTTP responses. A rejected
// transition carries the authoritative current status so a racing operator
// can reconcile instead of retrying blindly.
func storeError(w http.ResponseWriter, err error) {
	var transition *store.InvalidTransitionError
	switch {
	case errors.As(err, &transition):
		jsonResponse(w, http.StatusConflict, map[string]string{
			"error":   "invalid_transition",
			"message": transition.Error(),
			"status":  string(transition.Status),
		})
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrMissingShipment):
		jsonError(w, http.StatusBadRequest, "missing_shipment", err.Error())
	case errors.Is(err, store.ErrUnknownAction):
		jsonError(w, http.StatusBadRequest, "unknown_action", err.Error())
	case errors.Is(err, store.ErrDuplicateSerial):
		jsonError(w, http.StatusConflict, "duplicate_serial", err.Error())
	case errors.Is(err, store.ErrCodeCollision):
		jsonError(w, http.StatusConflict, "code_collision", err.Error())
	default:
		slog.Error("request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
