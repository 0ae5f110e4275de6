package api

import (
	"database/sql"
	"errors"
	"net/http"
	"sync"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/scan"
)

// ScanHandler handles scan endpoints. It keeps one scan session per station
// so each operator's debounce state is independent.
type ScanHandler struct {
	dispatcher *scan.Dispatcher

	mu       sync.Mutex
	sessions map[string]*scan.Session
}

// NewScanHandler creates a scan handler backed by the given database.
func NewScanHandler(db *sql.DB) *ScanHandler {
	return &ScanHandler{
		dispatcher: &scan.Dispatcher{DB: db},
		sessions:   make(map[string]*scan.Session),
	}
}

func (h *ScanHandler) session(station string) *scan.Session {
	if station == "" {
		station = "default"
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[station]
	if !ok {
		s = scan.NewSession()
		h.sessions[station] = s
	}
	return s
}

type scanRequest struct {
	Action     string `json:"action"`
	Serial     string `json:"serial"`
	ShipmentID string `json:"shipment_id"`
	Station    string `json:"station"`
}

// Verify handles GET /api/scan/{serial}: look up the item for a decoded
// serial without mutating anything. An unregistered code is a distinct
// "unknown item" result, not a generic error.
func (h *ScanHandler) Verify(w http.ResponseWriter, r *http.Request) {
	item, err := h.dispatcher.Verify(r.Context(), r.PathValue("serial"))
	if err != nil {
		storeError(w, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Act handles POST /api/scan: apply an explicit action for a decoded serial.
func (h *ScanHandler) Act(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if req.Serial == "" {
		jsonError(w, http.StatusBadRequest, "bad_request", "serial required")
		return
	}

	// View is a plain read and bypasses the debounce.
	if req.Action == string(model.ActionView) {
		item, err := h.dispatcher.Verify(r.Context(), req.Serial)
		if err != nil {
			storeError(w, err)
			return
		}
		if item == nil {
			jsonError(w, http.StatusNotFound, "not_found", "item not found")
			return
		}
		jsonResponse(w, http.StatusOK, item)
		return
	}

	session := h.session(req.Station)
	item, err := h.dispatcher.Act(r.Context(), session, req.Serial, req.Action, req.ShipmentID)
	if errors.Is(err, scan.ErrDebounced) {
		jsonResponse(w, http.StatusAccepted, map[string]any{"suppressed": true})
		return
	}
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

type scanNextRequest struct {
	Station string `json:"station"`
}

// Next handles POST /api/scan/next: the operator explicitly requests the
// next scan, clearing the station's debounce key.
func (h *ScanHandler) Next(w http.ResponseWriter, r *http.Request) {
	var req scanNextRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	h.session(req.Station).Reset()
	jsonResponse(w, http.StatusOK, map[string]string{"message": "ready for next scan"})
}
