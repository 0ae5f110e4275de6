package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

// ShipmentsHandler handles shipment endpoints.
type ShipmentsHandler struct {
	DB *sql.DB
}

// Create handles POST /api/shipments.
func (h *ShipmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	shipment, err := store.CreateShipment(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, shipment)
}

// List handles GET /api/shipments.
func (h *ShipmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	shipments, err := store.ListShipments(r.Context(), h.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	if shipments == nil {
		shipments = []model.Shipment{}
	}
	jsonResponse(w, http.StatusOK, shipments)
}

// Get handles GET /api/shipments/{id}.
func (h *ShipmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	shipment, err := store.GetShipment(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		storeError(w, err)
		return
	}
	if shipment == nil {
		jsonError(w, http.StatusNotFound, "shipment_not_found", "shipment not found")
		return
	}
	jsonResponse(w, http.StatusOK, shipment)
}

type attachItemsRequest struct {
	Serials []string `json:"serials"`
}

type attachFailure struct {
	Serial  string `json:"serial"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// AttachItems handles POST /api/shipments/{id}/items. Each serial is
// attached in its own single-item transaction, in order. A failure partway
// through does not detach the items already attached; the response always
// lists both sets so the caller can see the true attached subset.
func (h *ShipmentsHandler) AttachItems(w http.ResponseWriter, r *http.Request) {
	shipmentID := r.PathValue("id")

	var req attachItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if len(req.Serials) == 0 {
		jsonError(w, http.StatusBadRequest, "bad_request", "serials required")
		return
	}

	shipment, err := store.GetShipment(r.Context(), h.DB, shipmentID)
	if err != nil {
		storeError(w, err)
		return
	}
	if shipment == nil {
		jsonError(w, http.StatusNotFound, "shipment_not_found", "shipment not found")
		return
	}

	var attached []model.Item
	var failed []attachFailure
	for _, serial := range req.Serials {
		item, err := store.AttachItem(r.Context(), h.DB, shipmentID, serial)
		if err != nil {
			failed = append(failed, describeAttachFailure(serial, err))
			continue
		}
		attached = append(attached, *item)
	}
	if attached == nil {
		attached = []model.Item{}
	}

	status := http.StatusOK
	if len(failed) > 0 {
		// Overall failure, but the attached items stay attached.
		status = http.StatusConflict
	}
	jsonResponse(w, status, map[string]any{
		"shipment_id": shipmentID,
		"attached":    attached,
		"failed":      failed,
	})
}

func describeAttachFailure(serial string, err error) attachFailure {
	f := attachFailure{Serial: serial, Message: err.Error()}

	var transition *store.InvalidTransitionError
	switch {
	case errors.As(err, &transition):
		f.Error = "invalid_transition"
		f.Status = string(transition.Status)
	case errors.Is(err, store.ErrNotFound):
		f.Error = "not_found"
	case errors.Is(err, store.ErrMissingShipment):
		f.Error = "missing_shipment"
	default:
		f.Error = "internal"
		f.Message = "internal error"
	}
	return f
}
