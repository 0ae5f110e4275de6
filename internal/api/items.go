package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/erazemk/garderoba/internal/imaging"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	SerialNumber string `json:"serial_number"`
	Size         string `json:"size"`
	Type         string `json:"type"`
	Color        string `json:"color"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := store.ListItemsOptions{
		Status:    model.Status(r.URL.Query().Get("status")),
		Available: r.URL.Query().Get("available") == "true",
	}
	if opts.Status != "" && !model.ValidStatus(opts.Status) {
		jsonError(w, http.StatusBadRequest, "invalid_status", "unknown status filter")
		return
	}
	opts.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	opts.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := store.ListItems(r.Context(), h.DB, opts)
	if err != nil {
		storeError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if !model.ValidSize(req.Size) {
		jsonError(w, http.StatusBadRequest, "invalid_size", "size must be one of XS, S, M, L, XL, XXL")
		return
	}
	if !model.ValidType(req.Type) {
		jsonError(w, http.StatusBadRequest, "invalid_type", "type must be one of buttoned, closed, hooded")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.SerialNumber, req.Size, req.Type, req.Color)
	if err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{serial}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	serial := r.PathValue("serial")

	item, err := store.GetItemBySerial(r.Context(), h.DB, serial)
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

// UploadImage handles PUT /api/items/{serial}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	serial := r.PathValue("serial")

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_request", "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "bad_request", "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "bad_image", err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, serial, photo.Data, photo.MIME); err != nil {
		storeError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{serial}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	serial := r.PathValue("serial")

	data, mime, err := store.GetItemImage(r.Context(), h.DB, serial)
	if err != nil {
		storeError(w, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no_image", "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
