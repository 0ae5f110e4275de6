package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{DB: db}
	shipmentsHandler := &ShipmentsHandler{DB: db}
	scanHandler := NewScanHandler(db)

	// Items.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{serial}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{serial}/image", itemsHandler.UploadImage)
	mux.HandleFunc("GET /api/items/{serial}/image", itemsHandler.GetImage)

	// Shipments.
	mux.HandleFunc("GET /api/shipments", shipmentsHandler.List)
	mux.HandleFunc("POST /api/shipments", shipmentsHandler.Create)
	mux.HandleFunc("GET /api/shipments/{id}", shipmentsHandler.Get)
	mux.HandleFunc("POST /api/shipments/{id}/items", shipmentsHandler.AttachItems)

	// Scanning.
	mux.HandleFunc("POST /api/scan", scanHandler.Act)
	mux.HandleFunc("GET /api/scan/{serial}", scanHandler.Verify)
	mux.HandleFunc("POST /api/scan/next", scanHandler.Next)

	return mux
}
