package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/garderoba/internal/ident"
	"github.com/erazemk/garderoba/internal/model"
)

// CreateShipment allocates a new empty shipment with a freshly generated
// tracking code. A generated-code collision is statistically negligible and
// surfaced as ErrCodeCollision so the caller can retry.
func CreateShipment(ctx context.Context, db *sql.DB) (*model.Shipment, error) {
	code, err := ident.GenerateTrackingCode()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO shipments (id, tracking_code) VALUES (?, ?)`,
		id, code,
	)
	if isUniqueViolation(err, "shipments.tracking_code") {
		return nil, fmt.Errorf("%w: %s", ErrCodeCollision, code)
	}
	if err != nil {
		return nil, fmt.Errorf("creating shipment: %w", err)
	}

	return GetShipment(ctx, db, id)
}

// GetShipment returns a shipment with its derived item set, or nil if it
// doesn't exist.
func GetShipment(ctx context.Context, db *sql.DB, id string) (*model.Shipment, error) {
	shipment := &model.Shipment{}
	err := db.QueryRowContext(ctx,
		`SELECT id, tracking_code, created_at FROM shipments WHERE id = ?`, id,
	).Scan(&shipment.ID, &shipment.TrackingCode, &shipment.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting shipment: %w", err)
	}

	items, err := shipmentItems(ctx, db, id)
	if err != nil {
		return nil, err
	}
	shipment.Items = items
	return shipment, nil
}

// ListShipments returns all shipments, newest first, each with its derived
// item set. An empty shipment has an empty (non-nil) set.
func ListShipments(ctx context.Context, db *sql.DB) ([]model.Shipment, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, tracking_code, created_at FROM shipments ORDER BY created_at DESC, tracking_code`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shipments: %w", err)
	}
	defer rows.Close()

	var shipments []model.Shipment
	for rows.Next() {
		var s model.Shipment
		if err := rows.Scan(&s.ID, &s.TrackingCode, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning shipment: %w", err)
		}
		shipments = append(shipments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range shipments {
		items, err := shipmentItems(ctx, db, shipments[i].ID)
		if err != nil {
			return nil, err
		}
		shipments[i].Items = items
	}
	return shipments, nil
}

// AttachItem binds a previously unassigned in-stock item to a shipment by
// applying the ship transition. It is one independent single-item
// transaction; attaching many items is a sequence of these, so a failure
// partway through a batch leaves the already-attached items attached.
func AttachItem(ctx context.Context, db *sql.DB, shipmentID, serial string) (*model.Item, error) {
	return ApplyScan(ctx, db, serial, string(model.ActionShip), shipmentID)
}

func shipmentItems(ctx context.Context, db *sql.DB, shipmentID string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+`
		 FROM items i LEFT JOIN shipments s ON s.id = i.shipment_id
		 WHERE i.shipment_id = ?
		 ORDER BY i.serial_number`, shipmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shipment items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}
