package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/garderoba/internal/ident"
	"github.com/erazemk/garderoba/internal/model"
)

// CreateItem registers a new garment unit. If serial is empty a fresh one is
// generated. New items start in stock with no shipment.
func CreateItem(ctx context.Context, db *sql.DB, serial, size, typ, color string) (*model.Item, error) {
	if !model.ValidSize(size) {
		return nil, fmt.Errorf("invalid size %q", size)
	}
	if !model.ValidType(typ) {
		return nil, fmt.Errorf("invalid type %q", typ)
	}

	if serial == "" {
		var err error
		serial, err = ident.GenerateSerial()
		if err != nil {
			return nil, err
		}
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, serial_number, size, type, color) VALUES (?, ?, ?, ?, ?)`,
		id, serial, size, typ, color,
	)
	if isUniqueViolation(err, "items.serial_number") {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSerial, serial)
	}
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

const itemColumns = `i.id, i.serial_number, i.size, i.type, i.color, i.status,
       i.shipment_id, i.image_mime, i.created_at, i.updated_at, s.tracking_code`

// GetItem returns an item by ID, or nil if it doesn't exist.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+`
		 FROM items i LEFT JOIN shipments s ON s.id = i.shipment_id
		 WHERE i.id = ?`, id,
	)
	return scanItem(row)
}

// GetItemBySerial returns an item by serial number, or nil if it doesn't
// exist. The serial is used verbatim as the lookup key; a decoded QR payload
// needs no further parsing.
func GetItemBySerial(ctx context.Context, db *sql.DB, serial string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+`
		 FROM items i LEFT JOIN shipments s ON s.id = i.shipment_id
		 WHERE i.serial_number = ?`, serial,
	)
	return scanItem(row)
}

// ListItemsOptions filters ListItems. Zero values mean no filter and no
// paging limit.
type ListItemsOptions struct {
	Status    model.Status
	Available bool // in stock and not bound to any shipment
	Limit     int
	Offset    int
}

// ListItems returns items, newest first, with each item's tracking code
// resolved where bound.
func ListItems(ctx context.Context, db *sql.DB, opts ListItemsOptions) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + `
	          FROM items i LEFT JOIN shipments s ON s.id = i.shipment_id
	          WHERE 1=1`
	var args []any

	if opts.Status != "" {
		query += ` AND i.status = ?`
		args = append(args, opts.Status)
	}
	if opts.Available {
		query += ` AND i.status = ? AND i.shipment_id IS NULL`
		args = append(args, model.StatusInStock)
	}

	query += ` ORDER BY i.created_at DESC, i.serial_number`

	if opts.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ApplyScan resolves a decoded serial and a requested action to a status
// transition and applies it. On success the updated item is returned; view
// returns the current item without mutating anything.
//
// The mutation is a single-row serialized transaction: the status write is a
// compare-and-swap against the status read earlier in the transaction, so of
// two racing transitions on the same serial exactly one wins and the loser
// gets an InvalidTransitionError carrying the authoritative status.
func ApplyScan(ctx context.Context, db *sql.DB, serial, action, shipmentID string) (*model.Item, error) {
	act, ok := model.ParseAction(action)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if act == model.ActionView {
		item, err := GetItemBySerial(ctx, db, serial)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, serial)
		}
		return item, nil
	}

	if act == model.ActionShip && shipmentID == "" {
		return nil, ErrMissingShipment
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	var current model.Status
	err = tx.QueryRowContext(ctx,
		`SELECT id, status FROM items WHERE serial_number = ?`, serial,
	).Scan(&id, &current)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, serial)
	}
	if err != nil {
		return nil, fmt.Errorf("reading item status: %w", err)
	}

	if act == model.ActionShip {
		var one int
		err = tx.QueryRowContext(ctx,
			`SELECT 1 FROM shipments WHERE id = ?`, shipmentID,
		).Scan(&one)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: shipment %s does not exist", ErrMissingShipment, shipmentID)
		}
		if err != nil {
			return nil, fmt.Errorf("checking shipment: %w", err)
		}
	}

	next, legal := model.Transition(current, act)
	if !legal {
		return nil, &InvalidTransitionError{Serial: serial, Action: act, Status: current}
	}

	var result sql.Result
	if act == model.ActionShip {
		// shipment_id is set here and never cleared afterwards.
		result, err = tx.ExecContext(ctx,
			`UPDATE items SET status = ?, shipment_id = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND status = ?`,
			next, shipmentID, id, current,
		)
	} else {
		result, err = tx.ExecContext(ctx,
			`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND status = ?`,
			next, id, current,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("applying transition: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("applying transition: %w", err)
	}
	if affected == 0 {
		// A concurrent transition committed first; report the new status.
		var latest model.Status
		if err := tx.QueryRowContext(ctx,
			`SELECT status FROM items WHERE id = ?`, id,
		).Scan(&latest); err != nil {
			return nil, fmt.Errorf("re-reading item status: %w", err)
		}
		return nil, &InvalidTransitionError{Serial: serial, Action: act, Status: latest}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transition: %w", err)
	}

	return GetItem(ctx, db, id)
}

// SetItemImage stores a garment photo for the item with the given serial.
func SetItemImage(ctx context.Context, db *sql.DB, serial string, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE serial_number = ?`,
		image, mime, serial,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, serial)
	}
	return nil
}

// GetItemImage returns the item's photo data and MIME type, or nil data if
// no photo has been uploaded.
func GetItemImage(ctx context.Context, db *sql.DB, serial string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE serial_number = ?`, serial,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, serial)
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItemInto(item *model.Item, s rowScanner) error {
	var color, imageMime, trackingCode sql.NullString
	var shipmentID sql.NullString
	err := s.Scan(&item.ID, &item.SerialNumber, &item.Size, &item.Type, &color,
		&item.Status, &shipmentID, &imageMime, &item.CreatedAt, &item.UpdatedAt,
		&trackingCode)
	if err != nil {
		return err
	}
	item.Color = color.String
	item.ImageMime = imageMime.String
	item.TrackingCode = trackingCode.String
	if shipmentID.Valid {
		item.ShipmentID = &shipmentID.String
	}
	return nil
}

func scanItem(row *sql.Row) (*model.Item, error) {
	item := &model.Item{}
	err := scanItemInto(item, row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := scanItemInto(&item, rows); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
