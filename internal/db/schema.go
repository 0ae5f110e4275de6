package db

// schema is the full database schema. Items reference shipments with a weak
// back reference only; a shipment's item set is always derived by query.
const schema = `
CREATE TABLE IF NOT EXISTS shipments (
    id            TEXT PRIMARY KEY,
    tracking_code TEXT NOT NULL UNIQUE,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id            TEXT PRIMARY KEY,
    serial_number TEXT NOT NULL UNIQUE,
    size          TEXT NOT NULL CHECK (size IN ('XS', 'S', 'M', 'L', 'XL', 'XXL')),
    type          TEXT NOT NULL CHECK (type IN ('buttoned', 'closed', 'hooded')),
    color         TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL DEFAULT 'in_stock'
                  CHECK (status IN ('in_stock', 'shipped', 'accepted', 'damaged')),
    shipment_id   TEXT REFERENCES shipments(id),
    image         BLOB,
    image_mime    TEXT,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_shipment ON items(shipment_id);
CREATE INDEX IF NOT EXISTS idx_items_status ON items(status);
`
