package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
)

func TestCreateShipmentEmpty(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	trackingPattern := regexp.MustCompile(`^SH-[A-Z0-9]{9}$`)

	shipment, err := CreateShipment(ctx, database)
	if err != nil {
		t.Fatalf("CreateShipment: %v", err)
	}
	if !trackingPattern.MatchString(shipment.TrackingCode) {
		t.Errorf("tracking code %q does not match SH-[A-Z0-9]{9}", shipment.TrackingCode)
	}
	if len(shipment.Items) != 0 {
		t.Errorf("new shipment must be empty, got %d items", len(shipment.Items))
	}
	if shipment.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestShipmentTrackingCodesUnique(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		shipment, err := CreateShipment(ctx, database)
		if err != nil {
			t.Fatalf("CreateShipment: %v", err)
		}
		if seen[shipment.TrackingCode] {
			t.Fatalf("duplicate tracking code %s", shipment.TrackingCode)
		}
		seen[shipment.TrackingCode] = true
	}
}

func TestListShipmentsDerivedItemSets(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shipment, _ := CreateShipment(ctx, database)

	// Zero items attached yet: listed with an empty set.
	shipments, err := ListShipments(ctx, database)
	if err != nil {
		t.Fatalf("ListShipments: %v", err)
	}
	if len(shipments) != 1 {
		t.Fatalf("expected 1 shipment, got %d", len(shipments))
	}
	if shipments[0].Items == nil || len(shipments[0].Items) != 0 {
		t.Errorf("expected empty item set, got %v", shipments[0].Items)
	}

	// Attach one item, list again: exactly one item in the derived set.
	item, _ := CreateItem(ctx, database, "", "M", "hooded", "")
	if _, err := AttachItem(ctx, database, shipment.ID, item.SerialNumber); err != nil {
		t.Fatalf("AttachItem: %v", err)
	}

	shipments, _ = ListShipments(ctx, database)
	if len(shipments[0].Items) != 1 {
		t.Fatalf("expected 1 item in shipment, got %d", len(shipments[0].Items))
	}
	if shipments[0].Items[0].SerialNumber != item.SerialNumber {
		t.Errorf("expected item %s, got %s", item.SerialNumber, shipments[0].Items[0].SerialNumber)
	}
	if shipments[0].Items[0].Status != model.StatusShipped {
		t.Errorf("attached item should be shipped, got %q", shipments[0].Items[0].Status)
	}
}

func TestGetShipmentMissing(t *testing.T) {
	database := db.NewTestDB(t)

	shipment, err := GetShipment(context.Background(), database, "no-such-id")
	if err != nil {
		t.Fatalf("GetShipment: %v", err)
	}
	if shipment != nil {
		t.Errorf("expected nil for unknown shipment, got %v", shipment)
	}
}

func TestAttachItemOnlyOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, "", "L", "closed", "")
	first, _ := CreateShipment(ctx, database)
	second, _ := CreateShipment(ctx, database)

	if _, err := AttachItem(ctx, database, first.ID, item.SerialNumber); err != nil {
		t.Fatalf("AttachItem: %v", err)
	}

	// Already shipped: binding to another shipment must be rejected and the
	// original link must survive.
	_, err := AttachItem(ctx, database, second.ID, item.SerialNumber)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}

	got, _ := GetItemBySerial(ctx, database, item.SerialNumber)
	if got.ShipmentID == nil || *got.ShipmentID != first.ID {
		t.Errorf("expected item to stay bound to %s, got %v", first.ID, got.ShipmentID)
	}
}

func TestDamagedAfterShippedStaysInShipmentSet(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shipment, _ := CreateShipment(ctx, database)
	item, _ := CreateItem(ctx, database, "", "M", "hooded", "")
	AttachItem(ctx, database, shipment.ID, item.SerialNumber)
	if _, err := ApplyScan(ctx, database, item.SerialNumber, "damage", ""); err != nil {
		t.Fatalf("ApplyScan damage: %v", err)
	}

	got, _ := GetShipment(ctx, database, shipment.ID)
	if len(got.Items) != 1 {
		t.Fatalf("damaged-after-shipped item must remain in the derived set, got %d items", len(got.Items))
	}
	if got.Items[0].Status != model.StatusDamaged {
		t.Errorf("expected current disposition 'damaged', got %q", got.Items[0].Status)
	}
}
