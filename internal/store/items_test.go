package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, "SN-TESTSHIRT", "M", "hooded", "black")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.SerialNumber != "SN-TESTSHIRT" {
		t.Errorf("expected serial 'SN-TESTSHIRT', got %q", item.SerialNumber)
	}
	if item.Status != model.StatusInStock {
		t.Errorf("expected status 'in_stock', got %q", item.Status)
	}
	if item.ShipmentID != nil {
		t.Errorf("new item must have no shipment, got %v", *item.ShipmentID)
	}
	if item.ID == "" {
		t.Error("expected an assigned id")
	}

	got, err := GetItemBySerial(ctx, database, "SN-TESTSHIRT")
	if err != nil {
		t.Fatalf("GetItemBySerial: %v", err)
	}
	if got == nil || got.ID != item.ID {
		t.Errorf("expected to find created item, got %v", got)
	}
}

func TestCreateItemGeneratesSerial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	serialPattern := regexp.MustCompile(`^SN-[A-Z0-9]{9}$`)

	item, err := CreateItem(ctx, database, "", "L", "buttoned", "white")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if !serialPattern.MatchString(item.SerialNumber) {
		t.Errorf("generated serial %q does not match SN-[A-Z0-9]{9}", item.SerialNumber)
	}
}

func TestCreateItemDuplicateSerial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateItem(ctx, database, "SN-DUPLICATE", "S", "closed", ""); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	_, err := CreateItem(ctx, database, "SN-DUPLICATE", "M", "hooded", "")
	if !errors.Is(err, ErrDuplicateSerial) {
		t.Errorf("expected ErrDuplicateSerial, got %v", err)
	}
}

func TestCreateItemRejectsBadAttributes(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateItem(ctx, database, "", "XXXL", "hooded", ""); err == nil {
		t.Error("expected error for unknown size")
	}
	if _, err := CreateItem(ctx, database, "", "M", "sleeveless", ""); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestGetItemBySerialMissing(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItemBySerial(context.Background(), database, "UNKNOWN-SERIAL")
	if err != nil {
		t.Fatalf("GetItemBySerial: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for unknown serial, got %v", item)
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, "SN-AAAAAAAA1", "M", "hooded", "red")
	CreateItem(ctx, database, "SN-AAAAAAAA2", "L", "closed", "blue")
	damaged, _ := CreateItem(ctx, database, "SN-AAAAAAAA3", "S", "buttoned", "")
	if _, err := ApplyScan(ctx, database, damaged.SerialNumber, "damage", ""); err != nil {
		t.Fatalf("ApplyScan damage: %v", err)
	}

	all, err := ListItems(ctx, database, ListItemsOptions{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 items, got %d", len(all))
	}

	inStock, _ := ListItems(ctx, database, ListItemsOptions{Status: model.StatusInStock})
	if len(inStock) != 2 {
		t.Errorf("expected 2 in-stock items, got %d", len(inStock))
	}

	available, _ := ListItems(ctx, database, ListItemsOptions{Available: true})
	if len(available) != 2 {
		t.Errorf("expected 2 available items, got %d", len(available))
	}

	limited, _ := ListItems(ctx, database, ListItemsOptions{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected 1 item with limit, got %d", len(limited))
	}
}

func TestAvailableExcludesShippedItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, "", "M", "hooded", "")
	shipment, _ := CreateShipment(ctx, database)
	if _, err := AttachItem(ctx, database, shipment.ID, item.SerialNumber); err != nil {
		t.Fatalf("AttachItem: %v", err)
	}

	available, err := ListItems(ctx, database, ListItemsOptions{Available: true})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(available) != 0 {
		t.Errorf("expected shipped item to be unavailable, got %d items", len(available))
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, "", "M", "hooded", "")
	imageData := []byte("fake image data")
	if err := SetItemImage(ctx, database, item.SerialNumber, imageData, "image/jpeg"); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, mime, err := GetItemImage(ctx, database, item.SerialNumber)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}

func TestItemImageUnknownSerial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := SetItemImage(ctx, database, "UNKNOWN", []byte("x"), "image/jpeg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := GetItemImage(ctx, database, "UNKNOWN"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
