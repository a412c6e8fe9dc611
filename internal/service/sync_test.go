package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kumarvvr/salesnisha-server/internal/errs"
	"github.com/kumarvvr/salesnisha-server/internal/model"

	"github.com/rs/zerolog"
)

type fakeItemStore struct {
	items      map[string]model.Item
	failInsert map[string]bool
	failUpdate map[string]bool
	failGet    map[string]bool
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{
		items:      map[string]model.Item{},
		failInsert: map[string]bool{},
		failUpdate: map[string]bool{},
		failGet:    map[string]bool{},
	}
}

func (f *fakeItemStore) GetByID(_ context.Context, itemID string) (*model.Item, error) {
	if f.failGet[itemID] {
		return nil, errs.E(errs.Unavailable, "store unavailable")
	}
	item, ok := f.items[itemID]
	if !ok {
		return nil, errs.E(errs.NotFound, "item not found")
	}
	return &item, nil
}

func (f *fakeItemStore) Insert(_ context.Context, item model.Item) (*model.Item, error) {
	if f.failInsert[item.ItemID] {
		return nil, errs.E(errs.Internal, "item query failed")
	}
	now := time.Now()
	item.CreatedAt, item.UpdatedAt = now, now
	f.items[item.ItemID] = item
	return &item, nil
}

func (f *fakeItemStore) Update(_ context.Context, item model.Item) (*model.Item, error) {
	if f.failUpdate[item.ItemID] {
		return nil, errs.E(errs.Internal, "item query failed")
	}
	prev, ok := f.items[item.ItemID]
	if !ok {
		return nil, errs.E(errs.NotFound, "item not found")
	}
	item.CreatedAt = prev.CreatedAt
	item.UpdatedAt = prev.UpdatedAt.Add(time.Second)
	f.items[item.ItemID] = item
	return &item, nil
}

type fakeLocationStore struct {
	locations  map[string]model.Location
	failUpsert map[string]bool
}

func newFakeLocationStore() *fakeLocationStore {
	return &fakeLocationStore{
		locations:  map[string]model.Location{},
		failUpsert: map[string]bool{},
	}
}

func (f *fakeLocationStore) GetByID(_ context.Context, locID string) (*model.Location, error) {
	loc, ok := f.locations[locID]
	if !ok {
		return nil, errs.E(errs.NotFound, "location not found")
	}
	return &loc, nil
}

func (f *fakeLocationStore) Upsert(_ context.Context, loc model.Location) (*model.Location, error) {
	if f.failUpsert[loc.LocID] {
		return nil, errs.E(errs.Internal, "location query failed")
	}
	now := time.Now()
	if prev, ok := f.locations[loc.LocID]; ok {
		loc.CreatedAt = prev.CreatedAt
		loc.UpdatedAt = prev.CreatedAt.Add(time.Minute)
	} else {
		loc.CreatedAt, loc.UpdatedAt = now, now
	}
	f.locations[loc.LocID] = loc
	return &loc, nil
}

func writeSnapshot(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func newSyncService(items ItemStore, locations LocationStore) *SyncService {
	return NewSyncService(items, locations, zerolog.Nop())
}

func TestSyncItemsTalliesInsertsAndUpdates(t *testing.T) {
	store := newFakeItemStore()
	store.items["SKU-1"] = model.Item{ItemID: "SKU-1", Name: "Old Tea", UnitOfSale: "ea"}
	store.items["SKU-2"] = model.Item{ItemID: "SKU-2", Name: "Old Coffee", UnitOfSale: "ea"}

	path := writeSnapshot(t, "items.json", `{"items":[
		{"itemid":"SKU-1","name":"Tea"},
		{"itemid":"SKU-2","name":"Coffee"},
		{"itemid":"SKU-3","name":"Sugar","unitofsale":"kg"}
	]}`)

	res, err := newSyncService(store, newFakeLocationStore()).SyncItems(context.Background(), path)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	want := Result{Total: 3, Inserted: 1, Updated: 2, Errors: 0}
	if *res != want {
		t.Fatalf("expected tally %+v, got %+v", want, *res)
	}
	if store.items["SKU-1"].Name != "Tea" || store.items["SKU-2"].Name != "Coffee" {
		t.Fatalf("updated records must reflect new field values: %+v", store.items)
	}
	if store.items["SKU-3"].UnitOfSale != "kg" {
		t.Fatalf("inserted record lost its unit of sale: %+v", store.items["SKU-3"])
	}
}

func TestSyncItemsIsolatesPerRecordFailures(t *testing.T) {
	store := newFakeItemStore()
	store.failInsert["SKU-BAD"] = true

	path := writeSnapshot(t, "items.json", `{"items":[
		{"itemid":"SKU-BAD"},
		{"itemid":"SKU-OK"}
	]}`)

	res, err := newSyncService(store, newFakeLocationStore()).SyncItems(context.Background(), path)
	if err != nil {
		t.Fatalf("per-record failures must not abort the batch: %v", err)
	}

	want := Result{Total: 2, Inserted: 1, Updated: 0, Errors: 1}
	if *res != want {
		t.Fatalf("expected tally %+v, got %+v", want, *res)
	}
	if _, ok := store.items["SKU-OK"]; !ok {
		t.Fatalf("records after a failure must still be processed")
	}
}

func TestSyncItemsCountsLookupFaults(t *testing.T) {
	store := newFakeItemStore()
	store.failGet["SKU-1"] = true

	path := writeSnapshot(t, "items.json", `{"items":[{"itemid":"SKU-1"}]}`)

	res, err := newSyncService(store, newFakeLocationStore()).SyncItems(context.Background(), path)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if res.Errors != 1 || res.Inserted != 0 || res.Updated != 0 {
		t.Fatalf("a lookup fault must count as an error, got %+v", *res)
	}
}

func TestSyncItemsMissingFileReturnsFileNotFound(t *testing.T) {
	svc := newSyncService(newFakeItemStore(), newFakeLocationStore())
	_, err := svc.SyncItems(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	if !errs.IsKind(err, errs.FileNotFound) {
		t.Fatalf("expected file-not-found kind, got %v (%v)", errs.KindOf(err), err)
	}
}

func TestLoadItemsAppliesDefaults(t *testing.T) {
	path := writeSnapshot(t, "items.json", `{"items":[{"itemid":"SKU-1"}]}`)
	items, err := LoadItems(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].UnitOfSale != "ea" {
		t.Fatalf("absent unitofsale must default to \"ea\", got %q", items[0].UnitOfSale)
	}
}

func TestLoadItemsTypeMismatchAbortsWholeLoad(t *testing.T) {
	path := writeSnapshot(t, "items.json", `{"items":[
		{"itemid":"SKU-1"},
		{"itemid":123}
	]}`)
	_, err := LoadItems(path)
	if !errs.IsKind(err, errs.MalformedRecord) {
		t.Fatalf("expected malformed-record kind, got %v (%v)", errs.KindOf(err), err)
	}
}

func TestLoadLocationsAppliesCategoryDefaults(t *testing.T) {
	path := writeSnapshot(t, "locations.json", `{"locations":[{"locid":"LOC-1","name":"Main St"}]}`)
	locations, err := LoadLocations(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if locations[0].StoreCategory != "retail" || locations[0].LocationCategory != "store" {
		t.Fatalf("category defaults not applied: %+v", locations[0])
	}
}

func TestSyncLocationsClassifiesInsertThenUpdate(t *testing.T) {
	store := newFakeLocationStore()
	svc := newSyncService(newFakeItemStore(), store)

	path := writeSnapshot(t, "locations.json", `{"locations":[
		{"locid":"LOC-1"},
		{"locid":"LOC-2"}
	]}`)

	first, err := svc.SyncLocations(context.Background(), path)
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	if first.Inserted != 2 || first.Updated != 0 || first.Errors != 0 {
		t.Fatalf("first run should classify both as inserts, got %+v", *first)
	}

	second, err := svc.SyncLocations(context.Background(), path)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if second.Inserted != 0 || second.Updated != 2 || second.Errors != 0 {
		t.Fatalf("second run should classify both as updates, got %+v", *second)
	}
}

func TestSyncLocationsCountsUpsertFailures(t *testing.T) {
	store := newFakeLocationStore()
	store.failUpsert["LOC-BAD"] = true
	svc := newSyncService(newFakeItemStore(), store)

	path := writeSnapshot(t, "locations.json", `{"locations":[
		{"locid":"LOC-BAD"},
		{"locid":"LOC-OK"}
	]}`)

	res, err := svc.SyncLocations(context.Background(), path)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	want := Result{Total: 2, Inserted: 1, Updated: 0, Errors: 1}
	if *res != want {
		t.Fatalf("expected tally %+v, got %+v", want, *res)
	}
}
