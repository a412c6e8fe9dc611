// Package model defines the persisted record types for the sales
// dataset and the JSON snapshot documents they are loaded from.
//
// Columns map to fields by name through the `db` tags; the repository
// layer binds rows with pgx's by-name struct scanning, so any shape
// mismatch between schema and struct fails fast instead of silently
// shifting values.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Item is a sellable product. ItemID is the stable unique key.
type Item struct {
	ItemID      string    `db:"itemid" json:"itemid" validate:"omitempty,max=64"`
	Name        string    `db:"name" json:"name" validate:"max=256"`
	Description string    `db:"description" json:"description"`
	UnitOfSale  string    `db:"unitofsale" json:"unitofsale" validate:"max=32"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Location is a place where sales happen. LocID is the stable unique
// key. Latitude and longitude are stored as text, as delivered by the
// upstream snapshots.
type Location struct {
	LocID                string    `db:"locid" json:"locid" validate:"omitempty,max=64"`
	Name                 string    `db:"name" json:"name" validate:"max=256"`
	Description          string    `db:"description" json:"description"`
	Address              string    `db:"address" json:"address"`
	Contact              string    `db:"contact" json:"contact"`
	Latitude             string    `db:"latitude" json:"latitude" validate:"max=32"`
	Longitude            string    `db:"longitude" json:"longitude" validate:"max=32"`
	StoreCategory        string    `db:"storecategory" json:"storecategory" validate:"max=64"`
	LocationCategory     string    `db:"locationcategory" json:"locationcategory" validate:"max=64"`
	StoreCategoryNote    string    `db:"storecategorynote" json:"storecategorynote"`
	LocationCategoryNote string    `db:"locationcategorynote" json:"locationcategorynote"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// SaleEvent is one recorded sale. The ID is server-assigned and events
// are append-only: never updated, never deleted.
//
// The moment of sale is stored decomposed (separate integer fields) plus
// an explicit timezone label. LocID and ItemID are soft foreign keys:
// referential integrity is the store's responsibility, not this layer's.
type SaleEvent struct {
	ID            int64     `db:"id" json:"id"`
	LocID         string    `db:"locid" json:"locid" validate:"omitempty,max=64"`
	ItemID        string    `db:"itemid" json:"itemid" validate:"omitempty,max=64"`
	SaleQty       float64   `db:"saleqty" json:"saleqty"`
	Year          int       `db:"year" json:"year" validate:"min=0,max=9999"`
	Month         int       `db:"month" json:"month" validate:"min=0,max=12"`
	Day           int       `db:"day" json:"day" validate:"min=0,max=31"`
	Hour          int       `db:"hour" json:"hour" validate:"min=0,max=23"`
	Minute        int       `db:"minute" json:"minute" validate:"min=0,max=59"`
	Second        int       `db:"second" json:"second" validate:"min=0,max=60"`
	EventTimezone string    `db:"event_timezone" json:"event_timezone" validate:"max=64"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Date is a decomposed calendar date used for range queries over sale
// events, which carry no composite datetime column.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DefaultItem returns an Item carrying the documented snapshot defaults.
// Loading a JSON record on top of it leaves absent fields at these
// values.
func DefaultItem() Item {
	return Item{UnitOfSale: "ea"}
}

// DefaultLocation returns a Location carrying the documented snapshot
// defaults.
func DefaultLocation() Location {
	return Location{
		StoreCategory:    "retail",
		LocationCategory: "store",
	}
}

var validate = validator.New()

// ValidateRecord checks a decoded record against its constraint tags.
// A failure is a malformed record as far as the sync routines are
// concerned.
func ValidateRecord(rec any) error {
	return validate.Struct(rec)
}
