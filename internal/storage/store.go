// Package storage provides the persistence layer for products, records,
// quantity presets and settings.
//
// Each collection is kept under a single key of a Backend (a key-value medium)
// and is read fully, modified, and written back wholesale.
package storage

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/models"
)

// Keys under which collections are persisted.
const (
	ProductsKey = "pt_products"
	RecordsKey  = "pt_records"
	PresetsKey  = "pt_quantity_presets"
	SettingsKey = "pt_settings"
	VersionKey  = "pt_version"
)

// CurrentVersion is the schema version stamped by Init.
const CurrentVersion = "2.0"

// Backend is the key-value medium a Repository persists to.
// Implementations must return found=false, not an error, for a missing key.
type Backend interface {
	// Get returns the value stored under key.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys.
	Keys(ctx context.Context) ([]string, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Store defines the product tracker's persistence operations.
// Lookups of unknown ids return nil and no error; callers decide what that means.
type Store interface {
	// AddProduct stores a new product. The name is trimmed and its inner
	// whitespace collapsed; ID and CreatedAt are assigned by the store.
	// No business validation happens here.
	AddProduct(ctx context.Context, name string, price decimal.Decimal, isFavorite bool) (*models.Product, error)

	// UpdateProduct merges patch into the product and refreshes UpdatedAt.
	// Returns nil, nil if the product does not exist.
	UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)

	// DeleteProduct removes a product. Records referencing it are kept.
	DeleteProduct(ctx context.Context, id int64) error

	// GetProduct returns nil, nil if the product does not exist.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)

	// ListProducts returns all products in store order.
	ListProducts(ctx context.Context) ([]models.Product, error)

	// SearchProducts returns products whose name contains query, ignoring case,
	// in store order. An empty query returns every product.
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)

	// AddRecord appends a record with Amount = quantity × price.
	AddRecord(ctx context.Context, productID int64, productName string, quantity, price decimal.Decimal) (*models.Record, error)

	// DeleteRecord removes a record. Deleting an unknown id is a no-op.
	DeleteRecord(ctx context.Context, id int64) error

	ListRecords(ctx context.Context) ([]models.Record, error)

	// CurrentMonthRecords returns records created in the current calendar month.
	CurrentMonthRecords(ctx context.Context) ([]models.Record, error)

	// RecordsForProduct returns records referencing productID.
	RecordsForProduct(ctx context.Context, productID int64) ([]models.Record, error)

	// ClearAllRecords drops every record.
	ClearAllRecords(ctx context.Context) error

	// QuantityPresets returns the presets sorted ascending.
	QuantityPresets(ctx context.Context) ([]decimal.Decimal, error)

	// AddQuantityPreset inserts value in order. Non-positive or already
	// present values are ignored.
	AddQuantityPreset(ctx context.Context, value decimal.Decimal) error

	// RemoveQuantityPreset removes value if present.
	RemoveQuantityPreset(ctx context.Context, value decimal.Decimal) error

	// Setting returns the raw JSON value stored for key, falling back to the
	// built-in default. found is false when neither exists.
	Setting(ctx context.Context, key string) (value json.RawMessage, found bool, err error)

	// SetSetting stores value (JSON-encoded) under key.
	SetSetting(ctx context.Context, key string, value any) error

	// Settings returns all settings with defaults applied.
	Settings(ctx context.Context) (map[string]json.RawMessage, error)

	// ExportSnapshot returns the full state for backup.
	ExportSnapshot(ctx context.Context) (*models.Snapshot, error)

	// ImportSnapshot overwrites each collection present in snap.
	ImportSnapshot(ctx context.Context, snap *models.Snapshot) error

	// Check reads every collection and reports the ones that could not be decoded.
	Check(ctx context.Context) ([]CorruptDataWarning, error)

	// StorageSize returns the total size of all stored keys and values in bytes.
	StorageSize(ctx context.Context) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
