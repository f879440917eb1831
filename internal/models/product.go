package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// MaxProductNameLength is the longest product name accepted, in runes.
const MaxProductNameLength = 50

// Product represents an item that production/sale records are logged against.
type Product struct {
	// ID is assigned by the store (time-based, process-unique).
	ID int64 `json:"id"`

	// Name is trimmed, with inner whitespace collapsed.
	// Names are unique case-insensitively among live products; the store does
	// not enforce this, callers do.
	Name string `json:"name"`

	// Price is the unit price.
	Price decimal.Decimal `json:"price"`

	// IsFavorite products are listed first when selecting a product.
	IsFavorite bool `json:"isFavorite"`

	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is nil until the product is first updated.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ProductPatch holds the fields that can be changed on a product.
// A nil field is left unchanged.
type ProductPatch struct {
	Name       *string
	Price      *decimal.Decimal
	IsFavorite *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.IsFavorite == nil
}

// NormalizeName trims name and collapses runs of whitespace to single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// FoldName returns a case-folded form of name for case-insensitive comparison.
func FoldName(name string) string {
	return cases.Fold().String(name)
}

// SampleProduct is a product offered on first run, before the user has added any.
type SampleProduct struct {
	Name  string          `yaml:"name" json:"name"`
	Price decimal.Decimal `yaml:"price" json:"price"`
}

// DefaultSampleProducts returns the products seeded into an empty store.
func DefaultSampleProducts() []SampleProduct {
	return []SampleProduct{
		{Name: "Хлеб белый", Price: decimal.NewFromInt(45)},
		{Name: "Хлеб черный", Price: decimal.NewFromInt(50)},
		{Name: "Булочка с маком", Price: decimal.NewFromInt(35)},
		{Name: "Багет французский", Price: decimal.NewFromInt(75)},
	}
}
