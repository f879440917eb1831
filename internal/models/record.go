package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one logged production/sale entry.
// Records are immutable once created; they can only be deleted.
type Record struct {
	ID int64 `json:"id"`

	// ProductID references Product.ID. It may dangle after the product is deleted.
	ProductID int64 `json:"productId"`

	// ProductName is the product's name at the time the record was made.
	ProductName string `json:"productName"`

	Quantity decimal.Decimal `json:"quantity"`

	// Price is the unit price at the time the record was made.
	Price decimal.Decimal `json:"price"`

	// Amount is Quantity × Price, computed once at creation.
	Amount decimal.Decimal `json:"amount"`

	CreatedAt time.Time `json:"createdAt"`
}
