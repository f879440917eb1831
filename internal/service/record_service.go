package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/models"
	"github.com/mmynk/producttracker/internal/storage"
)

// RecordService logs production against existing products.
type RecordService struct {
	store storage.Store
}

// NewRecordService creates a new RecordService with the given storage backend.
func NewRecordService(store storage.Store) *RecordService {
	return &RecordService{store: store}
}

// AddRecord logs quantity units of a product at its current price. The
// product's name and price are copied onto the record, so later edits to the
// product do not change it.
func (s *RecordService) AddRecord(ctx context.Context, productID int64, quantity decimal.Decimal) (*models.Record, error) {
	slog.Info("AddRecord request received", "product_id", productID, "quantity", quantity)

	if !quantity.IsPositive() {
		return nil, &ValidationError{Field: "quantity", Message: "must be greater than zero"}
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, &NotFoundError{Kind: "product", ID: productID}
	}

	record, err := s.store.AddRecord(ctx, product.ID, product.Name, quantity, product.Price)
	if err != nil {
		slog.Error("AddRecord failed", "product_id", productID, "error", err)
		return nil, fmt.Errorf("failed to add record: %w", err)
	}

	slog.Info("Record created", "record_id", record.ID, "amount", record.Amount)
	return record, nil
}

// DeleteRecord removes a record.
func (s *RecordService) DeleteRecord(ctx context.Context, id int64) error {
	slog.Info("DeleteRecord request received", "record_id", id)

	if err := s.store.DeleteRecord(ctx, id); err != nil {
		slog.Error("DeleteRecord failed", "record_id", id, "error", err)
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
