package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/models"
)

// AddRecord appends a record. Quantity and price are taken as given; callers
// validate them.
func (r *Repository) AddRecord(ctx context.Context, productID int64, productName string, quantity, price decimal.Decimal) (_ *models.Record, err error) {
	start := time.Now()
	defer func() { r.observe("AddRecord", start, err, "product_id", productID) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := read[[]models.Record](ctx, r, RecordsKey)
	if err != nil {
		return nil, err
	}

	record := models.Record{
		ID:          r.ids.Generate(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		Amount:      quantity.Mul(price),
		CreatedAt:   r.now(),
	}
	records = append(records, record)
	if err := r.write(ctx, RecordsKey, records); err != nil {
		return nil, err
	}
	r.metrics.ObserveRecordAdded()
	return &record, nil
}

// DeleteRecord removes the record with id, if present.
func (r *Repository) DeleteRecord(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { r.observe("DeleteRecord", start, err, "record_id", id) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := read[[]models.Record](ctx, r, RecordsKey)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)
			return r.write(ctx, RecordsKey, records)
		}
	}
	return nil
}

// ListRecords returns all records in insertion order.
func (r *Repository) ListRecords(ctx context.Context) ([]models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.listRecords(ctx)
}

func (r *Repository) listRecords(ctx context.Context) ([]models.Record, error) {
	records, err := read[[]models.Record](ctx, r, RecordsKey)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.Record{}
	}
	return records, nil
}

// CurrentMonthRecords returns records whose CreatedAt falls in the same
// calendar month and year as now, in the repository's location. "Now" is
// read on every call.
func (r *Repository) CurrentMonthRecords(ctx context.Context) ([]models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.listRecords(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now().In(r.loc)
	year, month, _ := now.Date()
	current := []models.Record{}
	for _, rec := range records {
		y, m, _ := rec.CreatedAt.In(r.loc).Date()
		if y == year && m == month {
			current = append(current, rec)
		}
	}
	return current, nil
}

// RecordsForProduct returns the records that reference productID.
func (r *Repository) RecordsForProduct(ctx context.Context, productID int64) ([]models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.listRecords(ctx)
	if err != nil {
		return nil, err
	}
	matches := []models.Record{}
	for _, rec := range records {
		if rec.ProductID == productID {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

// ClearAllRecords removes the records collection entirely.
func (r *Repository) ClearAllRecords(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { r.observe("ClearAllRecords", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.remove(ctx, RecordsKey)
}
