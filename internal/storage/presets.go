package storage

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// QuantityPresets returns the presets sorted ascending.
func (r *Repository) QuantityPresets(ctx context.Context) ([]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.quantityPresets(ctx)
}

func (r *Repository) quantityPresets(ctx context.Context) ([]decimal.Decimal, error) {
	presets, err := read[[]decimal.Decimal](ctx, r, PresetsKey)
	if err != nil {
		return nil, err
	}
	return normalizePresets(presets), nil
}

// AddQuantityPreset inserts value keeping the list sorted. Values that are
// not positive or already present are ignored.
func (r *Repository) AddQuantityPreset(ctx context.Context, value decimal.Decimal) (err error) {
	if !value.IsPositive() {
		return nil
	}
	start := time.Now()
	defer func() { r.observe("AddQuantityPreset", start, err, "value", value.String()) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	presets, err := r.quantityPresets(ctx)
	if err != nil {
		return err
	}
	i, found := slices.BinarySearchFunc(presets, value, decimal.Decimal.Cmp)
	if found {
		return nil
	}
	presets = slices.Insert(presets, i, value)
	return r.write(ctx, PresetsKey, presets)
}

// RemoveQuantityPreset removes value if present. Values compare as decimals,
// so 10 and 10.0 are the same preset.
func (r *Repository) RemoveQuantityPreset(ctx context.Context, value decimal.Decimal) (err error) {
	start := time.Now()
	defer func() { r.observe("RemoveQuantityPreset", start, err, "value", value.String()) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	presets, err := r.quantityPresets(ctx)
	if err != nil {
		return err
	}
	i, found := slices.BinarySearchFunc(presets, value, decimal.Decimal.Cmp)
	if !found {
		return nil
	}
	presets = slices.Delete(presets, i, i+1)
	return r.write(ctx, PresetsKey, presets)
}

// normalizePresets drops non-positive values and duplicates and sorts the rest.
func normalizePresets(values []decimal.Decimal) []decimal.Decimal {
	presets := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		if v.IsPositive() {
			presets = append(presets, v)
		}
	}
	slices.SortFunc(presets, decimal.Decimal.Cmp)
	return slices.CompactFunc(presets, decimal.Decimal.Equal)
}
