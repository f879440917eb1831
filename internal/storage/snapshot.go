package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/producttracker/internal/models"
)

// ExportSnapshot returns the full current state.
func (r *Repository) ExportSnapshot(ctx context.Context) (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.listProducts(ctx)
	if err != nil {
		return nil, err
	}
	records, err := r.listRecords(ctx)
	if err != nil {
		return nil, err
	}
	presets, err := r.quantityPresets(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := r.settings(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Products:   products,
		Records:    records,
		Presets:    presets,
		Settings:   settings,
		ExportDate: r.now(),
		Version:    CurrentVersion,
	}, nil
}

// ImportSnapshot overwrites each collection present in snap. Collections that
// are nil in snap keep their stored contents.
func (r *Repository) ImportSnapshot(ctx context.Context, snap *models.Snapshot) (err error) {
	if snap == nil {
		return errors.New("snapshot is nil")
	}
	start := time.Now()
	defer func() { r.observe("ImportSnapshot", start, err, "version", snap.Version) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	if snap.Products != nil {
		if err := r.write(ctx, ProductsKey, snap.Products); err != nil {
			return err
		}
	}
	if snap.Records != nil {
		if err := r.write(ctx, RecordsKey, snap.Records); err != nil {
			return err
		}
	}
	if snap.Presets != nil {
		if err := r.write(ctx, PresetsKey, normalizePresets(snap.Presets)); err != nil {
			return err
		}
	}
	if snap.Settings != nil {
		if err := r.write(ctx, SettingsKey, snap.Settings); err != nil {
			return err
		}
	}
	return nil
}
