package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/models"
	"github.com/mmynk/producttracker/internal/storage"
	"github.com/mmynk/producttracker/internal/storage/memory"
)

// decimalComparer makes cmp treat 10 and 10.0 as equal, like the store does.
var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

type seqIDs struct{ next int64 }

func (s *seqIDs) Generate() int64 {
	s.next++
	return s.next
}

// testClock is a settable time source.
type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRepository(t *testing.T, backend storage.Backend, opts ...storage.Option) *storage.Repository {
	t.Helper()
	if backend == nil {
		backend = memory.New()
	}
	base := []storage.Option{
		storage.WithIDGenerator(&seqIDs{}),
		storage.WithLocation(time.UTC),
		storage.WithLogger(quietLogger()),
	}
	repo, err := storage.New(context.Background(), backend, append(base, opts...)...)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{t: time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)}
	repo := newTestRepository(t, nil, storage.WithClock(clock.Now))

	t.Run("AddProduct then GetProduct", func(t *testing.T) {
		added, err := repo.AddProduct(ctx, "  Хлеб   белый ", dec("45.50"), false)
		if err != nil {
			t.Fatalf("AddProduct failed: %v", err)
		}
		if added.ID == 0 {
			t.Error("Expected ID to be assigned")
		}

		got, err := repo.GetProduct(ctx, added.ID)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected product, got nil")
		}
		if got.Name != "Хлеб белый" {
			t.Errorf("Name = %q, want %q", got.Name, "Хлеб белый")
		}
		if !got.Price.Equal(dec("45.5")) {
			t.Errorf("Price = %s, want 45.5", got.Price)
		}
		if got.CreatedAt.After(clock.Now()) {
			t.Errorf("CreatedAt %v is after now %v", got.CreatedAt, clock.Now())
		}
		if got.UpdatedAt != nil {
			t.Errorf("UpdatedAt = %v, want nil", got.UpdatedAt)
		}
	})

	t.Run("store does not enforce unique names", func(t *testing.T) {
		if _, err := repo.AddProduct(ctx, "Багет", dec("75"), false); err != nil {
			t.Fatalf("AddProduct failed: %v", err)
		}
		if _, err := repo.AddProduct(ctx, "БАГЕТ", dec("80"), false); err != nil {
			t.Fatalf("AddProduct with duplicate name failed: %v", err)
		}
		matches, err := repo.SearchProducts(ctx, "багет")
		if err != nil {
			t.Fatalf("SearchProducts failed: %v", err)
		}
		if len(matches) != 2 {
			t.Errorf("Expected both duplicates stored, got %d", len(matches))
		}
	})

	t.Run("UpdateProduct merges fields", func(t *testing.T) {
		added, _ := repo.AddProduct(ctx, "Булочка", dec("35"), false)
		clock.t = clock.t.Add(time.Hour)

		fav := true
		updated, err := repo.UpdateProduct(ctx, added.ID, models.ProductPatch{IsFavorite: &fav})
		if err != nil {
			t.Fatalf("UpdateProduct failed: %v", err)
		}
		if updated == nil {
			t.Fatal("Expected updated product, got nil")
		}
		if !updated.IsFavorite {
			t.Error("Expected IsFavorite to be set")
		}
		if updated.Name != "Булочка" || !updated.Price.Equal(dec("35")) {
			t.Errorf("Unpatched fields changed: %+v", updated)
		}
		if updated.UpdatedAt == nil || !updated.UpdatedAt.Equal(clock.Now()) {
			t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, clock.Now())
		}
	})

	t.Run("UpdateProduct on unknown id returns nil", func(t *testing.T) {
		name := "x"
		got, err := repo.UpdateProduct(ctx, 999999, models.ProductPatch{Name: &name})
		if err != nil {
			t.Fatalf("UpdateProduct failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %+v", got)
		}
	})

	t.Run("SearchProducts", func(t *testing.T) {
		all, err := repo.ListProducts(ctx)
		if err != nil {
			t.Fatalf("ListProducts failed: %v", err)
		}
		got, err := repo.SearchProducts(ctx, "")
		if err != nil {
			t.Fatalf("SearchProducts failed: %v", err)
		}
		if len(got) != len(all) {
			t.Errorf("empty query returned %d products, want %d", len(got), len(all))
		}

		got, err = repo.SearchProducts(ctx, "xyz-not-present")
		if err != nil {
			t.Fatalf("SearchProducts failed: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil result, got %v", got)
		}

		got, _ = repo.SearchProducts(ctx, "  БЕЛ ")
		if len(got) != 1 || got[0].Name != "Хлеб белый" {
			t.Errorf("Case-insensitive search failed: %v", got)
		}
	})
}

func TestDeleteProductKeepsRecords(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, nil)

	product, _ := repo.AddProduct(ctx, "Хлеб черный", dec("50"), false)
	record, err := repo.AddRecord(ctx, product.ID, product.Name, dec("3"), product.Price)
	if err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}

	if err := repo.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if err := repo.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("second DeleteProduct failed: %v", err)
	}

	got, err := repo.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected deleted product to be nil, got %+v", got)
	}

	records, err := repo.RecordsForProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("RecordsForProduct failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected record to survive, got %d records", len(records))
	}
	if diff := cmp.Diff(*record, records[0], decimalComparer); diff != "" {
		t.Errorf("Record changed after product deletion (-want +got):\n%s", diff)
	}
}

func TestRecords(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{t: time.Date(2026, time.February, 27, 23, 0, 0, 0, time.UTC)}
	repo := newTestRepository(t, nil, storage.WithClock(clock.Now))

	t.Run("AddRecord computes exact amount", func(t *testing.T) {
		record, err := repo.AddRecord(ctx, 1, "Булочка с маком", dec("0.1"), dec("0.2"))
		if err != nil {
			t.Fatalf("AddRecord failed: %v", err)
		}
		if !record.Amount.Equal(dec("0.02")) {
			t.Errorf("Amount = %s, want 0.02", record.Amount)
		}
	})

	t.Run("CurrentMonthRecords follows the clock", func(t *testing.T) {
		// Created in February.
		feb, err := repo.CurrentMonthRecords(ctx)
		if err != nil {
			t.Fatalf("CurrentMonthRecords failed: %v", err)
		}
		if len(feb) != 1 {
			t.Fatalf("Expected 1 record in February, got %d", len(feb))
		}

		clock.t = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		if _, err := repo.AddRecord(ctx, 1, "Булочка с маком", dec("2"), dec("35")); err != nil {
			t.Fatalf("AddRecord failed: %v", err)
		}

		mar, err := repo.CurrentMonthRecords(ctx)
		if err != nil {
			t.Fatalf("CurrentMonthRecords failed: %v", err)
		}
		if len(mar) != 1 || !mar[0].Amount.Equal(dec("70")) {
			t.Errorf("Expected only the March record, got %+v", mar)
		}

		// Same month in a different year does not count.
		clock.t = time.Date(2027, time.March, 5, 0, 0, 0, 0, time.UTC)
		next, _ := repo.CurrentMonthRecords(ctx)
		if len(next) != 0 {
			t.Errorf("Expected no records in March 2027, got %d", len(next))
		}
	})

	t.Run("DeleteRecord is idempotent", func(t *testing.T) {
		all, _ := repo.ListRecords(ctx)
		if err := repo.DeleteRecord(ctx, all[0].ID); err != nil {
			t.Fatalf("DeleteRecord failed: %v", err)
		}
		if err := repo.DeleteRecord(ctx, all[0].ID); err != nil {
			t.Fatalf("second DeleteRecord failed: %v", err)
		}
		left, _ := repo.ListRecords(ctx)
		if len(left) != len(all)-1 {
			t.Errorf("Expected %d records, got %d", len(all)-1, len(left))
		}
	})

	t.Run("ClearAllRecords", func(t *testing.T) {
		if err := repo.ClearAllRecords(ctx); err != nil {
			t.Fatalf("ClearAllRecords failed: %v", err)
		}
		left, err := repo.ListRecords(ctx)
		if err != nil {
			t.Fatalf("ListRecords failed: %v", err)
		}
		if left == nil || len(left) != 0 {
			t.Errorf("Expected empty records, got %v", left)
		}
	})
}

func TestCurrentMonthUsesLocation(t *testing.T) {
	ctx := context.Background()
	moscow := time.FixedZone("MSK", 3*60*60)
	// 22:30 UTC on Jan 31 is already Feb 1 in Moscow.
	clock := &testClock{t: time.Date(2026, time.January, 31, 22, 30, 0, 0, time.UTC)}
	repo := newTestRepository(t, nil, storage.WithClock(clock.Now), storage.WithLocation(moscow))

	if _, err := repo.AddRecord(ctx, 1, "Хлеб", dec("1"), dec("45")); err != nil {
		t.Fatalf("AddRecord failed: %v", err)
	}
	clock.t = time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)

	records, err := repo.CurrentMonthRecords(ctx)
	if err != nil {
		t.Fatalf("CurrentMonthRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected the record to count for February in MSK, got %d", len(records))
	}
}

func TestQuantityPresets(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, nil, storage.WithDefaultPresets([]decimal.Decimal{dec("5"), dec("1"), dec("5")}))

	presets, err := repo.QuantityPresets(ctx)
	if err != nil {
		t.Fatalf("QuantityPresets failed: %v", err)
	}
	if diff := cmp.Diff([]decimal.Decimal{dec("1"), dec("5")}, presets, decimalComparer); diff != "" {
		t.Errorf("Seeded presets mismatch (-want +got):\n%s", diff)
	}

	for _, v := range []string{"10", "10", "2.5", "0", "-3", "10.0"} {
		if err := repo.AddQuantityPreset(ctx, dec(v)); err != nil {
			t.Fatalf("AddQuantityPreset(%s) failed: %v", v, err)
		}
	}
	presets, _ = repo.QuantityPresets(ctx)
	want := []decimal.Decimal{dec("1"), dec("2.5"), dec("5"), dec("10")}
	if diff := cmp.Diff(want, presets, decimalComparer); diff != "" {
		t.Errorf("Presets mismatch (-want +got):\n%s", diff)
	}

	// 2.50 and 2.5 are the same preset.
	if err := repo.RemoveQuantityPreset(ctx, dec("2.50")); err != nil {
		t.Fatalf("RemoveQuantityPreset failed: %v", err)
	}
	if err := repo.RemoveQuantityPreset(ctx, dec("2.5")); err != nil {
		t.Fatalf("second RemoveQuantityPreset failed: %v", err)
	}
	presets, _ = repo.QuantityPresets(ctx)
	want = []decimal.Decimal{dec("1"), dec("5"), dec("10")}
	if diff := cmp.Diff(want, presets, decimalComparer); diff != "" {
		t.Errorf("Presets after removal mismatch (-want +got):\n%s", diff)
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, nil)

	t.Run("defaults apply before first write", func(t *testing.T) {
		rate, err := storage.GetSetting(ctx, repo, models.SettingTaxRate, decimal.Zero)
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if !rate.Equal(dec("13")) {
			t.Errorf("taxRate = %s, want 13", rate)
		}
		theme, _ := storage.GetSetting(ctx, repo, models.SettingTheme, "")
		if theme != models.ThemeLight {
			t.Errorf("theme = %q, want %q", theme, models.ThemeLight)
		}
	})

	t.Run("unknown key falls back to caller default", func(t *testing.T) {
		got, err := storage.GetSetting(ctx, repo, "nope", "fallback")
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if got != "fallback" {
			t.Errorf("got %q, want fallback", got)
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		repo.SetSetting(ctx, models.SettingTheme, models.ThemeDark)
		repo.SetSetting(ctx, models.SettingTheme, models.ThemeLight)
		repo.SetSetting(ctx, "custom", map[string]int{"a": 1})

		theme, _ := storage.GetSetting(ctx, repo, models.SettingTheme, "")
		if theme != models.ThemeLight {
			t.Errorf("theme = %q, want %q", theme, models.ThemeLight)
		}
		custom, _ := storage.GetSetting(ctx, repo, "custom", map[string]int(nil))
		if custom["a"] != 1 {
			t.Errorf("custom = %v, want a=1", custom)
		}
	})

	t.Run("mismatched type falls back to default", func(t *testing.T) {
		repo.SetSetting(ctx, models.SettingBaseSalary, "not a number")
		got, err := storage.GetSetting(ctx, repo, models.SettingBaseSalary, dec("7"))
		if err != nil {
			t.Fatalf("GetSetting failed: %v", err)
		}
		if !got.Equal(dec("7")) {
			t.Errorf("got %s, want 7", got)
		}
	})

	t.Run("Settings merges defaults", func(t *testing.T) {
		all, err := repo.Settings(ctx)
		if err != nil {
			t.Fatalf("Settings failed: %v", err)
		}
		for key := range models.DefaultSettings() {
			if _, ok := all[key]; !ok {
				t.Errorf("Settings missing default %s", key)
			}
		}
		if _, ok := all["custom"]; !ok {
			t.Error("Settings missing custom key")
		}
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{t: time.Date(2026, time.May, 2, 9, 30, 0, 123456789, time.UTC)}
	src := newTestRepository(t, nil, storage.WithClock(clock.Now))

	p1, _ := src.AddProduct(ctx, "Хлеб белый", dec("45"), true)
	p2, _ := src.AddProduct(ctx, "Багет французский", dec("75.25"), false)
	src.AddRecord(ctx, p1.ID, p1.Name, dec("12"), p1.Price)
	src.AddRecord(ctx, p2.ID, p2.Name, dec("0.5"), p2.Price)
	src.AddQuantityPreset(ctx, dec("10"))
	src.AddQuantityPreset(ctx, dec("25"))
	src.SetSetting(ctx, models.SettingBaseSalary, 30000)

	snap, err := src.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}
	if snap.Version != storage.CurrentVersion {
		t.Errorf("Version = %q, want %q", snap.Version, storage.CurrentVersion)
	}
	if !snap.ExportDate.Equal(clock.Now()) {
		t.Errorf("ExportDate = %v, want %v", snap.ExportDate, clock.Now())
	}

	// Round-trip through JSON like a real backup file.
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded models.Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	dst := newTestRepository(t, nil)
	if err := dst.ImportSnapshot(ctx, &decoded); err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}
	again, err := dst.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("ExportSnapshot failed: %v", err)
	}

	opts := []cmp.Option{decimalComparer}
	if diff := cmp.Diff(snap.Products, again.Products, opts...); diff != "" {
		t.Errorf("Products mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(snap.Records, again.Records, opts...); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(snap.Presets, again.Presets, opts...); diff != "" {
		t.Errorf("Presets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(snap.Settings, again.Settings); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
}

func TestImportPartialSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, nil)

	repo.AddProduct(ctx, "Старый", dec("1"), false)
	repo.AddRecord(ctx, 1, "Старый", dec("1"), dec("1"))
	repo.AddQuantityPreset(ctx, dec("3"))
	repo.SetSetting(ctx, models.SettingTheme, models.ThemeDark)

	// A backup from the browser app: numbers instead of decimal strings, only products.
	backup := []byte(`{
		"products": [{"id": 1700000000123, "name": "Хлеб белый", "price": 45, "createdAt": "2025-01-02T03:04:05.000Z"}],
		"exportDate": "2025-01-03T00:00:00.000Z",
		"version": "2.0"
	}`)
	var snap models.Snapshot
	if err := json.Unmarshal(backup, &snap); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if err := repo.ImportSnapshot(ctx, &snap); err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}

	products, _ := repo.ListProducts(ctx)
	if len(products) != 1 || products[0].ID != 1700000000123 || !products[0].Price.Equal(dec("45")) {
		t.Errorf("Products not replaced: %+v", products)
	}
	records, _ := repo.ListRecords(ctx)
	if len(records) != 1 {
		t.Errorf("Records should be untouched, got %d", len(records))
	}
	presets, _ := repo.QuantityPresets(ctx)
	if len(presets) != 1 || !presets[0].Equal(dec("3")) {
		t.Errorf("Presets should be untouched, got %v", presets)
	}
	theme, _ := storage.GetSetting(ctx, repo, models.SettingTheme, "")
	if theme != models.ThemeDark {
		t.Errorf("Settings should be untouched, theme = %q", theme)
	}

	if err := repo.ImportSnapshot(ctx, &models.Snapshot{Records: []models.Record{}}); err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}
	records, _ = repo.ListRecords(ctx)
	if len(records) != 0 {
		t.Errorf("Empty records collection should overwrite, got %d", len(records))
	}

	if err := repo.ImportSnapshot(ctx, nil); err == nil {
		t.Error("Expected error for nil snapshot")
	}
}

func TestCorruptCollectionReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	var warnings []storage.CorruptDataWarning
	repo := newTestRepository(t, backend, storage.WithCorruptionHandler(func(w storage.CorruptDataWarning) {
		warnings = append(warnings, w)
	}))

	if err := backend.Set(ctx, storage.ProductsKey, []byte(`{not json`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	products, err := repo.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("Expected corrupt products to read as empty, got %v", products)
	}
	if len(warnings) != 1 || warnings[0].Key != storage.ProductsKey {
		t.Fatalf("Expected one warning for %s, got %v", storage.ProductsKey, warnings)
	}

	found, err := repo.Check(ctx)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(found) != 1 || found[0].Key != storage.ProductsKey {
		t.Errorf("Check = %v, want one warning for %s", found, storage.ProductsKey)
	}

	// Writing heals the collection.
	if _, err := repo.AddProduct(ctx, "Новый", dec("10"), false); err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}
	found, _ = repo.Check(ctx)
	if len(found) != 0 {
		t.Errorf("Expected no warnings after rewrite, got %v", found)
	}
}

func TestWriteFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, memory.New(memory.WithQuota(200)))

	_, err := repo.AddProduct(ctx, "Хлеб с очень длинным названием, которое не влезет", dec("45"), false)
	if err == nil {
		// The first product might fit; a few more will not.
		for i := 0; i < 10 && err == nil; i++ {
			_, err = repo.AddProduct(ctx, "Хлеб с очень длинным названием, которое не влезет", dec("45"), false)
		}
	}

	var perr *storage.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected PersistenceError, got %v", err)
	}
	if perr.Op != "write" || perr.Key != storage.ProductsKey {
		t.Errorf("PersistenceError = %+v, want write of %s", perr, storage.ProductsKey)
	}
	if !errors.Is(err, memory.ErrQuotaExceeded) {
		t.Errorf("Expected error to wrap ErrQuotaExceeded, got %v", err)
	}
}

func TestReadFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	repo := newTestRepository(t, backend)
	backend.Close()

	_, err := repo.ListRecords(ctx)
	var perr *storage.PersistenceError
	if !errors.As(err, &perr) || perr.Op != "read" {
		t.Fatalf("Expected read PersistenceError, got %v", err)
	}
	if !errors.Is(err, memory.ErrClosed) {
		t.Errorf("Expected error to wrap ErrClosed, got %v", err)
	}
}

func TestInitStampsVersion(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	repo := newTestRepository(t, backend)

	version, found, err := backend.Get(ctx, storage.VersionKey)
	if err != nil || !found {
		t.Fatalf("Version not stored: found=%v err=%v", found, err)
	}
	if string(version) != storage.CurrentVersion {
		t.Errorf("Version = %q, want %q", version, storage.CurrentVersion)
	}
	if err := repo.Init(ctx); err != nil {
		t.Errorf("second Init failed: %v", err)
	}

	size, err := repo.StorageSize(ctx)
	if err != nil {
		t.Fatalf("StorageSize failed: %v", err)
	}
	if want := int64(len(storage.VersionKey) + len(storage.CurrentVersion)); size != want {
		t.Errorf("StorageSize = %d, want %d", size, want)
	}
}

func TestSnowflakeIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.New(ctx, memory.New(), storage.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer repo.Close()

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		r, err := repo.AddRecord(ctx, 1, "Хлеб", dec("1"), dec("1"))
		if err != nil {
			t.Fatalf("AddRecord failed: %v", err)
		}
		if seen[r.ID] {
			t.Fatalf("Duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
}
