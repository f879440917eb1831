package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/metrics"
	"github.com/mmynk/producttracker/internal/models"
)

// Ensure Repository implements Store
var _ Store = (*Repository)(nil)

// IDGenerator hands out process-unique ids for products and records.
type IDGenerator interface {
	Generate() int64
}

// Repository implements Store on top of a Backend.
//
// Every mutation re-reads the collection it touches, so changes written by
// another process sharing the backend are picked up; the last write wins.
type Repository struct {
	backend Backend

	mu  sync.Mutex // serializes read-modify-write cycles within this process
	ids IDGenerator
	now func() time.Time
	loc *time.Location

	defaultPresets []decimal.Decimal
	metrics        *metrics.Metrics
	logger         *slog.Logger
	onCorrupt      func(CorruptDataWarning)
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for timestamps and the current month.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithLocation sets the time zone that defines calendar months. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *Repository) { r.loc = loc }
}

// WithIDGenerator overrides the snowflake id generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(r *Repository) { r.ids = ids }
}

// WithDefaultPresets sets the quantity presets seeded on first run.
func WithDefaultPresets(presets []decimal.Decimal) Option {
	return func(r *Repository) { r.defaultPresets = presets }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) { r.metrics = m }
}

// WithLogger overrides slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithCorruptionHandler is called whenever a collection fails to decode and
// is read as empty. The default handler logs a warning.
func WithCorruptionHandler(fn func(CorruptDataWarning)) Option {
	return func(r *Repository) { r.onCorrupt = fn }
}

// New creates a Repository over backend and runs Init.
func New(ctx context.Context, backend Backend, opts ...Option) (*Repository, error) {
	r := &Repository{
		backend: backend,
		now:     time.Now,
		loc:     time.Local,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.ids == nil {
		ids, err := newSnowflakeIDs()
		if err != nil {
			return nil, err
		}
		r.ids = ids
	}
	if r.onCorrupt == nil {
		r.onCorrupt = func(w CorruptDataWarning) {
			r.logger.Warn("Corrupt collection read as empty", "key", w.Key, "error", w.Err)
		}
	}

	if err := r.Init(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Init stamps the schema version and seeds first-run defaults.
// It is safe to call more than once.
func (r *Repository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, found, err := r.backend.Get(ctx, VersionKey)
	if err != nil {
		return &PersistenceError{Op: "read", Key: VersionKey, Err: err}
	}
	version := string(raw)
	if found && version == CurrentVersion {
		return nil
	}

	// First run: nothing stored yet.
	if !found {
		if _, presetsFound, err := r.backend.Get(ctx, PresetsKey); err != nil {
			return &PersistenceError{Op: "read", Key: PresetsKey, Err: err}
		} else if !presetsFound && len(r.defaultPresets) > 0 {
			if err := r.write(ctx, PresetsKey, normalizePresets(r.defaultPresets)); err != nil {
				return err
			}
		}
	}

	// No data migrations exist between released versions yet.

	if err := r.backend.Set(ctx, VersionKey, []byte(CurrentVersion)); err != nil {
		r.metrics.ObserveWrite(VersionKey, err)
		return &PersistenceError{Op: "write", Key: VersionKey, Err: err}
	}
	r.metrics.ObserveWrite(VersionKey, nil)
	r.logger.Info("Storage schema migrated", "from", version, "to", CurrentVersion)
	return nil
}

// Close closes the backend.
func (r *Repository) Close() error {
	return r.backend.Close()
}

// loaded is the result of reading one collection. Warning is set when the
// stored bytes could not be decoded and Value fell back to its zero value.
type loaded[T any] struct {
	Value   T
	Warning *CorruptDataWarning
}

// readCollection reads and decodes the collection under key. A missing key
// yields the zero value; undecodable data yields the zero value plus a warning.
func readCollection[T any](ctx context.Context, backend Backend, key string) (loaded[T], error) {
	var res loaded[T]
	data, found, err := backend.Get(ctx, key)
	if err != nil {
		return res, &PersistenceError{Op: "read", Key: key, Err: err}
	}
	if !found || len(data) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(data, &res.Value); err != nil {
		var zero T
		res.Value = zero
		res.Warning = &CorruptDataWarning{Key: key, Err: err}
	}
	return res, nil
}

// read is readCollection plus reporting of corrupt data.
func read[T any](ctx context.Context, r *Repository, key string) (T, error) {
	res, err := readCollection[T](ctx, r.backend, key)
	if err != nil {
		r.logger.Error("Failed to read collection", "key", key, "error", err)
		return res.Value, err
	}
	if res.Warning != nil {
		r.metrics.ObserveCorruptRead(key)
		r.onCorrupt(*res.Warning)
	}
	return res.Value, nil
}

// write encodes v and replaces the collection under key.
func (r *Repository) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	err = r.backend.Set(ctx, key, data)
	r.metrics.ObserveWrite(key, err)
	if err != nil {
		r.logger.Error("Failed to persist collection", "key", key, "error", err)
		return &PersistenceError{Op: "write", Key: key, Err: err}
	}
	return nil
}

// remove deletes the collection under key.
func (r *Repository) remove(ctx context.Context, key string) error {
	err := r.backend.Delete(ctx, key)
	r.metrics.ObserveWrite(key, err)
	if err != nil {
		r.logger.Error("Failed to delete collection", "key", key, "error", err)
		return &PersistenceError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// observe logs the outcome of a store operation with its duration.
func (r *Repository) observe(op string, start time.Time, err error, attrs ...any) {
	args := append([]any{"op", op, "duration_ms", time.Since(start).Milliseconds()}, attrs...)
	if err != nil {
		r.logger.Error("Store operation failed", append(args, "error", err)...)
		return
	}
	r.logger.Debug("Store operation ok", args...)
}

// Check reads every collection and returns a warning for each one that
// could not be decoded. It does not modify anything.
func (r *Repository) Check(ctx context.Context) ([]CorruptDataWarning, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var warnings []CorruptDataWarning
	collect := func(w *CorruptDataWarning, err error) error {
		if err != nil {
			return err
		}
		if w != nil {
			warnings = append(warnings, *w)
		}
		return nil
	}

	products, err := readCollection[[]models.Product](ctx, r.backend, ProductsKey)
	if err := collect(products.Warning, err); err != nil {
		return nil, err
	}
	records, err := readCollection[[]models.Record](ctx, r.backend, RecordsKey)
	if err := collect(records.Warning, err); err != nil {
		return nil, err
	}
	presets, err := readCollection[[]decimal.Decimal](ctx, r.backend, PresetsKey)
	if err := collect(presets.Warning, err); err != nil {
		return nil, err
	}
	settings, err := readCollection[map[string]json.RawMessage](ctx, r.backend, SettingsKey)
	if err := collect(settings.Warning, err); err != nil {
		return nil, err
	}
	return warnings, nil
}

// StorageSize returns the total length of all keys and values in the backend.
func (r *Repository) StorageSize(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys, err := r.backend.Keys(ctx)
	if err != nil {
		return 0, &PersistenceError{Op: "read", Key: "*", Err: err}
	}
	var total int64
	for _, key := range keys {
		value, _, err := r.backend.Get(ctx, key)
		if err != nil {
			return 0, &PersistenceError{Op: "read", Key: key, Err: err}
		}
		total += int64(len(key) + len(value))
	}
	return total, nil
}

type snowflakeIDs struct {
	node *snowflake.Node
}

// newSnowflakeIDs creates a generator whose node number is random, so two
// processes started in the same millisecond still hand out distinct ids.
func newSnowflakeIDs() (*snowflakeIDs, error) {
	node, err := snowflake.NewNode(rand.Int64N(1 << snowflake.NodeBits))
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return &snowflakeIDs{node: node}, nil
}

func (s *snowflakeIDs) Generate() int64 {
	return s.node.Generate().Int64()
}
