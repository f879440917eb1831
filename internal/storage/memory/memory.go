// Package memory provides an in-memory implementation of storage.Backend
// for tests and ephemeral use.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/mmynk/producttracker/internal/storage"
)

// Ensure Backend implements storage.Backend
var _ storage.Backend = (*Backend)(nil)

var (
	// ErrQuotaExceeded is returned by Set when the write would take the
	// backend over its quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("backend is closed")
)

// Backend keeps values in a map. It is safe for concurrent use.
type Backend struct {
	mu     sync.Mutex
	data   map[string][]byte
	quota  int
	closed bool
}

// Option configures a Backend.
type Option func(*Backend)

// WithQuota limits the total size of keys plus values, in bytes, the way a
// browser limits localStorage. Zero means unlimited.
func WithQuota(bytes int) Option {
	return func(b *Backend) { b.quota = bytes }
}

// New creates an empty Backend.
func New(opts ...Option) *Backend {
	b := &Backend{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Get returns a copy of the value stored under key.
func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, false, ErrClosed
	}
	value, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(value), true, nil
}

// Set stores a copy of value under key.
func (b *Backend) Set(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if b.quota > 0 {
		size := len(key) + len(value)
		for k, v := range b.data {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > b.quota {
			return ErrQuotaExceeded
		}
	}
	b.data[key] = slices.Clone(value)
	return nil
}

// Delete removes key.
func (b *Backend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	delete(b.data, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (b *Backend) Keys(_ context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close marks the backend closed. The data is discarded.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.data = nil
	return nil
}
