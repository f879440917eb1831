// Package search lists products for selection, filtered by a name query.
package search

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mmynk/producttracker/internal/models"
	"github.com/mmynk/producttracker/internal/storage"
)

// DefaultLanguage orders product names when no language is configured.
var DefaultLanguage = language.Russian

// Index filters and orders products read from a Store. It keeps no state of
// its own; every List call reads the Store again.
type Index struct {
	store storage.Store

	mu       sync.Mutex // collate.Collator is not safe for concurrent use
	collator *collate.Collator
}

// NewIndex creates an Index that sorts names using the rules of lang.
func NewIndex(store storage.Store, lang language.Tag) *Index {
	if lang == language.Und {
		lang = DefaultLanguage
	}
	return &Index{
		store:    store,
		collator: collate.New(lang, collate.IgnoreCase),
	}
}

// List returns the products whose name contains query, ignoring case, or
// every product when query is blank. Favorites come first; within each group
// names are in alphabetical order, and equal names keep store order.
func (idx *Index) List(ctx context.Context, query string) ([]models.Product, error) {
	products, err := idx.store.SearchProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	// SearchProducts may hand back the store's own slice.
	products = slices.Clone(products)
	if products == nil {
		products = []models.Product{}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	slices.SortStableFunc(products, func(a, b models.Product) int {
		if a.IsFavorite != b.IsFavorite {
			if a.IsFavorite {
				return -1
			}
			return 1
		}
		return idx.collator.CompareString(a.Name, b.Name)
	})
	return products, nil
}
