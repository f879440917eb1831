package storage

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/models"
)

// AddProduct stores a new product and returns it with its ID assigned.
func (r *Repository) AddProduct(ctx context.Context, name string, price decimal.Decimal, isFavorite bool) (_ *models.Product, err error) {
	start := time.Now()
	defer func() { r.observe("AddProduct", start, err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := read[[]models.Product](ctx, r, ProductsKey)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		ID:         r.ids.Generate(),
		Name:       models.NormalizeName(name),
		Price:      price,
		IsFavorite: isFavorite,
		CreatedAt:  r.now(),
	}
	products = append(products, product)
	if err := r.write(ctx, ProductsKey, products); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct merges patch into the stored product.
func (r *Repository) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (_ *models.Product, err error) {
	start := time.Now()
	defer func() { r.observe("UpdateProduct", start, err, "product_id", id) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := read[[]models.Product](ctx, r, ProductsKey)
	if err != nil {
		return nil, err
	}

	i := indexOfProduct(products, id)
	if i < 0 {
		return nil, nil
	}

	p := &products[i]
	if patch.Name != nil {
		p.Name = models.NormalizeName(*patch.Name)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.IsFavorite != nil {
		p.IsFavorite = *patch.IsFavorite
	}
	updated := r.now()
	p.UpdatedAt = &updated

	if err := r.write(ctx, ProductsKey, products); err != nil {
		return nil, err
	}
	result := *p
	return &result, nil
}

// DeleteProduct removes the product with id, if present.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { r.observe("DeleteProduct", start, err, "product_id", id) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := read[[]models.Product](ctx, r, ProductsKey)
	if err != nil {
		return err
	}

	i := indexOfProduct(products, id)
	if i < 0 {
		return nil
	}
	products = append(products[:i], products[i+1:]...)
	return r.write(ctx, ProductsKey, products)
}

// GetProduct returns the product with id, or nil if there is none.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := read[[]models.Product](ctx, r, ProductsKey)
	if err != nil {
		return nil, err
	}
	i := indexOfProduct(products, id)
	if i < 0 {
		return nil, nil
	}
	return &products[i], nil
}

// ListProducts returns all products in store order.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.listProducts(ctx)
}

func (r *Repository) listProducts(ctx context.Context) ([]models.Product, error) {
	products, err := read[[]models.Product](ctx, r, ProductsKey)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// SearchProducts returns the products whose name contains query, ignoring case.
func (r *Repository) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.listProducts(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return products, nil
	}

	needle := models.FoldName(query)
	matches := []models.Product{}
	for _, p := range products {
		if strings.Contains(models.FoldName(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func indexOfProduct(products []models.Product, id int64) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
