package service

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/models"
	"github.com/mmynk/producttracker/internal/storage"
)

// ProductService validates product changes before handing them to the store.
type ProductService struct {
	store storage.Store
}

// NewProductService creates a new ProductService with the given storage backend.
func NewProductService(store storage.Store) *ProductService {
	return &ProductService{store: store}
}

// DeleteResult describes a deleted product.
type DeleteResult struct {
	Product models.Product
	// HadRecords is set when records still reference the product. The
	// records are kept and keep the name and price they were logged with.
	HadRecords bool
}

// AddProduct creates a product after validating its name and price.
func (s *ProductService) AddProduct(ctx context.Context, name string, price decimal.Decimal, isFavorite bool) (*models.Product, error) {
	slog.Info("AddProduct request received", "name", name, "price", price)

	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, name, 0); err != nil {
		return nil, err
	}

	product, err := s.store.AddProduct(ctx, name, price, isFavorite)
	if err != nil {
		slog.Error("AddProduct failed", "error", err)
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	slog.Info("Product created", "product_id", product.ID)
	return product, nil
}

// UpdateProduct validates the fields set in patch and applies them.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	slog.Info("UpdateProduct request received", "product_id", id)

	if patch.Name != nil {
		name, err := validateName(*patch.Name)
		if err != nil {
			return nil, err
		}
		if err := s.checkDuplicate(ctx, name, id); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return nil, err
		}
	}

	product, err := s.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		slog.Error("UpdateProduct failed", "product_id", id, "error", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, &NotFoundError{Kind: "product", ID: id}
	}

	slog.Info("Product updated", "product_id", id)
	return product, nil
}

// DeleteProduct removes a product. Records logged against it are kept.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) (*DeleteResult, error) {
	slog.Info("DeleteProduct request received", "product_id", id)

	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, &NotFoundError{Kind: "product", ID: id}
	}

	records, err := s.store.RecordsForProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get records for product: %w", err)
	}

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		slog.Error("DeleteProduct failed", "product_id", id, "error", err)
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	if len(records) > 0 {
		slog.Warn("Deleted product still has records", "product_id", id, "records_count", len(records))
	}
	return &DeleteResult{Product: *product, HadRecords: len(records) > 0}, nil
}

// EnsureSampleProducts adds samples when the store has no products yet.
// It returns the number of products added.
func (s *ProductService) EnsureSampleProducts(ctx context.Context, samples []models.SampleProduct) (int, error) {
	existing, err := s.store.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	added := 0
	for _, sample := range samples {
		if _, err := s.AddProduct(ctx, sample.Name, sample.Price, false); err != nil {
			return added, fmt.Errorf("failed to add sample product %q: %w", sample.Name, err)
		}
		added++
	}
	if added > 0 {
		slog.Info("Sample products added", "count", added)
	}
	return added, nil
}

// checkDuplicate returns ErrDuplicateProduct if a product other than exceptID
// already uses name.
func (s *ProductService) checkDuplicate(ctx context.Context, name string, exceptID int64) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	folded := models.FoldName(name)
	for _, p := range products {
		if p.ID != exceptID && models.FoldName(p.Name) == folded {
			return ErrDuplicateProduct
		}
	}
	return nil
}

func validateName(name string) (string, error) {
	name = models.NormalizeName(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > models.MaxProductNameLength {
		return "", &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("must be at most %d characters", models.MaxProductNameLength),
		}
	}
	return name, nil
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return &ValidationError{Field: "price", Message: "must be greater than zero"}
	}
	return nil
}
