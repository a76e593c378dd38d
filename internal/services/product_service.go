package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
	}
}

// GetAllProducts retrieves a page of products, optionally for one category.
func (s *ProductService) GetAllProducts(ctx context.Context, categoryID string, skip, limit int) ([]models.Product, error) {
	return s.repo.GetAll(ctx, categoryID, skip, limit)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new product in an existing category.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.requireCategory(ctx, product.CategoryID); err != nil {
		return err
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct overwrites an existing product. Specifications are
// replaced only when the product carries them.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if _, err := s.repo.GetByID(ctx, product.ID); err != nil {
		return err
	}
	if err := s.requireCategory(ctx, product.CategoryID); err != nil {
		return err
	}
	return s.repo.Update(ctx, product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) requireCategory(ctx context.Context, id string) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}
