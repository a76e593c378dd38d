package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves a page of products, optionally limited to one category.
func (r *GORMProductRepository) GetAll(ctx context.Context, categoryID string, skip, limit int) ([]models.Product, error) {
	skip, limit = normalizePage(skip, limit)
	q := r.db.WithContext(ctx).Preload("Specifications")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	var products []models.Product
	if err := q.Order("created_at ASC").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its specifications.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Specifications").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product and its specifications.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		return createSpecifications(tx, product)
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites the product. Specifications are replaced only when
// supplied: a nil slice keeps the stored set, an empty one clears it.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(product).Omit(clause.Associations).
			Select("name", "description", "price", "category_id", "stock", "image_url", "updated_at").
			Updates(product)
		if res.Error != nil {
			return fmt.Errorf("failed to update product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
		}
		if product.Specifications == nil {
			return nil
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductSpecification{}).Error; err != nil {
			return fmt.Errorf("failed to replace specifications: %w", err)
		}
		if err := createSpecifications(tx, product); err != nil {
			return fmt.Errorf("failed to replace specifications: %w", err)
		}
		return nil
	})
}

// Delete removes a product and everything referencing it.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{&models.ProductSpecification{}, &models.CartItem{}, &models.OrderItem{}} {
			if err := tx.Where("product_id = ?", id).Delete(dependent).Error; err != nil {
				return fmt.Errorf("failed to delete dependents of product %s: %w", id, err)
			}
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

func createSpecifications(tx *gorm.DB, product *models.Product) error {
	if len(product.Specifications) == 0 {
		return nil
	}
	for i := range product.Specifications {
		product.Specifications[i].ID = uuid.New().String()
		product.Specifications[i].ProductID = product.ID
	}
	return tx.Create(&product.Specifications).Error
}
