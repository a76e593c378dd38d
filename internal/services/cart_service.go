package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService manages a user's shopping cart. Every operation is scoped to
// the owning user.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

// AddToCart adds quantity of a product, merging with an existing line.
func (s *CartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.cartRepo.Add(ctx, userID, productID, quantity)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.cartRepo.SetQuantity(ctx, userID, itemID, quantity)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID string) error {
	return s.cartRepo.Remove(ctx, userID, itemID)
}
