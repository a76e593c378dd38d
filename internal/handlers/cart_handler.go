package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service, validate: validator.New()}
}

func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cartRoutes := router.Group("/cart", authRequired)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Put("/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/:id", h.HandleRemoveFromCart)
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.service.GetCart(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err, "retrieve cart")
	}
	return c.JSON(items)
}

// HandleAddToCart adds a product; quantity defaults to 1.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	req := addToCartRequest{Quantity: 1}
	if handled, err := bind(c, h.validate, &req); handled {
		return err
	}
	item, err := h.service.AddToCart(c.UserContext(), middleware.CurrentUser(c).ID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err, "add to cart")
	}
	return c.JSON(item)
}

func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req cartQuantityRequest
	if handled, err := bind(c, h.validate, &req); handled {
		return err
	}
	item, err := h.service.UpdateQuantity(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, err, "update cart")
	}
	return c.JSON(item)
}

func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	if err := h.service.RemoveFromCart(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("id")); err != nil {
		return respondError(c, err, "remove from cart")
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}
