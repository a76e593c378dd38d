package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads are public, writes
// are admin only.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", authRequired, middleware.AdminOnly(), h.HandleCreateProduct)
	productRoutes.Put("/:id", authRequired, middleware.AdminOnly(), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authRequired, middleware.AdminOnly(), h.HandleDeleteProduct)
}

// HandleGetProducts lists products, optionally by ?category_id=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	p, handled, err := page(c, h.validate)
	if handled {
		return err
	}
	products, err := h.service.GetAllProducts(c.UserContext(), c.Query("category_id"), p.Skip, p.Limit)
	if err != nil {
		return respondError(c, err, "retrieve products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "retrieve product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if handled, err := bind(c, h.validate, &product); handled {
		return err
	}
	product.ID = ""
	if err := h.service.CreateProduct(c.UserContext(), &product); err != nil {
		log.Printf("Error creating product %s: %v", product.Name, err)
		return respondError(c, err, "create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if handled, err := bind(c, h.validate, &product); handled {
		return err
	}
	product.ID = c.Params("id")
	if err := h.service.UpdateProduct(c.UserContext(), &product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return respondError(c, err, "update product")
	}
	updated, err := h.service.GetProductByID(c.UserContext(), product.ID)
	if err != nil {
		return respondError(c, err, "retrieve product")
	}
	return c.JSON(updated)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return respondError(c, err, "delete product")
	}
	return c.JSON(fiber.Map{"message": "Product " + id + " deleted successfully"})
}
