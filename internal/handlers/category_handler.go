package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service, validate: validator.New()}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategory)
	categoryRoutes.Post("/", authRequired, middleware.AdminOnly(), h.HandleCreateCategory)
	categoryRoutes.Put("/:id", authRequired, middleware.AdminOnly(), h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", authRequired, middleware.AdminOnly(), h.HandleDeleteCategory)
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	p, handled, err := page(c, h.validate)
	if handled {
		return err
	}
	categories, err := h.service.ListCategories(c.UserContext(), p.Skip, p.Limit)
	if err != nil {
		return respondError(c, err, "retrieve categories")
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "retrieve category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if handled, err := bind(c, h.validate, &req); handled {
		return err
	}
	category, err := h.service.CreateCategory(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, err, "create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if handled, err := bind(c, h.validate, &req); handled {
		return err
	}
	category, err := h.service.RenameCategory(c.UserContext(), c.Params("id"), req.Name)
	if err != nil {
		return respondError(c, err, "update category")
	}
	return c.JSON(category)
}

// HandleDeleteCategory answers 409 while products still use the category.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "delete category")
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
