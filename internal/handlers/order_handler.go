package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. The admin
// routes are registered before /my/:id so "statistics" is never taken for
// an ID.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	orderRoutes := router.Group("/orders", authRequired)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/my", h.HandleGetMyOrders)
	orderRoutes.Get("/my/:id", h.HandleGetMyOrder)

	admin := orderRoutes.Group("/admin", middleware.AdminOnly())
	admin.Get("/", h.HandleGetOrders)
	admin.Get("/statistics", h.HandleGetStatistics)
	admin.Get("/:id", h.HandleGetOrderByID)
	admin.Put("/:id", h.HandleUpdateOrder)
	admin.Put("/:id/status", h.HandleUpdateOrderStatus)
}

// OrderItemRequest is one line of a new order.
type OrderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateOrderRequest represents the request body for placing an order.
// Item quantity and price rules are enforced by the service so they map to
// the same messages for every caller.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"dive"`
	DeliveryAddress string             `json:"delivery_address" validate:"required,max=500"`
	DeliveryPhone   string             `json:"delivery_phone" validate:"required,max=30"`
	DeliveryMethod  string             `json:"delivery_method" validate:"omitempty,max=50"`
	PaymentMethod   string             `json:"payment_method" validate:"omitempty,max=50"`
	Notes           *string            `json:"notes" validate:"omitempty,max=1000"`
}

// HandleCreateOrder places an order for the caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if len(req.Items) == 0 {
		return respondError(c, services.ErrEmptyOrder, "create order")
	}
	if handled, err := validateStruct(c, h.validate, &req); handled {
		return err
	}

	in := services.CreateOrderInput{
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPhone:   req.DeliveryPhone,
		DeliveryMethod:  req.DeliveryMethod,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, services.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	user := middleware.CurrentUser(c)
	createdOrder, err := h.service.CreateOrder(c.UserContext(), user.ID, in)
	if err != nil {
		log.Printf("Error creating order for user %s: %v", user.ID, err)
		return respondError(c, err, "create order")
	}
	return c.JSON(createdOrder)
}

// HandleGetMyOrders lists the caller's orders, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	p, handled, err := page(c, h.validate)
	if handled {
		return err
	}
	orders, err := h.service.ListUserOrders(c.UserContext(), middleware.CurrentUser(c).ID, p.Skip, p.Limit)
	if err != nil {
		return respondError(c, err, "retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetMyOrder returns one of the caller's orders.
func (h *OrderHandler) HandleGetMyOrder(c *fiber.Ctx) error {
	order, err := h.service.GetUserOrder(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("id"))
	if err != nil {
		return respondError(c, err, "retrieve order")
	}
	return c.JSON(order)
}

// HandleGetOrders lists all orders, optionally filtered by ?status=.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	p, handled, err := page(c, h.validate)
	if handled {
		return err
	}
	orders, err := h.service.ListOrders(c.UserContext(), c.Query("status"), p.Skip, p.Limit)
	if err != nil {
		return respondError(c, err, "retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "retrieve order")
	}
	return c.JSON(order)
}

// HandleUpdateOrder applies a partial update.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var patch models.OrderPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing request body for order update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for order update",
			"error":   err.Error(),
		})
	}
	order, err := h.service.UpdateOrder(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err, "update order")
	}
	return c.JSON(order)
}

// HandleUpdateOrderStatus updates the status of an existing order. The
// status comes from the JSON body or the ?status= query parameter.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&updateData); err != nil {
			log.Printf("Error parsing request body for status update: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body for status update",
				"error":   err.Error(),
			})
		}
	}
	if updateData.Status == "" {
		updateData.Status = c.Query("status")
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.service.UpdateOrderStatus(c.UserContext(), orderID, updateData.Status)
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return respondError(c, err, "update order status")
	}
	return c.JSON(order)
}

// HandleGetStatistics returns per-status counts and revenue.
func (h *OrderHandler) HandleGetStatistics(c *fiber.Ctx) error {
	stats, err := h.service.GetOrderStatistics(c.UserContext())
	if err != nil {
		return respondError(c, err, "compute order statistics")
	}
	return c.JSON(stats)
}
