package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// OrderEventPublisher delivers order lifecycle events to the broker.
type OrderEventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}

// OrderItemInput is one line of a new order. Price is the unit price the
// client saw; it is trusted and snapshotted as is.
type OrderItemInput struct {
	ProductID string
	Quantity  int
	Price     float64
}

// CreateOrderInput is the data needed to place an order.
type CreateOrderInput struct {
	Items           []OrderItemInput
	DeliveryAddress string
	DeliveryPhone   string
	DeliveryMethod  string
	PaymentMethod   string
	Notes           *string
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo      repositories.OrderRepository
	publisher      OrderEventPublisher
	newOrderNumber OrderNumberGenerator
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case no events are published.
func NewOrderService(orderRepo repositories.OrderRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		publisher:      publisher,
		newOrderNumber: RandomOrderNumber,
	}
}

// WithOrderNumberGenerator replaces the order number source.
func (s *OrderService) WithOrderNumberGenerator(gen OrderNumberGenerator) *OrderService {
	s.newOrderNumber = gen
	return s
}

// OrderTotal returns Σ price×quantity computed in decimal arithmetic.
func OrderTotal(items []OrderItemInput) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.InexactFloat64()
}

// CreateOrder builds and persists a new order aggregate. Header and items
// are written in one transaction; an order number taken concurrently is
// retried transparently with a fresh number.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if item.Price < 0 {
			return nil, ErrInvalidPrice
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		TotalPrice:      OrderTotal(in.Items),
		Status:          models.OrderStatusPending,
		DeliveryAddress: in.DeliveryAddress,
		DeliveryPhone:   in.DeliveryPhone,
		DeliveryMethod:  in.DeliveryMethod,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
	}
	if order.DeliveryMethod == "" {
		order.DeliveryMethod = models.DefaultDeliveryMethod
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.DefaultPaymentMethod
	}

	if err := s.insertWithUniqueNumber(ctx, order); err != nil {
		return nil, err
	}

	s.publish(rabbitmq.OrderEvent{
		Type:        rabbitmq.EventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      string(order.Status),
		TotalPrice:  order.TotalPrice,
		ItemCount:   len(order.Items),
		OccurredAt:  time.Now().UTC(),
	})
	return order, nil
}

func (s *OrderService) insertWithUniqueNumber(ctx context.Context, order *models.Order) error {
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		number, err := s.newOrderNumber()
		if err != nil {
			return fmt.Errorf("failed to generate order number: %w", err)
		}
		taken, err := s.orderRepo.OrderNumberExists(ctx, number)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		order.OrderNumber = number
		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			return err
		}
		log.Printf("Order number %s was taken concurrently, retrying", number)
	}
	return ErrOrderNumberExhausted
}

// GetOrder retrieves a single order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// GetUserOrder retrieves an order owned by userID.
func (s *OrderService) GetUserOrder(ctx context.Context, userID, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListUserOrders returns a page of the user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string, skip, limit int) ([]models.Order, error) {
	return s.orderRepo.List(ctx, repositories.OrderFilter{UserID: userID, Skip: skip, Limit: limit})
}

// ListOrders returns a page of all orders, optionally filtered by status.
func (s *OrderService) ListOrders(ctx context.Context, status string, skip, limit int) ([]models.Order, error) {
	filter := repositories.OrderFilter{Skip: skip, Limit: limit}
	if status != "" {
		st, ok := models.ParseOrderStatus(status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		filter.Status = &st
	}
	return s.orderRepo.List(ctx, filter)
}

// UpdateOrderStatus sets any status of the fixed set; there is no
// adjacency check between the old and new status.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status string) (*models.Order, error) {
	st, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, st); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	old := order.Status
	order.Status = st
	if st != old {
		s.publishStatusChange(order, old)
	}
	return s.orderRepo.GetByID(ctx, id)
}

// UpdateOrder applies the non-nil fields of patch.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	if patch.Status != nil {
		if _, ok := models.ParseOrderStatus(*patch.Status); !ok {
			return nil, ErrInvalidStatus
		}
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return order, nil
	}

	old := order.Status
	patch.Apply(order)
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	if order.Status != old {
		s.publishStatusChange(order, old)
	}
	return s.orderRepo.GetByID(ctx, id)
}

// GetOrderStatistics recomputes per-status counts and revenue.
func (s *OrderService) GetOrderStatistics(ctx context.Context) (*models.OrderStatistics, error) {
	return s.orderRepo.Statistics(ctx)
}

func (s *OrderService) publishStatusChange(order *models.Order, old models.OrderStatus) {
	s.publish(rabbitmq.OrderEvent{
		Type:        rabbitmq.EventOrderStatusChanged,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      string(order.Status),
		OldStatus:   string(old),
		TotalPrice:  order.TotalPrice,
		OccurredAt:  time.Now().UTC(),
	})
}

// publish is best effort: the order is already committed.
func (s *OrderService) publish(event rabbitmq.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", event.Type, event.OrderID, err)
	}
}
