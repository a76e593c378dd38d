package rabbitmq

import "time"

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload published for order lifecycle changes.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	OldStatus   string    `json:"old_status,omitempty"`
	TotalPrice  float64   `json:"total_price"`
	ItemCount   int       `json:"item_count,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
