package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every accepted status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus checks s against the fixed status set. Any member of the
// set may replace any other; there is no transition graph.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// CountsAsRevenue reports whether orders in this status contribute to revenue.
func (s OrderStatus) CountsAsRevenue() bool {
	return s == OrderStatusShipped || s == OrderStatusDelivered
}

const (
	DefaultDeliveryMethod = "courier"
	DefaultPaymentMethod  = "cash"
)

// OrderItem represents a single item within an order.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36);not null"`
	ProductID string  `json:"product_id" gorm:"index;type:varchar(36);not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"` // Price at the time of order
}

// Order represents a customer order.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber     string      `json:"order_number" gorm:"uniqueIndex;type:varchar(8);not null"`
	UserID          string      `json:"user_id" gorm:"index;type:varchar(36);not null"`
	User            *User       `json:"-" gorm:"foreignKey:UserID"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalPrice      float64     `json:"total_price" gorm:"not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);index;not null;default:'pending'"`
	DeliveryAddress string      `json:"delivery_address" gorm:"not null"`
	DeliveryPhone   string      `json:"delivery_phone" gorm:"type:varchar(30);not null"`
	DeliveryMethod  string      `json:"delivery_method" gorm:"type:varchar(50);not null"`
	PaymentMethod   string      `json:"payment_method" gorm:"type:varchar(50);not null"`
	Notes           *string     `json:"notes"`
	CreatedAt       time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderPatch carries the optional fields of a partial order update.
// A nil field leaves the stored value untouched.
type OrderPatch struct {
	DeliveryAddress *string `json:"delivery_address"`
	DeliveryPhone   *string `json:"delivery_phone"`
	DeliveryMethod  *string `json:"delivery_method"`
	PaymentMethod   *string `json:"payment_method"`
	Notes           *string `json:"notes"`
	Status          *string `json:"status"`
}

// IsEmpty reports whether the patch changes nothing.
func (p OrderPatch) IsEmpty() bool {
	return p.DeliveryAddress == nil && p.DeliveryPhone == nil && p.DeliveryMethod == nil &&
		p.PaymentMethod == nil && p.Notes == nil && p.Status == nil
}

// Apply copies the supplied fields onto o. Status must already be validated.
func (p OrderPatch) Apply(o *Order) {
	if p.DeliveryAddress != nil {
		o.DeliveryAddress = *p.DeliveryAddress
	}
	if p.DeliveryPhone != nil {
		o.DeliveryPhone = *p.DeliveryPhone
	}
	if p.DeliveryMethod != nil {
		o.DeliveryMethod = *p.DeliveryMethod
	}
	if p.PaymentMethod != nil {
		o.PaymentMethod = *p.PaymentMethod
	}
	if p.Notes != nil {
		notes := *p.Notes
		o.Notes = &notes
	}
	if p.Status != nil {
		o.Status = OrderStatus(*p.Status)
	}
}

// OrderStatistics is a point-in-time aggregate over all orders.
type OrderStatistics struct {
	TotalOrders      int64   `json:"total_orders"`
	PendingOrders    int64   `json:"pending_orders"`
	ConfirmedOrders  int64   `json:"confirmed_orders"`
	ProcessingOrders int64   `json:"processing_orders"`
	ShippedOrders    int64   `json:"shipped_orders"`
	DeliveredOrders  int64   `json:"delivered_orders"`
	CancelledOrders  int64   `json:"cancelled_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
}

// AddCount records n orders in status s.
func (st *OrderStatistics) AddCount(s OrderStatus, n int64) {
	st.TotalOrders += n
	switch s {
	case OrderStatusPending:
		st.PendingOrders += n
	case OrderStatusConfirmed:
		st.ConfirmedOrders += n
	case OrderStatusProcessing:
		st.ProcessingOrders += n
	case OrderStatusShipped:
		st.ShippedOrders += n
	case OrderStatusDelivered:
		st.DeliveredOrders += n
	case OrderStatusCancelled:
		st.CancelledOrders += n
	}
}
