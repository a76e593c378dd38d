package models_test

import (
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled"} {
		st, ok := models.ParseOrderStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, s, string(st))
	}

	_, ok := models.ParseOrderStatus("lost")
	assert.False(t, ok)
	_, ok = models.ParseOrderStatus("Pending")
	assert.False(t, ok, "statuses are case sensitive")
	_, ok = models.ParseOrderStatus("")
	assert.False(t, ok)
}

func TestOrderPatch_Apply(t *testing.T) {
	notes := "ring twice"
	order := &models.Order{
		DeliveryAddress: "1 Main St",
		DeliveryPhone:   "555-0100",
		DeliveryMethod:  "courier",
		PaymentMethod:   "cash",
		Status:          models.OrderStatusPending,
		Notes:           &notes,
	}

	addr := "2 Side St"
	status := "shipped"
	models.OrderPatch{DeliveryAddress: &addr, Status: &status}.Apply(order)

	assert.Equal(t, "2 Side St", order.DeliveryAddress)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
	// omitted fields are left untouched
	assert.Equal(t, "555-0100", order.DeliveryPhone)
	assert.Equal(t, "courier", order.DeliveryMethod)
	assert.Equal(t, "cash", order.PaymentMethod)
	assert.Equal(t, "ring twice", *order.Notes)

	assert.True(t, models.OrderPatch{}.IsEmpty())
	assert.False(t, models.OrderPatch{Status: &status}.IsEmpty())
}

func TestOrderStatistics_AddCount(t *testing.T) {
	var st models.OrderStatistics
	st.AddCount(models.OrderStatusDelivered, 2)
	st.AddCount(models.OrderStatusPending, 1)

	assert.Equal(t, int64(3), st.TotalOrders)
	assert.Equal(t, int64(2), st.DeliveredOrders)
	assert.Equal(t, int64(1), st.PendingOrders)
	assert.True(t, models.OrderStatusShipped.CountsAsRevenue())
	assert.False(t, models.OrderStatusCancelled.CountsAsRevenue())
}
