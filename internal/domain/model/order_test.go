package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPaid, OrderStatusProcessing, true},
		{OrderStatusPaid, OrderStatusCompleted, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusCompleted, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		//وضعیت‌های پایانی هیچ گذاری ندارند
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestDeliveryClassPartition(t *testing.T) {
	//هر دسته دقیقا یک کلاس دارد
	assert.Equal(t, DeliveryClassPhysical, CategoryOrganic.DeliveryClass())
	assert.Equal(t, DeliveryClassPhysical, CategoryHandicraft.DeliveryClass())
	assert.Equal(t, DeliveryClassDigital, CategoryHeritage.DeliveryClass())
	assert.Equal(t, DeliveryClassDigital, CategoryService.DeliveryClass())
	assert.Equal(t, DeliveryClassDigital, CategoryDigital.DeliveryClass())

	//دسته ناشناخته دیجیتال است
	assert.Equal(t, DeliveryClassDigital, ItemCategory("UNKNOWN").DeliveryClass())
}
