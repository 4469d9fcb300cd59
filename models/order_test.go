package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrderStatus(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusProcessing, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransitionOrderStatus(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, IsValidOrderStatus(status))
	}
	assert.False(t, IsValidOrderStatus("returned"))
	assert.False(t, IsValidOrderStatus(""))
}
