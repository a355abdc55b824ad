package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRankOrdering(t *testing.T) {
	assert.Equal(t, 0, StatusRank(StatusNew))
	assert.Equal(t, 1, StatusRank(StatusProcessing))
	assert.Equal(t, 2, StatusRank(StatusReady))
	assert.Equal(t, 3, StatusRank(StatusCompleted))
	assert.Equal(t, -1, StatusRank(OrderStatus("cancelled")))
}

func TestCanTransitionOnlyForward(t *testing.T) {
	assert.True(t, CanTransition(StatusNew, StatusProcessing))
	assert.True(t, CanTransition(StatusNew, StatusCompleted))
	assert.True(t, CanTransition(StatusProcessing, StatusReady))
	assert.True(t, CanTransition(StatusReady, StatusCompleted))

	assert.False(t, CanTransition(StatusProcessing, StatusNew))
	assert.False(t, CanTransition(StatusCompleted, StatusReady))
	assert.False(t, CanTransition(StatusReady, StatusReady))
	assert.False(t, CanTransition(OrderStatus("bogus"), StatusReady))
	assert.False(t, CanTransition(StatusNew, OrderStatus("bogus")))
}

func TestValidators(t *testing.T) {
	assert.True(t, IsValidStatus(StatusProcessing))
	assert.False(t, IsValidStatus(OrderStatus("shipped")))

	assert.True(t, IsValidPaymentMethod(PaymentQRIS))
	assert.False(t, IsValidPaymentMethod(PaymentMethod("crypto")))

	assert.True(t, IsValidDeliveryMethod(DeliveryPickup))
	assert.False(t, IsValidDeliveryMethod(DeliveryMethod("drone")))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Warung Nasi Bu Siti", "warung-nasi-bu-siti"},
		{"  Kopi  Senja  ", "kopi-senja"},
		{"Batik & Souvenir 21", "batik-souvenir-21"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
