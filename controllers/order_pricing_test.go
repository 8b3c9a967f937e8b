package controllers

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakia12/bizconnect-backend/models"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  float64
		wantTax   float64
		wantTotal float64
	}{
		{"two units at 100", 200, 10, 260},
		{"zero subtotal still ships", 0, 0, 50},
		{"fractional subtotal rounds tax", 99.99, 5, 154.99},
		{"single cheap item", 10, 0.5, 60.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, total := computeTotals(tt.subtotal)
			assert.InDelta(t, tt.wantTax, tax, 1e-9)
			assert.InDelta(t, tt.wantTotal, total, 1e-9)
		})
	}
}

func TestComputeTotalsInvariant(t *testing.T) {
	for _, subtotal := range []float64{1, 49.5, 123.45, 10000} {
		tax, total := computeTotals(subtotal)
		assert.InDelta(t, subtotal+ShippingCost+tax, total, 1e-9)
	}
}

func TestFiniteAmount(t *testing.T) {
	assert.True(t, finiteAmount(260))
	assert.True(t, finiteAmount(0))
	assert.False(t, finiteAmount(math.NaN()))
	assert.False(t, finiteAmount(math.Inf(1)))
	assert.False(t, finiteAmount(math.Inf(-1)))
}

func TestGenerateOrderID(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d+-[0-9A-F]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateOrderID()
		require.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.OrderPending, models.OrderConfirmed},
		{models.OrderPending, models.OrderCancelled},
		{models.OrderConfirmed, models.OrderProcessing},
		{models.OrderConfirmed, models.OrderShipped},
		{models.OrderProcessing, models.OrderShipped},
		{models.OrderShipped, models.OrderDelivered},
		{models.OrderDelivered, models.OrderRefunded},
	}
	for _, tr := range allowed {
		assert.True(t, canTransition(tr.from, tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	rejected := []struct{ from, to string }{
		{models.OrderPending, models.OrderShipped},
		{models.OrderPending, models.OrderDelivered},
		{models.OrderShipped, models.OrderCancelled},
		{models.OrderDelivered, models.OrderConfirmed},
		{models.OrderCancelled, models.OrderConfirmed},
		{models.OrderRefunded, models.OrderPending},
		{models.OrderConfirmed, "something_else"},
	}
	for _, tr := range rejected {
		assert.False(t, canTransition(tr.from, tr.to), "%s -> %s should be rejected", tr.from, tr.to)
	}
}

func TestConfirmedOrderCanShipDirectly(t *testing.T) {
	// Same-day sellers mark a confirmed order shipped without passing
	// through processing first.
	assert.True(t, canTransition(models.OrderConfirmed, models.OrderShipped))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	assert.Empty(t, statusTransitions[models.OrderCancelled])
	assert.Empty(t, statusTransitions[models.OrderRefunded])
}

func TestStatusMessage(t *testing.T) {
	msg := statusMessage("ORD-1700000000000-AB12CD", models.OrderShipped)
	assert.Contains(t, msg, "shipped")
	assert.Contains(t, msg, "ORD-1700000000000-AB12CD")

	expected := map[string]string{
		models.OrderConfirmed:  "confirmed",
		models.OrderProcessing: "processed",
		models.OrderShipped:    "shipped",
		models.OrderDelivered:  "delivered",
		models.OrderCancelled:  "cancelled",
		models.OrderRefunded:   "refunded",
	}
	for status, word := range expected {
		assert.Contains(t, statusMessage("ORD-X", status), word)
	}

	assert.Contains(t, statusMessage("ORD-X", "on_hold"), "on_hold")
}
