package controllers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jakia12/bizconnect-backend/models"
)

// Flat shipping and 5% tax; pricing beyond that (tiers, regions) is a
// storefront concern, not this API's.
const (
	ShippingCost = 50.0
	TaxRate      = 0.05
)

func computeTotals(subtotal float64) (tax, total float64) {
	tax = math.Round(subtotal*TaxRate*100) / 100
	return tax, subtotal + ShippingCost + tax
}

func finiteAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// generateOrderID builds the human-readable order reference shown to
// buyers and sellers, distinct from the Mongo _id.
func generateOrderID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), strings.ToUpper(suffix))
}

// statusTransitions is the allowed next-state table for seller updates.
// A confirmed order may ship directly, skipping processing, for sellers
// who fulfil same-day. cancelled and refunded are terminal.
var statusTransitions = map[string][]string{
	models.OrderPending:    {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed:  {models.OrderProcessing, models.OrderShipped, models.OrderCancelled, models.OrderRefunded},
	models.OrderProcessing: {models.OrderShipped, models.OrderCancelled, models.OrderRefunded},
	models.OrderShipped:    {models.OrderDelivered},
	models.OrderDelivered:  {models.OrderRefunded},
	models.OrderCancelled:  {},
	models.OrderRefunded:   {},
}

func canTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func statusMessage(orderID, status string) string {
	switch status {
	case models.OrderConfirmed:
		return fmt.Sprintf("Your order %s has been confirmed by the seller", orderID)
	case models.OrderProcessing:
		return fmt.Sprintf("Your order %s is being processed", orderID)
	case models.OrderShipped:
		return fmt.Sprintf("Your order %s has been shipped", orderID)
	case models.OrderDelivered:
		return fmt.Sprintf("Your order %s has been delivered", orderID)
	case models.OrderCancelled:
		return fmt.Sprintf("Your order %s has been cancelled", orderID)
	case models.OrderRefunded:
		return fmt.Sprintf("Your order %s has been refunded", orderID)
	default:
		return fmt.Sprintf("Your order %s is now %s", orderID, status)
	}
}
