package domain

import (
	"math"

	"checkout/internal/errors"
)

// Totals is the price breakdown computed once at checkout and frozen on the
// order afterwards.
type Totals struct {
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Total       float64
}

// PricingPolicy carries the deployment's flat delivery fee and tax rate.
type PricingPolicy struct {
	DeliveryFee float64
	TaxRate     float64
}

// ComputeTotals sums unitPrice x quantity over the items and applies the policy.
// Tax is rounded half-up to the nearest whole currency unit before it is added,
// so Total always equals Subtotal + DeliveryFee + Tax exactly.
func ComputeTotals(items []OrderItem, policy PricingPolicy) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, errors.NewEmptyCartError("an order must contain at least one item")
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	tax := math.Round(subtotal * policy.TaxRate)

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: policy.DeliveryFee,
		Tax:         tax,
		Total:       subtotal + policy.DeliveryFee + tax,
	}, nil
}
