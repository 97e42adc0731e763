// Package invoice holds the pure calculation and formatting helpers shared by
// the invoice renderer and the PDF export pipeline. Everything here is
// deterministic and side-effect free.
package invoice

import "github.com/printdesk/printdesk/internal/models"

// Subtotal returns the order's aggregate amount. The upstream order service
// maintains TotalAmount as the sum of item totals; we trust it rather than
// re-summing items here.
func Subtotal(o models.Order) float64 {
	return o.TotalAmount
}

// Tax returns the tax contribution for the order. The rate is ignored
// entirely when IncludeTax is off.
func Tax(o models.Order, s models.InvoiceSettings) float64 {
	if !s.IncludeTax {
		return 0
	}
	return Subtotal(o) * s.TaxRate / 100
}

// Discount returns the discount contribution for the order. The rate is
// ignored entirely when IncludeDiscount is off.
func Discount(o models.Order, s models.InvoiceSettings) float64 {
	if !s.IncludeDiscount {
		return 0
	}
	return Subtotal(o) * s.DiscountRate / 100
}

// Total = subtotal + tax - discount.
func Total(o models.Order, s models.InvoiceSettings) float64 {
	return Subtotal(o) + Tax(o, s) - Discount(o, s)
}
