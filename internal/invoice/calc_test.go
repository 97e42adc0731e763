package invoice

import (
	"testing"

	"github.com/printdesk/printdesk/internal/models"
)

func TestTotalsEndToEnd(t *testing.T) {
	o := models.Order{TotalAmount: 1250}
	s := models.InvoiceSettings{IncludeTax: true, TaxRate: 18, IncludeDiscount: true, DiscountRate: 10}
	if got := Subtotal(o); got != 1250 {
		t.Fatalf("subtotal = %v, want 1250", got)
	}
	if got := Tax(o, s); got != 225 {
		t.Fatalf("tax = %v, want 225", got)
	}
	if got := Discount(o, s); got != 125 {
		t.Fatalf("discount = %v, want 125", got)
	}
	if got := Total(o, s); got != 1350 {
		t.Fatalf("total = %v, want 1350", got)
	}
}

func TestTotalInvariant(t *testing.T) {
	cases := []struct {
		order    models.Order
		settings models.InvoiceSettings
	}{
		{models.Order{TotalAmount: 0}, models.InvoiceSettings{}},
		{models.Order{TotalAmount: 999.5}, models.InvoiceSettings{IncludeTax: true, TaxRate: 7.5}},
		{models.Order{TotalAmount: 42}, models.InvoiceSettings{IncludeDiscount: true, DiscountRate: 100}},
		{models.Order{TotalAmount: 100000}, models.InvoiceSettings{IncludeTax: true, TaxRate: 18, IncludeDiscount: true, DiscountRate: 3}},
	}
	for i, c := range cases {
		want := Subtotal(c.order) + Tax(c.order, c.settings) - Discount(c.order, c.settings)
		if got := Total(c.order, c.settings); got != want {
			t.Errorf("case %d: total = %v, want %v", i, got, want)
		}
	}
}

func TestRateGating(t *testing.T) {
	o := models.Order{TotalAmount: 500}
	s := models.InvoiceSettings{IncludeTax: false, TaxRate: 99, IncludeDiscount: false, DiscountRate: 99}
	if got := Tax(o, s); got != 0 {
		t.Fatalf("tax with includeTax=false = %v, want 0", got)
	}
	if got := Discount(o, s); got != 0 {
		t.Fatalf("discount with includeDiscount=false = %v, want 0", got)
	}
}

func TestCalculationsAreIdempotent(t *testing.T) {
	o := models.Order{TotalAmount: 777}
	s := models.InvoiceSettings{IncludeTax: true, TaxRate: 13, IncludeDiscount: true, DiscountRate: 4}
	first := Total(o, s)
	for i := 0; i < 10; i++ {
		if got := Total(o, s); got != first {
			t.Fatalf("call %d: total = %v, want %v", i, got, first)
		}
	}
}
