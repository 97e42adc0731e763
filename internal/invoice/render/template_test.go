package render

import (
	"testing"
	"time"

	"github.com/printdesk/printdesk/internal/models"
)

func sampleOrder(itemCount int) models.Order {
	o := models.Order{
		ID:          "ord-1",
		OrderNumber: "ORD-100",
		ClientName:  "Kampala Signage Ltd",
		TotalAmount: 1250,
		CreatedAt:   time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	for i := 0; i < itemCount; i++ {
		o.Items = append(o.Items, models.OrderItem{
			ItemName:     "Business Cards",
			CategoryName: "Printing",
			Size:         "A4",
			Quantity:     100,
			UnitPrice:    2.5,
			TotalAmount:  250,
		})
	}
	return o
}

func TestTablePaddedToEightRows(t *testing.T) {
	doc := Render(sampleOrder(3), models.DefaultInvoiceSettings())
	if len(doc.Table.Rows) != 8 {
		t.Fatalf("rows = %d, want 8", len(doc.Table.Rows))
	}
	for i := 0; i < 3; i++ {
		if doc.Table.Rows[i].Blank {
			t.Fatalf("row %d should be a real item row", i)
		}
	}
	for i := 3; i < 8; i++ {
		if !doc.Table.Rows[i].Blank {
			t.Fatalf("row %d should be a padding row", i)
		}
	}
}

func TestTableGrowsPastEightRows(t *testing.T) {
	doc := Render(sampleOrder(10), models.DefaultInvoiceSettings())
	if len(doc.Table.Rows) != 10 {
		t.Fatalf("rows = %d, want 10 (no truncation, no padding)", len(doc.Table.Rows))
	}
	for i, r := range doc.Table.Rows {
		if r.Blank {
			t.Fatalf("row %d unexpectedly blank", i)
		}
	}
}

func TestColumnsByDisplayFormat(t *testing.T) {
	s := models.DefaultInvoiceSettings()
	s.ItemDisplayFormat = models.ItemDisplayCombined
	doc := Render(sampleOrder(1), s)
	if len(doc.Table.Columns) != 4 {
		t.Fatalf("combined columns = %d, want 4", len(doc.Table.Columns))
	}

	s.ItemDisplayFormat = models.ItemDisplaySeparate
	s.ShowItemCategory = true
	s.ShowItemSize = true
	doc = Render(sampleOrder(1), s)
	if len(doc.Table.Columns) != 6 {
		t.Fatalf("separate columns = %d, want 6", len(doc.Table.Columns))
	}
	if len(doc.Table.Rows[0].Cells) != 6 {
		t.Fatalf("separate cells = %d, want 6", len(doc.Table.Rows[0].Cells))
	}

	// column widths must always cover the full table
	var sum float64
	for _, c := range doc.Table.Columns {
		sum += c.WidthPct
	}
	if sum != 100 {
		t.Fatalf("column widths sum to %v, want 100", sum)
	}
}

func TestSummaryGating(t *testing.T) {
	s := models.DefaultInvoiceSettings()
	doc := Render(sampleOrder(1), s)
	if len(doc.Summary) != 2 {
		t.Fatalf("summary lines = %d, want 2 (subtotal + total)", len(doc.Summary))
	}

	s.IncludeTax = true
	s.TaxRate = 18
	s.IncludeDiscount = true
	s.DiscountRate = 10
	doc = Render(sampleOrder(1), s)
	if len(doc.Summary) != 4 {
		t.Fatalf("summary lines = %d, want 4", len(doc.Summary))
	}
	if doc.Summary[1].Label != "Tax (18%)" {
		t.Fatalf("tax label = %q", doc.Summary[1].Label)
	}
	if !doc.Summary[2].Negative {
		t.Fatalf("discount line should be negative")
	}
	if !doc.Summary[3].Emphasis {
		t.Fatalf("total line should carry emphasis")
	}
}

func TestFooterFallback(t *testing.T) {
	s := models.DefaultInvoiceSettings()
	s.ShowFooter = true
	s.CustomFooter = ""
	doc := Render(sampleOrder(1), s)
	if doc.Footer == nil || doc.Footer.Text != DefaultFooter {
		t.Fatalf("footer = %#v, want default thank-you line", doc.Footer)
	}

	s.CustomFooter = "See you soon"
	doc = Render(sampleOrder(1), s)
	if doc.Footer.Text != "See you soon" {
		t.Fatalf("footer = %q", doc.Footer.Text)
	}

	s.ShowFooter = false
	doc = Render(sampleOrder(1), s)
	if doc.Footer != nil {
		t.Fatalf("footer should be omitted when showFooter is off")
	}
}

func TestLogoRules(t *testing.T) {
	s := models.DefaultInvoiceSettings()
	s.ShowLogo = true
	s.CompanyLogo = ""
	doc := Render(sampleOrder(1), s)
	if doc.Header == nil {
		t.Fatalf("header expected")
	}
	if doc.Header.Logo != nil {
		t.Fatalf("logo should render nothing without a URL")
	}

	s.CompanyLogo = "https://example.com/logo.png"
	s.LogoSize = models.LogoLarge
	s.LogoZoom = 1.5
	s.LogoShowBorder = true
	doc = Render(sampleOrder(1), s)
	if doc.Header.Logo == nil {
		t.Fatalf("logo expected")
	}
	if doc.Header.Logo.SizePx != 150 {
		t.Fatalf("logo size = %v, want 150", doc.Header.Logo.SizePx)
	}
	if !doc.Header.Logo.Border {
		t.Fatalf("logo border expected")
	}

	// out-of-range zoom falls back to 1.0
	s.LogoZoom = 9
	doc = Render(sampleOrder(1), s)
	if doc.Header.Logo.SizePx != 100 {
		t.Fatalf("logo size = %v, want 100", doc.Header.Logo.SizePx)
	}

	s.ShowHeader = false
	doc = Render(sampleOrder(1), s)
	if doc.Header != nil {
		t.Fatalf("header should be omitted when showHeader is off")
	}
}

func TestRenderIsPure(t *testing.T) {
	o := sampleOrder(2)
	s := models.DefaultInvoiceSettings()
	a := Render(o, s)
	b := Render(o, s)
	if len(a.Table.Rows) != len(b.Table.Rows) || a.Client != b.Client {
		t.Fatalf("repeated renders differ")
	}
	if len(o.Items) != 2 {
		t.Fatalf("render mutated its input order")
	}
}
