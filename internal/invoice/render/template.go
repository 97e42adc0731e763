package render

import (
	"fmt"
	"strconv"

	"github.com/printdesk/printdesk/internal/invoice"
	"github.com/printdesk/printdesk/internal/models"
)

// Render lays out the Professional invoice template for one order under the
// given settings. It is a pure function: it never mutates its inputs and
// performs no I/O.
func Render(o models.Order, s models.InvoiceSettings) *Document {
	doc := &Document{
		WidthPx:  PageWidthPx,
		HeightPx: PageHeightPx,
		MarginPx: MarginPx,
		Title:    "INVOICE",
	}

	if s.ShowHeader {
		doc.Header = buildHeader(s)
	}

	doc.Client = ClientBlock{
		Name:        o.ClientName,
		OrderNumber: o.OrderNumber,
		Date:        o.CreatedAt.Format("02/01/2006"),
	}

	doc.Table = buildTable(o, s)
	doc.Summary = buildSummary(o, s)
	doc.Payments = buildPayments(s)
	doc.Notes = s.Notes

	if s.ShowFooter {
		text := s.CustomFooter
		if text == "" {
			text = DefaultFooter
		}
		doc.Footer = &Footer{Text: text}
	}
	return doc
}

func buildHeader(s models.InvoiceSettings) *Header {
	h := &Header{
		CompanyName: s.CompanyName,
		Address:     s.CompanyAddress,
		Email:       s.CompanyEmail,
		Phone:       s.CompanyPhone,
		TIN:         s.TINNumber,
	}
	// A logo toggle with no configured URL renders nothing rather than erroring.
	if s.ShowLogo && s.CompanyLogo != "" {
		h.Logo = &Logo{
			URL:    s.CompanyLogo,
			SizePx: logoBasePx(s.LogoSize) * logoZoom(s.LogoZoom),
			Border: s.LogoShowBorder,
		}
	}
	return h
}

func logoBasePx(size models.LogoSize) float64 {
	switch size {
	case models.LogoSmall:
		return LogoSmallPx
	case models.LogoLarge:
		return LogoLargePx
	default:
		return LogoMediumPx
	}
}

func logoZoom(zoom float64) float64 {
	if zoom < 0.5 || zoom > 3.0 {
		return 1.0
	}
	return zoom
}

func buildTable(o models.Order, s models.InvoiceSettings) Table {
	t := Table{Columns: columnsFor(s)}
	for _, item := range o.Items {
		t.Rows = append(t.Rows, Row{Cells: cellsFor(item, s, len(t.Columns))})
	}
	for len(t.Rows) < MinTableRows {
		t.Rows = append(t.Rows, Row{Cells: make([]string, len(t.Columns)), Blank: true})
	}
	return t
}

// columnsFor returns the column set for the active item-display format.
// Combined format folds category/size into the item cell; separate format
// gives each enabled field its own column, reclaiming width for the item
// column when fields are disabled.
func columnsFor(s models.InvoiceSettings) []Column {
	qty := Column{Title: "QTY", WidthPct: 10, Align: AlignCenter}
	unit := Column{Title: "UNIT PRICE", WidthPct: 17.5, Align: AlignRight}
	amount := Column{Title: "AMOUNT", WidthPct: 17.5, Align: AlignRight}

	if s.ItemDisplayFormat == models.ItemDisplaySeparate {
		itemPct := 55.0
		cols := []Column{{Title: "ITEM", Align: AlignLeft}}
		if s.ShowItemCategory {
			cols = append(cols, Column{Title: "CATEGORY", WidthPct: 15, Align: AlignLeft})
			itemPct -= 15
		}
		if s.ShowItemSize {
			cols = append(cols, Column{Title: "SIZE", WidthPct: 10, Align: AlignCenter})
			itemPct -= 10
		}
		cols[0].WidthPct = itemPct
		return append(cols, qty, unit, amount)
	}
	return []Column{{Title: "ITEM", WidthPct: 55, Align: AlignLeft}, qty, unit, amount}
}

func cellsFor(item models.OrderItem, s models.InvoiceSettings, n int) []string {
	cells := make([]string, 0, n)
	cells = append(cells, invoice.FormatItemName(item, s))
	if s.ItemDisplayFormat == models.ItemDisplaySeparate {
		if s.ShowItemCategory {
			cells = append(cells, item.CategoryName)
		}
		if s.ShowItemSize {
			cells = append(cells, item.Size)
		}
	}
	cells = append(cells,
		strconv.Itoa(item.Quantity),
		invoice.FormatCurrency(item.UnitPrice, ""),
		invoice.FormatCurrency(item.TotalAmount, ""),
	)
	return cells
}

// buildSummary always emits subtotal and total; tax and discount lines only
// appear when their include flags are on. Discounts display as a negative
// contribution.
func buildSummary(o models.Order, s models.InvoiceSettings) []SummaryLine {
	lines := []SummaryLine{
		{Label: "Subtotal", Value: invoice.FormatCurrency(invoice.Subtotal(o), "")},
	}
	if s.IncludeTax {
		lines = append(lines, SummaryLine{
			Label: fmt.Sprintf("Tax (%s%%)", trimRate(s.TaxRate)),
			Value: invoice.FormatCurrency(invoice.Tax(o, s), ""),
		})
	}
	if s.IncludeDiscount {
		lines = append(lines, SummaryLine{
			Label:    fmt.Sprintf("Discount (%s%%)", trimRate(s.DiscountRate)),
			Value:    invoice.FormatCurrency(invoice.Discount(o, s), ""),
			Negative: true,
		})
	}
	return append(lines, SummaryLine{
		Label:    "Total",
		Value:    invoice.FormatCurrency(invoice.Total(o, s), ""),
		Emphasis: true,
	})
}

func trimRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

func buildPayments(s models.InvoiceSettings) []PaymentCard {
	var cards []PaymentCard
	if len(s.BankDetails) > 0 {
		card := PaymentCard{Title: "BANK TRANSFER"}
		for _, d := range s.BankDetails {
			card.Lines = append(card.Lines, fmt.Sprintf("%s - %s - %s", d.BankName, d.AccountName, d.AccountNumber))
		}
		cards = append(cards, card)
	}
	if len(s.MobileMoneyDetails) > 0 {
		card := PaymentCard{Title: "MOBILE MONEY"}
		for _, d := range s.MobileMoneyDetails {
			card.Lines = append(card.Lines, fmt.Sprintf("%s - %s - %s", d.Provider, d.ContactName, d.PhoneNumber))
		}
		cards = append(cards, card)
	}
	return cards
}
