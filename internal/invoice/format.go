package invoice

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/printdesk/printdesk/internal/models"
)

// DefaultCurrency is the currency code used when none is supplied.
const DefaultCurrency = "UGX"

// dateLayouts are tried in order when parsing incoming date strings.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatCurrency renders value as an integer-rounded currency string with
// locale grouping, e.g. "UGX 1,250". An empty code falls back to
// DefaultCurrency.
func FormatCurrency(value float64, code string) string {
	return FormatCurrencyIn(language.English, value, code)
}

// FormatCurrencyIn is FormatCurrency with an explicit locale, fed by the
// request preference middleware.
func FormatCurrencyIn(tag language.Tag, value float64, code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("%s %v", code, number.Decimal(math.Round(value), number.MaxFractionDigits(0)))
}

// FormatDate converts an ISO-ish date string to dd/MM/yyyy. Unparseable input
// is returned unchanged; this function never fails.
func FormatDate(value string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return value
}

// FormatItemName builds the display text for one item-table cell.
//
// Combined format concatenates the enabled fragments with " - ", with the
// size parenthesized: "Printing - Business Cards - (A4)". Separate format
// returns the item name only; category and size become their own columns at
// the call site. Disabled or empty fragments are simply omitted.
func FormatItemName(item models.OrderItem, s models.InvoiceSettings) string {
	if s.ItemDisplayFormat == models.ItemDisplaySeparate {
		return item.ItemName
	}
	var parts []string
	if s.ShowItemCategory && item.CategoryName != "" {
		parts = append(parts, item.CategoryName)
	}
	if s.ShowItemName && item.ItemName != "" {
		parts = append(parts, item.ItemName)
	}
	if s.ShowItemSize && item.Size != "" {
		parts = append(parts, "("+item.Size+")")
	}
	return strings.Join(parts, " - ")
}

// Filename builds the download name for an order's invoice PDF:
// Invoice_<order_number-or-id8>_<client≤20>_<YYYY-MM-DD>.pdf. The client name
// keeps alphanumerics only, with runs of whitespace collapsed to single
// underscores. The timestamp is passed in so callers (and tests) control the
// date component.
func Filename(o models.Order, at time.Time) string {
	ref := o.OrderNumber
	if ref == "" {
		ref = o.ID
		if len(ref) > 8 {
			ref = ref[:8]
		}
	}
	client := sanitizeClient(o.ClientName)
	if len(client) > 20 {
		client = client[:20]
	}
	if client == "" {
		client = "Client"
	}
	return fmt.Sprintf("Invoice_%s_%s_%s.pdf", ref, client, at.Format("2006-01-02"))
}

func sanitizeClient(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			pendingSep = true
		}
		// every other character is stripped
	}
	return b.String()
}
