// Package render turns an (order, settings) pair into a fixed-geometry page
// description of the Professional invoice layout. The output is a pure value;
// rasterization lives in the raster package.
package render

// Page geometry. A4 at the 96 DPI baseline: 210x297 mm -> 794x1123 px, with
// 10 mm (38 px) side margins. The capture step reproduces these dimensions
// exactly, so they must not depend on content.
const (
	PageWidthPx  = 794.0
	PageHeightPx = 1123.0
	MarginPx     = 38.0

	// MinTableRows keeps short invoices visually stable: the item table is
	// padded with blank rows up to this count. Longer invoices grow past it.
	MinTableRows = 8
)

// Logo pixel sizes keyed by settings.LogoSize, before LogoZoom is applied.
const (
	LogoSmallPx  = 60.0
	LogoMediumPx = 80.0
	LogoLargePx  = 100.0
)

// DefaultFooter is used when showFooter is on but customFooter is blank.
const DefaultFooter = "Thank you for your business!"

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Column describes one item-table column. Widths are percentages of the
// table's content width and always sum to 100.
type Column struct {
	Title    string
	WidthPct float64
	Align    Align
}

// Row is one item-table data row. Blank rows pad the table up to MinTableRows.
type Row struct {
	Cells []string
	Blank bool
}

type Table struct {
	Columns []Column
	Rows    []Row
}

// Logo is present only when showLogo is on and a logo URL is configured.
type Logo struct {
	URL    string
	SizePx float64 // base size x zoom
	Border bool
}

// Header carries the company identity block. Nil on the Document when
// showHeader is off.
type Header struct {
	Logo        *Logo
	CompanyName string
	Address     string
	Email       string
	Phone       string
	TIN         string
}

// ClientBlock identifies the invoice recipient and order reference.
type ClientBlock struct {
	Name        string
	OrderNumber string
	Date        string
}

// SummaryLine is one row of the totals block. Negative lines (discounts)
// render with a leading minus.
type SummaryLine struct {
	Label    string
	Value    string
	Negative bool
	Emphasis bool // the grand-total line
}

// PaymentCard groups the payment options of one kind (bank / mobile money).
type PaymentCard struct {
	Title string
	Lines []string
}

type Footer struct {
	Text string
}

// Document is the full page description consumed by the rasterizer. All
// fields are plain values; rendering the same (order, settings) twice yields
// identical documents.
type Document struct {
	WidthPx  float64
	HeightPx float64
	MarginPx float64

	Title    string
	Header   *Header
	Client   ClientBlock
	Table    Table
	Summary  []SummaryLine
	Payments []PaymentCard
	Notes    string
	Footer   *Footer
}
