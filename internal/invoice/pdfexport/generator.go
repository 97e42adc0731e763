// Package pdfexport wraps a captured invoice bitmap into a single-page PDF.
// The bitmap is embedded as a flattened full-page image; no vector
// re-rendering happens below the visual layer.
package pdfexport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/printdesk/printdesk/internal/invoice"
	"github.com/printdesk/printdesk/internal/invoice/render"
	"github.com/printdesk/printdesk/internal/invoice/raster"
	"github.com/printdesk/printdesk/internal/models"
)

type Quality string

const (
	QualityDigital Quality = "digital"
	QualityPrint   Quality = "print"
)

const (
	baseDPI         = 96.0
	defaultPrintDPI = 300

	// px -> mm at the 96 DPI baseline. Applied to the bitmap dimensions on
	// both axes, so the page aspect ratio always equals the bitmap's.
	pxToMM = 0.264583

	jpegQualityDigital = 85
	jpegQualityPrint   = 95
)

// ErrGenerateFailed wraps every capture or encode failure: the operation is
// all-or-nothing and callers surface it as a single generic download error.
var ErrGenerateFailed = errors.New("invoice download failed")

// ProgressFunc receives coarse completion milestones (10, 50, 90, 100).
type ProgressFunc func(percent int)

// Options selects the raster quality tier. DPI is only consulted for print
// quality and defaults to 300.
type Options struct {
	Quality Quality
	DPI     int
}

func (o Options) scale() float64 {
	if o.Quality == QualityPrint {
		dpi := o.DPI
		if dpi <= 0 {
			dpi = defaultPrintDPI
		}
		return float64(dpi) / baseDPI
	}
	return 1
}

func (o Options) jpegQuality() int {
	if o.Quality == QualityPrint {
		return jpegQualityPrint
	}
	return jpegQualityDigital
}

// Generator runs the capture-and-encode pipeline against a Rasterizer seam.
type Generator struct {
	Raster raster.Rasterizer
	now    func() time.Time
}

func NewGenerator(r raster.Rasterizer) *Generator {
	return &Generator{Raster: r, now: time.Now}
}

// Generate captures doc, embeds the bitmap in a PDF sized to match it, and
// returns the PDF bytes together with the download filename for the order.
//
// Cancellation is honored only before the capture step starts; once capture
// begins the pipeline runs to completion or failure.
func (g *Generator) Generate(ctx context.Context, doc *render.Document, o models.Order, opts Options, progress ProgressFunc) ([]byte, string, error) {
	report := func(pct int) {
		if progress != nil {
			progress(pct)
		}
	}

	scale := opts.scale()
	report(10)

	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}

	img, err := g.Raster.Capture(ctx, doc, scale)
	if err != nil {
		return nil, "", fmt.Errorf("%w: capture: %v", ErrGenerateFailed, err)
	}
	report(50)

	pdfBytes, err := encodePDF(img, opts.jpegQuality(), report)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGenerateFailed, err)
	}
	report(100)

	return pdfBytes, invoice.Filename(o, g.now()), nil
}

func encodePDF(img image.Image, quality int, report func(int)) ([]byte, error) {
	var jpegBuf bytes.Buffer
	if err := jpeg.Encode(&jpegBuf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %v", err)
	}

	wMM, hMM := PageSizeMM(img.Bounds().Dx(), img.Bounds().Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: wMM, Ht: hMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("invoice", opt, &jpegBuf)
	pdf.ImageOptions("invoice", 0, 0, wMM, hMM, false, opt, 0, "")

	report(90)

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("assemble pdf: %v", err)
	}
	return out.Bytes(), nil
}

// PageSizeMM converts bitmap pixel dimensions to the PDF page size in mm,
// preserving the aspect ratio exactly.
func PageSizeMM(wPx, hPx int) (float64, float64) {
	return float64(wPx) * pxToMM, float64(hPx) * pxToMM
}
