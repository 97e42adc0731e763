package raster

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/printdesk/printdesk/internal/invoice/render"
	"github.com/printdesk/printdesk/internal/models"
)

func testDocument(t *testing.T) *render.Document {
	t.Helper()
	o := models.Order{
		OrderNumber: "ORD-7",
		ClientName:  "Acme",
		TotalAmount: 1000,
		Items: []models.OrderItem{
			{ItemName: "Posters", Quantity: 10, UnitPrice: 100, TotalAmount: 1000},
		},
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	s := models.DefaultInvoiceSettings()
	s.CompanyName = "PrintDesk"
	s.Notes = "Please pay within 14 days."
	return render.Render(o, s)
}

func TestCaptureDimensionsFollowScale(t *testing.T) {
	r := NewImageRasterizer(nil)
	doc := testDocument(t)

	img, err := r.Capture(context.Background(), doc, 1)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if img.Bounds().Dx() != 794 || img.Bounds().Dy() != 1123 {
		t.Fatalf("baseline capture = %v", img.Bounds())
	}

	img, err = r.Capture(context.Background(), doc, 2)
	if err != nil {
		t.Fatalf("capture x2: %v", err)
	}
	if img.Bounds().Dx() != 1588 || img.Bounds().Dy() != 2246 {
		t.Fatalf("x2 capture = %v", img.Bounds())
	}
}

func TestCaptureBackgroundIsWhite(t *testing.T) {
	r := NewImageRasterizer(nil)
	img, err := r.Capture(context.Background(), testDocument(t), 1)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	// a corner pixel inside the margin must be untouched paper
	if got := img.RGBAAt(2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("corner pixel = %v", got)
	}
}

func TestCaptureRejectsBadInput(t *testing.T) {
	r := NewImageRasterizer(nil)
	if _, err := r.Capture(context.Background(), nil, 1); err == nil {
		t.Fatalf("expected error for nil document")
	}
	if _, err := r.Capture(context.Background(), testDocument(t), 0); err == nil {
		t.Fatalf("expected error for zero scale")
	}
}

type stubLoader struct {
	img image.Image
	err error
}

func (s stubLoader) Load(ctx context.Context, url string) (image.Image, error) {
	return s.img, s.err
}

func TestLogoFailureDoesNotFailCapture(t *testing.T) {
	o := models.Order{OrderNumber: "ORD-8", ClientName: "Acme", TotalAmount: 10}
	s := models.DefaultInvoiceSettings()
	s.ShowLogo = true
	s.CompanyLogo = "https://example.com/logo.png"
	doc := render.Render(o, s)

	r := NewImageRasterizer(stubLoader{err: errors.New("boom")})
	if _, err := r.Capture(context.Background(), doc, 1); err != nil {
		t.Fatalf("capture should tolerate logo load failure: %v", err)
	}
}

func TestLogoDrawnWhenLoaderSucceeds(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			logo.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	o := models.Order{OrderNumber: "ORD-9", ClientName: "Acme", TotalAmount: 10}
	s := models.DefaultInvoiceSettings()
	s.ShowLogo = true
	s.CompanyLogo = "https://example.com/logo.png"
	doc := render.Render(o, s)

	r := NewImageRasterizer(stubLoader{img: logo})
	img, err := r.Capture(context.Background(), doc, 1)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	// middle of the logo box (margin 38 + 40 into an 80px logo)
	if got := img.RGBAAt(78, 78); got.R < 200 || got.G > 80 {
		t.Fatalf("expected red logo pixels, got %v", got)
	}
}
