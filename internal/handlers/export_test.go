package handlers

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/printdesk/printdesk/internal/invoice/raster"
	"github.com/printdesk/printdesk/internal/invoice/render"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/services"
	"github.com/printdesk/printdesk/internal/settings"
)

func TestExportDownload(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	order := models.Order{
		ID:          "22222222-0000-0000-0000-000000000001",
		OrderNumber: "ORD-77",
		ClientName:  "Acme Corp",
		TotalAmount: 1250,
		Items: []models.OrderItem{
			{ItemName: "Posters", Quantity: 25, UnitPrice: 50, TotalAmount: 1250},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	store := settings.NewStore(db)
	export := services.NewExportService(raster.NewImageRasterizer(nil))
	h := NewExportHandler(db, store, export, 0)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID+"/pdf", nil)
	req.SetPathValue("id", order.ID)
	w := httptest.NewRecorder()
	h.Download(w, authed(req, user.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, "Invoice_ORD-77_Acme_Corp_") {
		t.Fatalf("content disposition = %s", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("body is not a pdf")
	}
}

func TestExportDownloadUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	store := settings.NewStore(db)
	export := services.NewExportService(raster.NewImageRasterizer(nil))
	h := NewExportHandler(db, store, export, 0)

	req := httptest.NewRequest(http.MethodGet, "/orders/missing/pdf", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	h.Download(w, authed(req, user.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

// scaleRecordingRasterizer captures the scale the pipeline asked for.
type scaleRecordingRasterizer struct {
	scale float64
}

func (r *scaleRecordingRasterizer) Capture(ctx context.Context, doc *render.Document, scale float64) (*image.RGBA, error) {
	r.scale = scale
	return image.NewRGBA(image.Rect(0, 0, 10, 10)), nil
}

func TestExportDownloadUsesConfiguredPrintDPI(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	order := models.Order{ID: "22222222-0000-0000-0000-000000000003", OrderNumber: "ORD-78", ClientName: "Acme"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	rec := &scaleRecordingRasterizer{}
	h := NewExportHandler(db, settings.NewStore(db), services.NewExportService(rec), 192)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID+"/pdf?quality=print", nil)
	req.SetPathValue("id", order.ID)
	w := httptest.NewRecorder()
	h.Download(w, authed(req, user.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	// 192 DPI over the 96 DPI baseline is a 2x capture.
	if rec.scale != 2.0 {
		t.Fatalf("capture scale = %v, want 2.0", rec.scale)
	}

	// digital quality ignores the configured print DPI
	req2 := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID+"/pdf", nil)
	req2.SetPathValue("id", order.ID)
	w2 := httptest.NewRecorder()
	h.Download(w2, authed(req2, user.ID))
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	if rec.scale != 1.0 {
		t.Fatalf("digital capture scale = %v, want 1.0", rec.scale)
	}
}

func TestExportDownloadRequiresAuth(t *testing.T) {
	db := setupTestDB(t)

	store := settings.NewStore(db)
	export := services.NewExportService(raster.NewImageRasterizer(nil))
	h := NewExportHandler(db, store, export, 0)

	order := models.Order{ID: "22222222-0000-0000-0000-000000000002", ClientName: "Acme"}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID+"/pdf", nil)
	req.SetPathValue("id", order.ID)
	w := httptest.NewRecorder()
	h.Download(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}
