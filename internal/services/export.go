// Package services hosts the business-logic layer between HTTP handlers and
// the invoice core packages.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/printdesk/printdesk/internal/invoice/pdfexport"
	"github.com/printdesk/printdesk/internal/invoice/raster"
	"github.com/printdesk/printdesk/internal/invoice/render"
	"github.com/printdesk/printdesk/internal/models"
)

// ErrExportInProgress is returned when a generation for the same order is
// already running. Concurrent calls for one order are rejected rather than
// queued; the caller retries once the current one finishes. Other orders are
// unaffected.
var ErrExportInProgress = errors.New("export_in_progress")

// ExportService renders an order under the given settings and runs the
// capture-and-encode pipeline. Each generation works on the (order, settings)
// snapshot passed in.
type ExportService struct {
	gen *pdfexport.Generator

	mu   sync.Mutex
	busy map[string]bool
}

func NewExportService(r raster.Rasterizer) *ExportService {
	return &ExportService{gen: pdfexport.NewGenerator(r), busy: make(map[string]bool)}
}

// Generate produces the invoice PDF bytes and download filename.
func (s *ExportService) Generate(ctx context.Context, o models.Order, settings models.InvoiceSettings, opts pdfexport.Options, progress pdfexport.ProgressFunc) ([]byte, string, error) {
	key := o.ID
	if key == "" {
		key = o.OrderNumber
	}

	s.mu.Lock()
	if s.busy[key] {
		s.mu.Unlock()
		return nil, "", ErrExportInProgress
	}
	s.busy[key] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.busy, key)
		s.mu.Unlock()
	}()

	doc := render.Render(o, settings)
	return s.gen.Generate(ctx, doc, o, opts, progress)
}
