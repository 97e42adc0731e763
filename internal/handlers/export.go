package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/printdesk/printdesk/internal/httpx"
	"github.com/printdesk/printdesk/internal/invoice/pdfexport"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/services"
	"github.com/printdesk/printdesk/internal/settings"
)

// ExportHandler serves invoice PDF downloads for stored orders. printDPI is
// the configured raster density for print-quality requests; zero falls back
// to the pipeline default.
type ExportHandler struct {
	db       *gorm.DB
	store    *settings.Store
	export   *services.ExportService
	printDPI int
}

func NewExportHandler(db *gorm.DB, store *settings.Store, export *services.ExportService, printDPI int) *ExportHandler {
	return &ExportHandler{db: db, store: store, export: export, printDPI: printDPI}
}

// Download renders GET /orders/{id}/pdf?quality=digital|print. The invoice is
// rendered with the caller's default settings.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var order models.Order
	err := h.db.Preload("Items").Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "order_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "lookup_failed", nil)
		return
	}

	cfg, err := h.store.LoadDefault(r.Context())
	if err != nil {
		settingsError(w, err)
		return
	}

	opts := pdfexport.Options{Quality: pdfexport.QualityDigital}
	if r.URL.Query().Get("quality") == string(pdfexport.QualityPrint) {
		opts.Quality = pdfexport.QualityPrint
		opts.DPI = h.printDPI
	}

	data, filename, err := h.export.Generate(r.Context(), order, cfg, opts, nil)
	if errors.Is(err, services.ErrExportInProgress) {
		httpx.JSONError(w, http.StatusConflict, "export_in_progress", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "invoice_download_failed", nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		_ = err
	}
}
