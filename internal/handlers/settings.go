package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/printdesk/printdesk/internal/httpx"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/settings"
	"github.com/printdesk/printdesk/internal/validation"
)

type SettingsHandler struct {
	store *settings.Store
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{store: settings.NewStore(db)}
}

// Store exposes the underlying façade for wiring (the PDF handler shares it).
func (h *SettingsHandler) Store() *settings.Store { return h.store }

// settingsError maps façade errors onto API status codes.
func settingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settings.ErrAuthenticationRequired):
		httpx.JSONError(w, http.StatusUnauthorized, "authentication_required", nil)
	case errors.Is(err, settings.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "setting_not_found", nil)
	case errors.Is(err, settings.ErrStorageUnavailable):
		httpx.JSONError(w, http.StatusServiceUnavailable, "settings_storage_unavailable", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "settings_error", nil)
	}
}

func (h *SettingsHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.LoadDefault(r.Context())
	if err != nil {
		settingsError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

type saveSettingsRequest struct {
	Name      string                 `json:"name"`
	IsDefault bool                   `json:"isDefault"`
	Settings  models.InvoiceSettings `json:"settings"`
}

func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in saveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.BadJSON(w)
		return
	}

	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, 100, v)
	if in.Settings.IncludeTax {
		validation.Percent("taxRate", in.Settings.TaxRate, v)
	}
	if in.Settings.IncludeDiscount {
		validation.Percent("discountRate", in.Settings.DiscountRate, v)
	}
	if !v.Empty() {
		httpx.Invalid(w, v)
		return
	}

	rec, err := h.store.Save(r.Context(), in.Settings, in.Name, in.IsDefault)
	if err != nil {
		settingsError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List(r.Context())
	if err != nil {
		settingsError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"settings": recs})
}

func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.store.Delete(r.Context(), uint(id)); err != nil {
		settingsError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *SettingsHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.store.SetDefault(r.Context(), uint(id)); err != nil {
		settingsError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "default_set"})
}
