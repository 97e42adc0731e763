package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printdesk/printdesk/internal/httpx"
	"github.com/printdesk/printdesk/internal/invoice"
	"github.com/printdesk/printdesk/internal/middleware"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/validation"
)

type OrderHandler struct {
	db *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit := 20
	offset := (page - 1) * limit

	var orders []models.Order
	var total int64

	db := h.db.Model(&models.Order{})
	if query != "" {
		db = db.Where("client_name LIKE ? OR order_number LIKE ?", "%"+query+"%", "%"+query+"%")
	}
	db.Count(&total)
	if err := db.Preload("Items").Order("created_at desc").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "list_failed", nil)
		return
	}

	var pageSum float64
	for _, o := range orders {
		pageSum += o.TotalAmount
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"orders":             orders,
		"page":               page,
		"limit":              limit,
		"total":              total,
		"page_total_display": invoice.FormatCurrencyIn(middleware.LocaleFrom(r), pageSum, middleware.CurrencyFrom(r)),
	})
}

type orderItemRequest struct {
	ItemName     string  `json:"item_name"`
	CategoryName string  `json:"category_name"`
	Size         string  `json:"size"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
}

type orderRequest struct {
	OrderNumber string             `json:"order_number"`
	ClientName  string             `json:"client_name"`
	AmountPaid  float64            `json:"amount_paid"`
	Items       []orderItemRequest `json:"items"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in orderRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.BadJSON(w)
		return
	}

	v := make(validation.Violations)
	validation.Required("client_name", in.ClientName, v)
	if len(in.Items) == 0 {
		v["items"] = "required"
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			v["items.quantity"] = "must_be_positive"
		}
		if it.UnitPrice < 0 {
			v["items.unit_price"] = "out_of_range"
		}
	}
	if !v.Empty() {
		httpx.Invalid(w, v)
		return
	}

	order := models.Order{
		ID:          uuid.NewString(),
		OrderNumber: in.OrderNumber,
		ClientName:  in.ClientName,
		AmountPaid:  in.AmountPaid,
	}
	for _, it := range in.Items {
		line := float64(it.Quantity) * it.UnitPrice
		order.Items = append(order.Items, models.OrderItem{
			ItemName:     it.ItemName,
			CategoryName: it.CategoryName,
			Size:         it.Size,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalAmount:  line,
		})
		order.TotalAmount += line
	}
	order.Balance = order.TotalAmount - order.AmountPaid

	if err := h.db.Create(&order).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	httpx.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	// Items go first, in one transaction, so a failed cleanup never orphans
	// item rows behind a deleted order.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "order_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
