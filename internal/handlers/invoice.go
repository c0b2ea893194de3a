package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storebill/internal/httpx"
	"storebill/internal/models"
	"storebill/internal/services"
	"storebill/internal/view"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

// Create: POST /invoices, the core operation. Validation failures map to 400
// with the service's error code; anything else is a persistence failure.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFor(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return
	}
	var req struct {
		CustomerID    uint                   `json:"customer_id"`
		NewCustomer   *services.NewCustomer  `json:"new_customer"`
		TaxPercentage *decimal.Decimal       `json:"tax_percentage"`
		Items         []services.InvoiceLine `json:"items"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	inv, err := h.Svc.Create(r.Context(), store.ID, services.CreateInvoiceInput{
		CustomerID:    req.CustomerID,
		NewCustomer:   req.NewCustomer,
		TaxPercentage: req.TaxPercentage,
		Items:         req.Items,
	})
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			httpx.JSONError(w, http.StatusBadRequest, ve.Code, map[string]string{ve.Field: ve.Detail})
			return
		}
		log.Error().Err(err).Uint("store_id", store.ID).Msg("invoice creation failed")
		httpx.JSONError(w, http.StatusInternalServerError, "persistence_failure", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// List: GET /invoices. Store-scoped with items and customer preloaded.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFor(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return
	}
	limit, offset := pagination(r)
	dbq := h.DB.Where("store_id = ?", store.ID)
	var total int64
	dbq.Model(&models.Invoice{}).Count(&total)
	var invs []models.Invoice
	if err := dbq.Preload("Items").Preload("Customer").Order("id desc").Limit(limit).Offset(offset).Find(&invs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":  invs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"store":  map[string]string{"name": store.Name, "address": store.Address, "contact": store.Contact},
	})
}

// invoiceByID loads an invoice by ?id=, scoped to the caller's store.
func (h *InvoiceHandler) invoiceByID(w http.ResponseWriter, r *http.Request) (*models.Invoice, *models.Store, bool) {
	store, ok := storeFor(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return nil, nil, false
	}
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return nil, nil, false
	}
	var inv models.Invoice
	if err := h.DB.Preload("Items.Product").Preload("Customer").Where("id = ? AND store_id = ?", id, store.ID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		}
		return nil, nil, false
	}
	return &inv, store, true
}

// Detail: GET /invoices/detail?id=...
func (h *InvoiceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	inv, _, ok := h.invoiceByID(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Print: GET /invoices/print?id=... renders a printable HTML invoice.
func (h *InvoiceHandler) Print(w http.ResponseWriter, r *http.Request) {
	inv, store, ok := h.invoiceByID(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderInvoice(w, store, inv); err != nil {
		log.Error().Err(err).Uint("invoice_id", inv.ID).Msg("invoice render failed")
		httpx.JSONError(w, http.StatusInternalServerError, "render_failed", nil)
	}
}
