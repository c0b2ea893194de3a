package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storebill/internal/httpx"
	"storebill/internal/models"
	"storebill/internal/validation"
)

type ProductHandler struct{ DB *gorm.DB }

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

var searchSafeRegex = regexp.MustCompile(`[^a-zA-Z0-9 \-_]`)

// pagination reads limit/page query params, capping limit at 200.
func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	return limit, offset
}

// List: GET /products. Store-scoped, optional ?q= name search.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFor(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return
	}
	limit, offset := pagination(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	dbq := h.DB.Where("store_id = ?", store.ID)
	if q != "" {
		safe := searchSafeRegex.ReplaceAllString(q, "")
		like := "%" + strings.ToLower(safe) + "%"
		dbq = dbq.Where("lower(name) LIKE ?", like)
	}
	var total int64
	dbq.Model(&models.Product{}).Count(&total)
	var products []models.Product
	if err := dbq.Order("id desc").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFor(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return
	}
	var input struct {
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
		Stock int             `json:"stock"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.PositiveDecimal("price", input.Price, v)
	validation.NonNegativeInt("stock", input.Stock, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Product{StoreID: store.ID, Name: strings.TrimSpace(input.Name), Price: input.Price.Round(2), Stock: input.Stock}
	if err := h.DB.Create(&p).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "product_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}
