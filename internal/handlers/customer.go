package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"storebill/internal/httpx"
	"storebill/internal/models"
	"storebill/internal/validation"
)

type CustomerHandler struct{ DB *gorm.DB }

func NewCustomerHandler(db *gorm.DB) *CustomerHandler { return &CustomerHandler{DB: db} }

type customerInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// List: GET /customers. Optional ?search= on name.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFor(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return
	}
	limit, offset := pagination(r)
	dbq := h.DB.Where("store_id = ?", store.ID)
	if q := strings.TrimSpace(r.URL.Query().Get("search")); q != "" {
		safe := searchSafeRegex.ReplaceAllString(q, "")
		dbq = dbq.Where("lower(name) LIKE ?", "%"+strings.ToLower(safe)+"%")
	}
	var total int64
	dbq.Model(&models.Customer{}).Count(&total)
	var customers []models.Customer
	if err := dbq.Order("id desc").Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": customers, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFor(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return
	}
	var input customerInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	c := models.Customer{StoreID: store.ID, Name: strings.TrimSpace(input.Name), Address: input.Address, Phone: input.Phone, Email: input.Email}
	if err := h.DB.Create(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// customerByID loads a customer by ?id=, scoped to the caller's store.
func (h *CustomerHandler) customerByID(w http.ResponseWriter, r *http.Request) (*models.Customer, *models.Store, bool) {
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
	var c models.Customer
	if err := h.DB.Where("id = ? AND store_id = ?", id, store.ID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_customer", nil)
		}
		return nil, nil, false
	}
	return &c, store, true
}

// Update: PUT /customers/update?id=...
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.customerByID(w, r)
	if !ok {
		return
	}
	var input customerInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	c.Name = strings.TrimSpace(input.Name)
	c.Address = input.Address
	c.Phone = input.Phone
	c.Email = input.Email
	if err := h.DB.Save(c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete: DELETE /customers/delete?id=...
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.customerByID(w, r)
	if !ok {
		return
	}
	if err := h.DB.Delete(c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
