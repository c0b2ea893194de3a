package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"storebill/internal/auth"
	"storebill/internal/httpx"
	"storebill/internal/models"
	"storebill/internal/validation"
)

// storeFor resolves the authenticated user's store. The store id is passed
// explicitly into everything below the handler layer; no ambient tenant lookup.
func storeFor(db *gorm.DB, r *http.Request) (*models.Store, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok || uid == 0 {
		return nil, false
	}
	var store models.Store
	if err := db.Where("user_id = ?", uid).First(&store).Error; err != nil {
		return nil, false
	}
	return &store, true
}

type StoreHandler struct{ DB *gorm.DB }

func NewStoreHandler(db *gorm.DB) *StoreHandler { return &StoreHandler{DB: db} }

type storeInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	Description string `json:"description"`
}

// Create: POST /stores. One store per user.
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	var existing models.Store
	if err := h.DB.Where("user_id = ?", uid).First(&existing).Error; err == nil {
		httpx.JSONError(w, http.StatusConflict, "store_already_exists", nil)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusInternalServerError, "store_create_failed", nil)
		return
	}
	var input storeInput
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
	store := models.Store{UserID: uid, Name: strings.TrimSpace(input.Name), Address: input.Address, Contact: input.Contact, Description: input.Description}
	if err := h.DB.Create(&store).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "store_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, store)
}

// Me: GET /stores/me
func (h *StoreHandler) Me(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFor(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, store)
}

// Update: PUT /stores/me. Partial update of own store.
func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFor(h.DB, r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "store_not_configured", nil)
		return
	}
	var input storeInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.Name != "" {
		store.Name = strings.TrimSpace(input.Name)
	}
	if input.Address != "" {
		store.Address = input.Address
	}
	if input.Contact != "" {
		store.Contact = input.Contact
	}
	if input.Description != "" {
		store.Description = input.Description
	}
	if err := h.DB.Save(store).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "store_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, store)
}
