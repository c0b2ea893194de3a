package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storebill/internal/auth"
	"storebill/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Plan{}, &models.User{}, &models.Store{}, &models.Customer{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedUserStore creates a user with a store and returns both.
func seedUserStore(t *testing.T, db *gorm.DB, username string) (models.User, models.Store) {
	t.Helper()
	user := models.User{Username: username, Email: username + "@test", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	store := models.Store{UserID: user.ID, Name: username + "'s shop", Address: "1 Main St", Contact: "555-0100"}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("store: %v", err)
	}
	return user, store
}

// authed builds a request carrying the user id in context.
func authed(t *testing.T, method, target, body string, uid uint) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(auth.WithUserID(req.Context(), uid))
}

func TestProductCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedUserStore(t, db, "prodowner")
	h := NewProductHandler(db)

	req := authed(t, http.MethodPost, "/products", `{"name":"Paracetamol","price":4.50,"stock":120}`, user.ID)
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !created.Price.Equal(decimal.RequireFromString("4.50")) {
		t.Fatalf("unexpected price: %s", created.Price)
	}

	listReq := authed(t, http.MethodGet, "/products", "", user.ID)
	listW := httptest.NewRecorder()
	h.List(listW, listReq)
	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", listW.Code)
	}
	var payload struct {
		Items  []models.Product `json:"items"`
		Total  int64            `json:"total"`
		Limit  int              `json:"limit"`
		Offset int              `json:"offset"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(payload.Items) != 1 || payload.Total != 1 {
		t.Fatalf("unexpected list: %#v", payload)
	}
	if payload.Items[0].Name != "Paracetamol" {
		t.Fatalf("unexpected product name: %s", payload.Items[0].Name)
	}
}

func TestProductCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedUserStore(t, db, "prodval")
	h := NewProductHandler(db)

	req := authed(t, http.MethodPost, "/products", `{"name":"","price":-1,"stock":-5}`, user.ID)
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation_failed") {
		t.Fatalf("expected validation_failed in body: %s", w.Body.String())
	}
}

func TestProductListScopedToStore(t *testing.T) {
	db := setupTestDB(t)
	owner, store := seedUserStore(t, db, "owner1")
	_, otherStore := seedUserStore(t, db, "owner2")
	if err := db.Create(&models.Product{StoreID: store.ID, Name: "Mine", Price: decimal.RequireFromString("1.00"), Stock: 1}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&models.Product{StoreID: otherStore.ID, Name: "Theirs", Price: decimal.RequireFromString("1.00"), Stock: 1}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewProductHandler(db)

	req := authed(t, http.MethodGet, "/products", "", owner.ID)
	w := httptest.NewRecorder()
	h.List(w, req)
	var payload struct {
		Items []models.Product `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].Name != "Mine" {
		t.Fatalf("expected only own products, got %#v", payload.Items)
	}
}

func TestProductSearch(t *testing.T) {
	db := setupTestDB(t)
	user, store := seedUserStore(t, db, "searcher")
	for _, name := range []string{"Aspirin", "Ibuprofen", "Aspirin Forte"} {
		if err := db.Create(&models.Product{StoreID: store.ID, Name: name, Price: decimal.RequireFromString("2.00"), Stock: 5}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	h := NewProductHandler(db)

	req := authed(t, http.MethodGet, "/products?q=aspirin", "", user.ID)
	w := httptest.NewRecorder()
	h.List(w, req)
	var payload struct {
		Items []models.Product `json:"items"`
		Total int64            `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 2 {
		t.Fatalf("expected 2 matches got %d", payload.Total)
	}
}

func TestProductNoStoreConfigured(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Username: "nostore", Email: "nostore@test", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	h := NewProductHandler(db)

	req := authed(t, http.MethodGet, "/products", "", user.ID)
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "store_not_configured") {
		t.Fatalf("expected store_not_configured: %s", w.Body.String())
	}
}
