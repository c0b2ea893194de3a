package handlers

import (
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"storebill/internal/auth"
	"storebill/internal/httpx"
	"storebill/internal/models"
	"storebill/internal/validation"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/register", h.register)
	mux.HandleFunc("/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var input struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("username", input.Username, v)
	validation.Required("email", input.Email, v)
	validation.Required("password", input.Password, v)
	if input.Password != "" {
		validation.MinLen("password", input.Password, 8, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if input.Password != input.Password2 {
		httpx.JSONError(w, http.StatusBadRequest, "passwords_do_not_match", map[string]string{"password2": "must match password"})
		return
	}
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "registration_failed", nil)
		return
	}
	user := models.User{Username: strings.TrimSpace(input.Username), Email: strings.TrimSpace(input.Email), Password: hash}
	if err := h.DB.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			httpx.JSONError(w, http.StatusConflict, "username_or_email_taken", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "registration_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var user models.User
	if err := h.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if !auth.CheckPassword(user.Password, input.Password) {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	token := auth.IssueToken(user.ID, time.Now())
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"token":   token,
		"user":    map[string]string{"username": user.Username, "email": user.Email},
	})
}

func isDuplicate(err error) bool {
	return err == gorm.ErrDuplicatedKey || strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate")
}
