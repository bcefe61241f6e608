package http

import (
	"net/http"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	"github.com/Sule971/luxe-vogue-boutique/internal/service"
	"github.com/Sule971/luxe-vogue-boutique/pkg/httputil"
	"github.com/Sule971/luxe-vogue-boutique/pkg/validator"
)

// --- Request DTOs ---

// LoginRequest is the JSON request body for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the JSON request body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// PasswordStrengthRequest is the JSON request body for rating a password.
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

type sessionView struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

func (h *Handler) currentSession() sessionView {
	user, ok := h.svc.Auth.CurrentUser()
	if !ok {
		return sessionView{}
	}
	return sessionView{Authenticated: true, User: &user}
}

// --- Handlers ---

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	user, err := h.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, sessionView{Authenticated: true, User: &user})
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	user, err := h.svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, sessionView{Authenticated: true, User: &user})
}

// Logout handles POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Auth.Logout(r.Context())
	httputil.WriteData(w, http.StatusOK, sessionView{})
}

// Me handles GET /api/v1/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.currentSession())
}

// PasswordStrength handles POST /api/v1/auth/password/strength
func (h *Handler) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	var req PasswordStrengthRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]service.Strength{
		"strength": service.CheckPasswordStrength(req.Password),
	})
}

// GeneratePassword handles GET /api/v1/auth/password/generate
func (h *Handler) GeneratePassword(w http.ResponseWriter, r *http.Request) {
	h.rngMu.Lock()
	password := service.GeneratePassword(h.rng)
	h.rngMu.Unlock()

	httputil.WriteData(w, http.StatusOK, map[string]string{
		"password": password,
		"strength": string(service.CheckPasswordStrength(password)),
	})
}
