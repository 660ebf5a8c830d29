package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/game-sales-sheets/auth"
	"github.com/diewo77/game-sales-sheets/httpx"
	"github.com/diewo77/game-sales-sheets/internal/nav"
	"github.com/diewo77/game-sales-sheets/internal/services"
	"github.com/diewo77/game-sales-sheets/validation"
)

type AuthHandler struct{ Accounts *services.AccountService }

func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
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
	v := validation.Violations{}
	validation.Required("username", input.Username, v)
	validation.Required("password", input.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	user, err := h.Accounts.Authenticate(strings.TrimSpace(input.Username), input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Même message pour utilisateur inconnu et mauvais mot de passe.
			httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "login_failed", nil)
		return
	}
	if err := auth.CreateSession(w, user.ID, user.Role); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "login_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the authenticated user's record, password hash excluded.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	user, err := h.Accounts.Get(id.UserID)
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "user_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Sections lists the sidebar entries visible to the caller. Anonymous
// callers get the full set; the protected routes still turn them away.
func (h *AuthHandler) Sections(w http.ResponseWriter, r *http.Request) {
	role := ""
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		role = id.Role
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sections": nav.Visible(role)})
}
