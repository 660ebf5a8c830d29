package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/game-sales-sheets/httpx"
	"github.com/diewo77/game-sales-sheets/internal/services"
	"github.com/diewo77/game-sales-sheets/validation"
)

// GerantHandler manages the manager accounts (owner-only routes).
type GerantHandler struct{ Accounts *services.AccountService }

func NewGerantHandler(accounts *services.AccountService) *GerantHandler {
	return &GerantHandler{Accounts: accounts}
}

func (h *GerantHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Accounts.ListGerants()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_gerants", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": users, "total": len(users)})
}

func (h *GerantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	v := validation.Violations{}
	validation.Required("username", input.Username, v)
	validation.Required("password", input.Password, v)
	validation.Required("name", input.Name, v)
	if input.Password != "" {
		// Règle héritée du formulaire: 6 caractères minimum.
		validation.MinLen("password", input.Password, 6, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	user, err := h.Accounts.CreateGerant(input.Username, input.Password, input.Name)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			httpx.JSONError(w, http.StatusConflict, "username_taken", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "gerant_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *GerantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := queryID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Accounts.DeleteGerant(id); err != nil {
		if errors.Is(err, services.ErrNotGerant) {
			httpx.JSONError(w, http.StatusForbidden, "access_denied", nil)
			return
		}
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
