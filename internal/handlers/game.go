package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/game-sales-sheets/httpx"
	"github.com/diewo77/game-sales-sheets/internal/models"
	"github.com/diewo77/game-sales-sheets/validation"
)

// GameHandler manages the catalog. List/Create via /games, update/delete via
// /games/update & /games/delete for simplicity.
type GameHandler struct{ DB *gorm.DB }

func NewGameHandler(db *gorm.DB) *GameHandler { return &GameHandler{DB: db} }

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	var games []models.Game
	if err := h.DB.Order("id asc").Find(&games).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_games", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": games, "total": len(games)})
}

func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name         string  `json:"name"`
		DefaultPrice float64 `json:"defaultPrice"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.PositiveFloat("defaultPrice", input.DefaultPrice, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	g := models.Game{Name: input.Name, DefaultPrice: input.DefaultPrice}
	if err := h.DB.Create(&g).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "game_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, g)
}

// Update edits name and/or default price. Past sales keep their denormalized
// copies; only future sales see the change.
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := queryID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var g models.Game
	if err := h.DB.First(&g, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var body struct {
		Name         *string  `json:"name"`
		DefaultPrice *float64 `json:"defaultPrice"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		validation.Required("name", name, v)
		if v.Empty() {
			g.Name = name
		}
	}
	if body.DefaultPrice != nil {
		validation.PositiveFloat("defaultPrice", *body.DefaultPrice, v)
		if v.Empty() {
			g.DefaultPrice = *body.DefaultPrice
		}
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.DB.Save(&g).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, g)
}

// Delete soft-deletes a catalog entry; recorded sales are untouched.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := queryID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Delete(&models.Game{}, id).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func queryID(r *http.Request) uint {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		idStr = r.FormValue("id")
	}
	id, _ := strconv.Atoi(idStr)
	if id <= 0 {
		return 0
	}
	return uint(id)
}
