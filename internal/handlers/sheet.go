package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/diewo77/game-sales-sheets/httpx"
	"github.com/diewo77/game-sales-sheets/internal/export"
	"github.com/diewo77/game-sales-sheets/internal/metrics"
	"github.com/diewo77/game-sales-sheets/internal/models"
	"github.com/diewo77/game-sales-sheets/internal/services"
	"github.com/diewo77/game-sales-sheets/validation"
)

// SheetHandler serves the daily sheets: today's sheet, the history, the sale
// append and the CSV export.
type SheetHandler struct {
	Sheets *services.SheetService
	Now    func() time.Time
}

func NewSheetHandler(sheets *services.SheetService) *SheetHandler {
	return &SheetHandler{Sheets: sheets, Now: time.Now}
}

func (h *SheetHandler) today() string {
	return h.Now().Format("2006-01-02")
}

// List returns the full history, newest date first.
func (h *SheetHandler) List(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.Sheets.ListSheets()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_sheets", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": sheets, "total": len(sheets)})
}

// Today returns the sheet for the current date, creating it on first visit.
func (h *SheetHandler) Today(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.Sheets.EnsureSheet(h.today())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_ensure_sheet", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, sheet)
}

// AddSale appends one sale to today's sheet.
func (h *SheetHandler) AddSale(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var input struct {
		GameID uint    `json:"gameId"`
		Price  float64 `json:"price"`
	}
	if err := httpx.Decode(r, &input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	sale, err := h.Sheets.AddSale(h.today(), input.GameID, input.Price, h.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPrice):
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"price": "must_be_positive"})
		case errors.Is(err, services.ErrGameNotFound):
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"gameId": "unknown_game"})
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "sale_create_failed", nil)
		}
		return
	}
	metrics.RecordSale()
	httpx.JSON(w, http.StatusCreated, sale)
}

// DeleteAll wipes the entire history. Owner only; the router gates it.
func (h *SheetHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if err := h.Sheets.DeleteAll(); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Export streams the CSV for ?date= (default: today) as an attachment.
// A date with no sheet exports an empty file with a zero total.
func (h *SheetHandler) Export(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.today()
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
		return
	}
	sheet, err := h.Sheets.GetSheet(date)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	if sheet == nil {
		sheet = &models.Sheet{Date: date}
	}
	body, err := export.SheetCSV(*sheet)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(date)+`"`)
	if _, werr := w.Write([]byte(body)); werr != nil {
		_ = werr
	}
}
