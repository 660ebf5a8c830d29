package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/game-sales-sheets/httpx"
	"github.com/diewo77/game-sales-sheets/internal/models"
	"github.com/diewo77/game-sales-sheets/internal/services"
	"github.com/diewo77/game-sales-sheets/internal/stats"
)

// DashboardHandler aggregates the whole history into the metrics the
// dashboard page renders. Recomputed on every request, no caching.
type DashboardHandler struct {
	Sheets *services.SheetService
	Now    func() time.Time
}

func NewDashboardHandler(sheets *services.SheetService) *DashboardHandler {
	return &DashboardHandler{Sheets: sheets, Now: time.Now}
}

func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
		return
	}
	sheets, err := h.Sheets.ListSheets()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_sheets", nil)
		return
	}

	var todaySheet, yesterdaySheet models.Sheet
	yesterday := stats.PreviousDate(date)
	for _, sh := range sheets {
		switch sh.Date {
		case date:
			todaySheet = sh
		case yesterday:
			yesterdaySheet = sh
		}
	}

	todayTotal := stats.DailyTotal(todaySheet)
	yesterdayTotal := stats.DailyTotal(yesterdaySheet)
	todayCount := len(todaySheet.Sales)
	yesterdayCount := len(yesterdaySheet.Sales)

	byGame := stats.RevenueByGame(todaySheet)
	for i := range byGame {
		byGame[i].Revenue = stats.Round2(byGame[i].Revenue)
	}
	series := stats.Series(sheets, date, 7)
	for i := range series {
		series[i].Total = stats.Round2(series[i].Total)
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"date":           date,
		"todayTotal":     stats.Round2(todayTotal),
		"yesterdayTotal": stats.Round2(yesterdayTotal),
		"revenueChange":  stats.Round2(stats.DayOverDayChange(todayTotal, yesterdayTotal)),
		"todayCount":     todayCount,
		"yesterdayCount": yesterdayCount,
		"countChange":    stats.Round2(stats.DayOverDayChange(float64(todayCount), float64(yesterdayCount))),
		"allTimeTotal":   stats.Round2(stats.AllTimeTotal(sheets)),
		"activeDays":     len(sheets),
		"revenueByGame":  byGame,
		"last7Days":      series,
		"topGames":       stats.TopGames(sheets, 5),
	})
}
