package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/game-sales-sheets/internal/models"
)

func sheet(date string, prices ...float64) models.Sheet {
	sh := models.Sheet{Date: date}
	for i, p := range prices {
		sh.Sales = append(sh.Sales, models.Sale{GameName: "Jeu", Price: p, Position: i + 1})
	}
	return sh
}

func TestDailyTotal(t *testing.T) {
	assert.Equal(t, 25.5, DailyTotal(sheet("2024-03-01", 10, 15.5)))
	assert.Equal(t, 0.0, DailyTotal(sheet("2024-03-01")))
}

func TestDayOverDayChange(t *testing.T) {
	// Zero yesterday never yields infinity, whatever today is.
	assert.Equal(t, 0.0, DayOverDayChange(50, 0))
	assert.Equal(t, 0.0, DayOverDayChange(0, 0))
	assert.InDelta(t, 100.0, DayOverDayChange(50, 25), 1e-9)
	assert.InDelta(t, -50.0, DayOverDayChange(25, 50), 1e-9)
}

func TestRevenueByGame(t *testing.T) {
	sh := models.Sheet{Date: "2024-03-01", Sales: []models.Sale{
		{GameName: "Puzzle Master", Price: 20},
		{GameName: "Fantasy RPG", Price: 60},
		{GameName: "Puzzle Master", Price: 20},
		{GameName: "Space Warriors", Price: 40},
	}}
	groups := RevenueByGame(sh)
	require.Len(t, groups, 3)
	assert.Equal(t, GameRevenue{Name: "Fantasy RPG", Revenue: 60, Count: 1}, groups[0])
	assert.Equal(t, GameRevenue{Name: "Puzzle Master", Revenue: 40, Count: 2}, groups[1])
	assert.Equal(t, GameRevenue{Name: "Space Warriors", Revenue: 40, Count: 1}, groups[2])
}

func TestRevenueByGameTiesKeepFirstOccurrenceOrder(t *testing.T) {
	sh := models.Sheet{Sales: []models.Sale{
		{GameName: "B", Price: 10},
		{GameName: "A", Price: 10},
	}}
	groups := RevenueByGame(sh)
	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].Name)
	assert.Equal(t, "A", groups[1].Name)
}

func TestSeriesFillsMissingDays(t *testing.T) {
	sheets := []models.Sheet{
		sheet("2024-03-01", 10),
		sheet("2024-03-03", 5, 5),
	}
	points := Series(sheets, "2024-03-03", 3)
	require.Len(t, points, 3)
	assert.Equal(t, DayPoint{Date: "2024-03-01", Total: 10, Count: 1}, points[0])
	assert.Equal(t, DayPoint{Date: "2024-03-02", Total: 0, Count: 0}, points[1])
	assert.Equal(t, DayPoint{Date: "2024-03-03", Total: 10, Count: 2}, points[2])
}

func TestSeriesCrossesMonthBoundary(t *testing.T) {
	points := Series(nil, "2024-03-02", 4)
	require.Len(t, points, 4)
	assert.Equal(t, "2024-02-28", points[0].Date)
	assert.Equal(t, "2024-02-29", points[1].Date) // année bissextile
	assert.Equal(t, "2024-03-02", points[3].Date)
}

func TestSeriesRejectsBadInput(t *testing.T) {
	assert.Nil(t, Series(nil, "pas-une-date", 7))
	assert.Nil(t, Series(nil, "2024-03-03", 0))
}

func TestTopGames(t *testing.T) {
	sheets := []models.Sheet{
		{Date: "2024-03-01", Sales: []models.Sale{
			{GameName: "A", Price: 10},
			{GameName: "B", Price: 50},
		}},
		{Date: "2024-03-02", Sales: []models.Sale{
			{GameName: "A", Price: 15},
			{GameName: "C", Price: 30},
		}},
	}
	top := TopGames(sheets, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].Name)
	assert.Equal(t, "C", top[1].Name)

	all := TopGames(sheets, 10)
	assert.Len(t, all, 3)
}

func TestPreviousDate(t *testing.T) {
	assert.Equal(t, "2024-02-29", PreviousDate("2024-03-01"))
	assert.Equal(t, "", PreviousDate("n/a"))
}

func TestAllTimeTotal(t *testing.T) {
	sheets := []models.Sheet{sheet("2024-03-01", 10), sheet("2024-03-02", 5, 2.5)}
	assert.Equal(t, 17.5, AllTimeTotal(sheets))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(33.333333))
	assert.Equal(t, 66.67, Round2(66.666666))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -66.67, Round2(-66.666666))
}
