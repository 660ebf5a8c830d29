// Package stats computes dashboard metrics from daily sheets.
// Everything here is pure: no I/O, no clock, recomputed per request.
package stats

import (
	"sort"
	"time"

	"github.com/diewo77/game-sales-sheets/internal/models"
)

const dateLayout = "2006-01-02"

// GameRevenue is the revenue accumulated by one game.
type GameRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// DayPoint is one day of a time series, zero-filled when no sheet exists.
type DayPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// DailyTotal sums the sale prices of one sheet.
func DailyTotal(sheet models.Sheet) float64 {
	var total float64
	for _, s := range sheet.Sales {
		total += s.Price
	}
	return total
}

// DayOverDayChange returns the percentage change between two daily totals.
// When yesterday is zero the change is reported as 0, not infinity; the
// first trading day shows a flat delta rather than a meaningless spike.
func DayOverDayChange(today, yesterday float64) float64 {
	if yesterday == 0 {
		return 0
	}
	return (today - yesterday) / yesterday * 100
}

// RevenueByGame groups a sheet's sales by game name and sums the prices,
// sorted by revenue descending. Ties keep first-occurrence order.
func RevenueByGame(sheet models.Sheet) []GameRevenue {
	return groupByGame(sheet.Sales)
}

// TopGames aggregates all-time revenue per game across every sheet, sorted
// descending and truncated to the top n.
func TopGames(sheets []models.Sheet, n int) []GameRevenue {
	var all []models.Sale
	for _, sh := range sheets {
		all = append(all, sh.Sales...)
	}
	groups := groupByGame(all)
	if n >= 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

func groupByGame(sales []models.Sale) []GameRevenue {
	index := make(map[string]int)
	var groups []GameRevenue
	for _, s := range sales {
		i, ok := index[s.GameName]
		if !ok {
			i = len(groups)
			index[s.GameName] = i
			groups = append(groups, GameRevenue{Name: s.GameName})
		}
		groups[i].Revenue += s.Price
		groups[i].Count++
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Revenue > groups[j].Revenue })
	return groups
}

// Series produces one DayPoint per calendar day for the windowDays days
// ending at end (inclusive), oldest first. Days without a sheet yield 0.
// An unparseable end date or a non-positive window returns an empty series.
func Series(sheets []models.Sheet, end string, windowDays int) []DayPoint {
	endDay, err := time.Parse(dateLayout, end)
	if err != nil || windowDays <= 0 {
		return nil
	}
	byDate := make(map[string]models.Sheet, len(sheets))
	for _, sh := range sheets {
		byDate[sh.Date] = sh
	}
	points := make([]DayPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		date := endDay.AddDate(0, 0, -i).Format(dateLayout)
		p := DayPoint{Date: date}
		if sh, ok := byDate[date]; ok {
			p.Total = DailyTotal(sh)
			p.Count = len(sh.Sales)
		}
		points = append(points, p)
	}
	return points
}

// AllTimeTotal sums every sale across every sheet.
func AllTimeTotal(sheets []models.Sheet) float64 {
	var total float64
	for _, sh := range sheets {
		total += DailyTotal(sh)
	}
	return total
}

// PreviousDate returns the calendar day before date, or "" if unparseable.
func PreviousDate(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, -1).Format(dateLayout)
}

// Round2 rounds to two decimals the way the dashboard displays money.
func Round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}
