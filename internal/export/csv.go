// Package export renders a daily sheet into the CSV format the counter staff
// have always downloaded.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/diewo77/game-sales-sheets/internal/models"
	"github.com/diewo77/game-sales-sheets/internal/stats"
)

// Filename is the download name for a date's export.
func Filename(date string) string {
	return fmt.Sprintf("ventes-%s.csv", date)
}

// SheetCSV renders the sheet: a Jeu,Prix,Heure header, one row per sale in
// insertion order, then a ,Total,<sum> trailer. Prices use two decimals.
// The historical file has no trailing newline, so the final one is trimmed;
// unlike the legacy exporter, fields containing commas or quotes are escaped.
func SheetCSV(sheet models.Sheet) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Jeu", "Prix", "Heure"}); err != nil {
		return "", err
	}
	for _, sale := range sheet.Sales {
		if err := w.Write([]string{sale.GameName, fmt.Sprintf("%.2f", sale.Price), sale.Time}); err != nil {
			return "", err
		}
	}
	total := stats.DailyTotal(sheet)
	if err := w.Write([]string{"", "Total", fmt.Sprintf("%.2f", total)}); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
