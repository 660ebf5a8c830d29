package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/game-sales-sheets/internal/models"
)

var (
	ErrGameNotFound = errors.New("game_not_found")
	ErrInvalidPrice = errors.New("price_must_be_positive")
	ErrInvalidDate  = errors.New("invalid_date")
)

const dateLayout = "2006-01-02"

// SheetService owns the daily-sheet lifecycle: one sheet per calendar date,
// sales appended server-side so concurrent counters cannot lose each other's
// entries.
type SheetService struct{ DB *gorm.DB }

func NewSheetService(db *gorm.DB) *SheetService { return &SheetService{DB: db} }

// EnsureSheet returns the sheet for date, creating an empty one if needed.
// Idempotent: the unique index on date plus FirstOrCreate guarantee a second
// call (or a concurrent client) never produces a duplicate.
func (s *SheetService) EnsureSheet(date string) (*models.Sheet, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	var sheet models.Sheet
	if err := s.DB.Where(models.Sheet{Date: date}).FirstOrCreate(&sheet).Error; err != nil {
		return nil, err
	}
	return s.loadSheet(sheet.ID)
}

// GetSheet fetches the sheet for date with its sales in insertion order.
// Returns (nil, nil) when no sheet exists for that date.
func (s *SheetService) GetSheet(date string) (*models.Sheet, error) {
	var sheet models.Sheet
	err := s.withSales().Where("date = ?", date).First(&sheet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

// ListSheets returns every sheet, newest date first, sales in insertion order.
func (s *SheetService) ListSheets() ([]models.Sheet, error) {
	var sheets []models.Sheet
	if err := s.withSales().Order("date desc").Find(&sheets).Error; err != nil {
		return nil, err
	}
	return sheets, nil
}

// AddSale appends one sale to the sheet for date. The game name and price are
// copied onto the sale so later catalog edits never rewrite history. Position
// is assigned inside the transaction; the append is atomic on the server.
func (s *SheetService) AddSale(date string, gameID uint, price float64, now time.Time) (*models.Sale, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	var game models.Game
	if err := s.DB.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	sale := models.Sale{
		ID:       uuid.NewString(),
		GameID:   game.ID,
		GameName: game.Name,
		Price:    price,
		Time:     now.Format("15:04:05"),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var sheet models.Sheet
		if err := tx.Where(models.Sheet{Date: date}).FirstOrCreate(&sheet).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Sale{}).Where("sheet_id = ?", sheet.ID).Count(&count).Error; err != nil {
			return err
		}
		sale.SheetID = sheet.ID
		sale.Position = int(count) + 1
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// DeleteAll wipes the whole sales history (owner operation, irreversible).
func (s *SheetService) DeleteAll() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Sale{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Sheet{}).Error
	})
}

func (s *SheetService) withSales() *gorm.DB {
	return s.DB.Preload("Sales", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

func (s *SheetService) loadSheet(id uint) (*models.Sheet, error) {
	var sheet models.Sheet
	if err := s.withSales().First(&sheet, id).Error; err != nil {
		return nil, err
	}
	return &sheet, nil
}
