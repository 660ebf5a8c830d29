package db

import (
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/game-sales-sheets/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Game{}, &models.Sheet{}, &models.Sale{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestSeedIsIdempotent(t *testing.T) {
	conn := openTestDB(t)

	for i := 0; i < 2; i++ {
		if err := Seed(conn); err != nil {
			t.Fatalf("seed #%d: %v", i, err)
		}
	}

	var games, owners int64
	conn.Model(&models.Game{}).Count(&games)
	conn.Model(&models.User{}).Where("role = ?", models.RoleProprietaire).Count(&owners)
	if games != 5 {
		t.Fatalf("expected 5 starter games, got %d", games)
	}
	if owners != 1 {
		t.Fatalf("expected 1 owner, got %d", owners)
	}
}

func TestSeedOwnerPasswordIsHashed(t *testing.T) {
	conn := openTestDB(t)
	if err := Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var owner models.User
	if err := conn.Where("username = ?", "proprietaire").First(&owner).Error; err != nil {
		t.Fatalf("load owner: %v", err)
	}
	if owner.Password == "changeme" {
		t.Fatal("owner password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte("changeme")); err != nil {
		t.Fatalf("default password does not verify: %v", err)
	}
}

func TestSeedKeepsExistingCatalogPrices(t *testing.T) {
	conn := openTestDB(t)
	if err := Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := conn.Model(&models.Game{}).Where("name = ?", "Puzzle Master").Update("default_price", 9.99).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	var game models.Game
	if err := conn.Where("name = ?", "Puzzle Master").First(&game).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if game.DefaultPrice != 9.99 {
		t.Fatalf("re-seed overwrote price: %v", game.DefaultPrice)
	}
}

func TestConnectAndMigrateSeedsBehindFlag(t *testing.T) {
	t.Setenv("DB_SEED", "true")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := ConnectAndMigrate(dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	var games int64
	conn.Model(&models.Game{}).Count(&games)
	if games != 5 {
		t.Fatalf("DB_SEED=true did not seed: %d games", games)
	}
}

func TestConnectAndMigrateSkipsSeedByDefault(t *testing.T) {
	t.Setenv("DB_SEED", "0")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := ConnectAndMigrate(dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	var games int64
	conn.Model(&models.Game{}).Count(&games)
	if games != 0 {
		t.Fatalf("catalog seeded without the flag: %d games", games)
	}
}

func TestMaskDSN(t *testing.T) {
	masked := maskDSN("postgres://app:hunter2@db:5432/sales")
	if masked != "postgres://app:***@db:5432/sales" {
		t.Fatalf("password visible: %s", masked)
	}
	// sqlite paths pass through untouched
	if got := maskDSN("file:gamesales.db"); got != "file:gamesales.db" {
		t.Fatalf("unexpected: %s", got)
	}
}
