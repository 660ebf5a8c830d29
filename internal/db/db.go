package db

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/diewo77/game-sales-sheets/internal/config"
	"github.com/diewo77/game-sales-sheets/internal/models"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectAndMigrate opens the configured database and brings the schema up to
// date. Postgres DSNs (postgres://...) get the production path with a retry
// loop and optional SQL migrations (MIGRATIONS=1); anything else is treated
// as a sqlite path, the dev/demo default.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(strings.Trim(dsn, "\"'"))
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN est vide, vérifiez la configuration de l'environnement")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	if isPostgres(dsn) {
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	fmt.Println("[DB] Using DSN:", maskDSN(dsn))

	// MIGRATIONS=1 runs versioned SQL migrations (postgres only); otherwise
	// AutoMigrate keeps the dev loop simple.
	if isPostgres(dsn) && config.ParseBool("MIGRATIONS", false) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range []interface{}{&models.User{}, &models.Game{}, &models.Sheet{}, &models.Sale{}} {
			if migErr := conn.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	for _, table := range []string{"users", "games", "sheets", "sales"} {
		if !conn.Migrator().HasTable(table) {
			return nil, fmt.Errorf("missing table after migration: %s", table)
		}
	}

	if config.ParseBool("DB_SEED", false) {
		if err := Seed(conn); err != nil {
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}
	return conn, nil
}

func isPostgres(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

var pwRegex = regexp.MustCompile(`(password=|:)([^@:/\s]+)(@)`)

func maskDSN(dsn string) string {
	if !isPostgres(dsn) {
		return dsn
	}
	return pwRegex.ReplaceAllString(dsn, "${1}***${3}")
}

// Seed installs the starter catalog and the initial owner account.
// Idempotent: existing rows are left untouched.
func Seed(conn *gorm.DB) error {
	baseGames := []models.Game{
		{Name: "Adventure Quest", DefaultPrice: 29.99},
		{Name: "Space Warriors", DefaultPrice: 39.99},
		{Name: "Puzzle Master", DefaultPrice: 19.99},
		{Name: "Racing Legends", DefaultPrice: 49.99},
		{Name: "Fantasy RPG", DefaultPrice: 59.99},
	}
	for _, g := range baseGames {
		var existing models.Game
		if err := conn.Where("name = ?", g.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := conn.Create(&g).Error; err != nil {
				return err
			}
		}
	}

	var count int64
	if err := conn.Model(&models.User{}).Where("role = ?", models.RoleProprietaire).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		pass := os.Getenv("OWNER_PASSWORD")
		if pass == "" {
			pass = "changeme"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		owner := models.User{Username: "proprietaire", Password: string(hash), Role: models.RoleProprietaire, Name: "Propriétaire"}
		if err := conn.Create(&owner).Error; err != nil {
			return err
		}
	}
	return nil
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
