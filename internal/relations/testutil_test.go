package relations

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/geula-list/registry/internal/models"
)

// openTestDB returns an isolated in-file SQLite database in a temp directory,
// migrated and with the relation-type catalog seeded.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dir := t.TempDir()
	dsn := filepath.Join(dir, "test.db")
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Person{},
		&models.Relation{},
		&models.RelationType{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	if err := EnsureSeeded(gdb); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return gdb
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	gdb := openTestDB(t)
	return NewService(gdb), gdb
}

func mustCreatePerson(t *testing.T, gdb *gorm.DB, first, last, sex string) *models.Person {
	t.Helper()
	p := models.Person{FirstName: first, LastName: last, Sex: sex}
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatalf("create person %s %s: %v", first, last, err)
	}
	return &p
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
