package scheduler

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/geula-list/registry/internal/directory"
	"github.com/geula-list/registry/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dir := t.TempDir()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Person{}, &models.Relation{}, &models.Notification{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}

func TestStart_DisabledWithoutEnv(t *testing.T) {
	t.Setenv("ENABLE_SCHEDULER", "")
	if c := Start(openTestDB(t), nil); c != nil {
		c.Stop()
		t.Fatal("scheduler must stay off unless ENABLE_SCHEDULER=1")
	}
}

// TestRun drives one batch pass: a person whose birthday is "today" gets the
// derived fields refreshed and a birthday notification.
func TestRun(t *testing.T) {
	gdb := openTestDB(t)
	dir := directory.NewService(gdb)

	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	birth := time.Date(1986, time.August, 28, 0, 0, 0, 0, time.UTC)
	p := models.Person{FirstName: "David", LastName: "Levin", Sex: models.SexMale, BirthDate: &birth}
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	Run(gdb, dir, now)

	var refreshed models.Person
	if err := gdb.First(&refreshed, p.ID).Error; err != nil {
		t.Fatal(err)
	}
	if refreshed.Age == nil || *refreshed.Age != 40 {
		t.Errorf("age not refreshed: %v", refreshed.Age)
	}
	if refreshed.HebrewDate == "" {
		t.Error("hebrew date not refreshed")
	}

	var notes []models.Notification
	if err := gdb.Where("person_id = ? AND type = ?", p.ID, "birthday").Find(&notes).Error; err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 {
		t.Errorf("want 1 birthday notification, got %d", len(notes))
	}
}
