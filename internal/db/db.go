package db

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/geula-list/registry/internal/models"
)

var conn *gorm.DB

func Init() error {
	dsn := os.Getenv("REGISTRY_DB")
	if dsn == "" {
		dsn = "registry.db"
	}
	var err error
	conn, err = gorm.Open(sqlite.Open(dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		return err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(
		&models.Person{},
		&models.Relation{},
		&models.RelationType{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}

	// Composite indexes that GORM doesn't auto-create from struct tags.
	// The pair index backs the reverse-edge lookup (owner/target swapped).
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_rel_pair ON relations(person_id, related_person_id)")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_rel_person_type ON relations(person_id, relation_type)")

	log.Println("database ready (sqlite)")
	return nil
}

func Conn() *gorm.DB {
	return conn
}
