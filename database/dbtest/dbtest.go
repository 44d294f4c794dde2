// Package dbtest поднимает базу данных в памяти для тестов.
package dbtest

import (
	"testing"

	"fastcard/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

// New открывает SQLite в памяти и создает схему через AutoMigrate
func New(t testing.TB) *database.Database {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), logger.Silent)
	if err != nil {
		t.Fatalf("не удалось открыть тестовую базу: %v", err)
	}

	// у каждого соединения :memory: своя база, поэтому держим одно соединение
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("не удалось получить пул соединений: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(); err != nil {
		t.Fatalf("не удалось создать схему: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
