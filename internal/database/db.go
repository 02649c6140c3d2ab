package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection opens a gorm connection pool and verifies it with a ping.
// Mirror tables are created on demand by the sync service, not migrated here.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
