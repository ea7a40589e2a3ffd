package database

import (
	"payexsync/dto/model"

	"gorm.io/gorm"
)

var DB *gorm.DB

// GetDB returns the connection opened by ConnectDB.
func GetDB() *gorm.DB {
	return DB
}

// Migrate creates the tables owned by this service. Orders are migrated too
// so a fresh database can be used for local development.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Order{},
		&model.OrderItem{},
		&model.OrderNote{},
		&model.TransactionRecord{},
		&model.AdminNotice{},
		&model.User{},
	)
}
