package database

import (
	"testing"

	"payexsync/dto/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, Migrate(db))
	// Running it twice must be harmless.
	require.NoError(t, Migrate(db))

	for _, table := range []interface{}{
		&model.Order{}, &model.OrderItem{}, &model.OrderNote{},
		&model.TransactionRecord{}, &model.AdminNotice{}, &model.User{},
	} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.True(t, db.Migrator().HasTable("payex_transactions"))
}
