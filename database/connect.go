package database

import (
	"context"
	"fmt"
	"time"

	"payexsync/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var MongoClient *mongo.Client

// ConnectDB opens the PostgreSQL connection and migrates the schema.
func ConnectDB(logger *zap.Logger) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.Config("DB_HOST", "localhost"),
		config.Config("DB_USER", ""),
		config.Config("DB_PASSWORD", ""),
		config.Config("DB_NAME", ""),
		config.Config("DB_PORT", "5432"),
		config.Config("DB_SSLMODE", "disable"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(config.ConfigInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(config.ConfigInt("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("connection opened to database")

	if err := Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("database migrated")

	DB = db
	return nil
}

// SetupMongoDB connects to MONGODB_URI. It is a no-op returning false when
// the variable is unset.
func SetupMongoDB(ctx context.Context, logger *zap.Logger) (bool, error) {
	uri := config.Config("MONGODB_URI", "")
	if uri == "" {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return false, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return false, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	logger.Info("connected to MongoDB")
	return true, nil
}

func GetCollection(databaseName, collectionName string) *mongo.Collection {
	return MongoClient.Database(databaseName).Collection(collectionName)
}
