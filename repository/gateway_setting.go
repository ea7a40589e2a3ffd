package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payexsync/dto/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoGatewayConfig loads gateway settings from the "settings" collection,
// one document per payment method slug.
type MongoGatewayConfig struct {
	Collection *mongo.Collection
}

func NewMongoGatewayConfig(collection *mongo.Collection) *MongoGatewayConfig {
	return &MongoGatewayConfig{Collection: collection}
}

func (m *MongoGatewayConfig) GatewaySettings(ctx context.Context, gatewayID string) (*model.GatewaySettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var settings model.GatewaySettings
	err := m.Collection.FindOne(ctx, bson.M{"slug": gatewayID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("no settings for gateway %s", gatewayID)
		}
		return nil, fmt.Errorf("error fetching gateway settings: %w", err)
	}
	return &settings, nil
}
