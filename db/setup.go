package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gadgetswap-dev/gadgetswap/internal/store"
)

// ConnectDatabase opens a MongoDB client and returns the application
// database handle. The caller owns the client and disconnects it on
// shutdown.
func ConnectDatabase(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))

	if err != nil {
		return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the server depends on. The unique
// index on users.email is the actual duplicate-registration guarantee;
// the unique user_email indexes enforce at most one chain of each kind
// per account.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		store.UsersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		store.MessageChainsCollection: {
			Keys:    bson.D{{Key: "user_email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		store.NotificationChainsCollection: {
			Keys:    bson.D{{Key: "user_email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		store.ActivityHistoryChainsCollection: {
			Keys:    bson.D{{Key: "user_email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		store.GadgetsCollection: {
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}

	for collection, model := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", collection, err)
		}
	}

	return nil
}
