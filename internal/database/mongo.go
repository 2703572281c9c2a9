package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoConnectTimeout = 10 * time.Second

// ConnectMongo connects to MongoDB and returns the configured database.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Println("MongoDB connection established")
	return client, client.Database(cfg.DBName), nil
}

// MigrateMongo creates the indexes the repositories rely on.
func MigrateMongo(ctx context.Context, db *mongo.Database) error {
	log.Println("Ensuring MongoDB indexes...")
	if err := repository.EnsureUserIndexes(ctx, db); err != nil {
		return err
	}
	if err := repository.EnsureTodoIndexes(ctx, db); err != nil {
		return err
	}
	log.Println("MongoDB indexes ready")
	return nil
}
