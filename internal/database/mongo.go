package database

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/campus-events/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// EventsCollection is the collection holding event documents.
const EventsCollection = "events"

// ConnectMongo connects to the document store and verifies the primary is
// reachable. Callers own the returned client and must Disconnect it.
func ConnectMongo(ctx context.Context, cfg config.Mongo) (*mongo.Client, *mongo.Collection, error) {
	if cfg.URI == "" {
		return nil, nil, fmt.Errorf("MONGO_URI is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(EventsCollection)
	return client, coll, nil
}
