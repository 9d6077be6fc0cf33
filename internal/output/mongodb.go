// internal/output/mongodb.go
package output

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// MongoDBWriter writes records as documents into one collection.
type MongoDBWriter struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoDBWriter connects to the cluster and prepares the collection with
// a unique index on profile_url + name.
func NewMongoDBWriter(opts Options) (*MongoDBWriter, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("MongoDB connection string is required")
	}
	database := opts.Database
	if database == "" {
		database = "peoplescrapexter"
	}
	table := opts.Table
	if table == "" {
		table = "people"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	collection := client.Database(database).Collection(table)
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "profile_url", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &MongoDBWriter{client: client, collection: collection}, nil
}

// Write inserts the records, ignoring duplicate-key failures so re-scrapes
// are idempotent.
func (w *MongoDBWriter) Write(records []types.Record) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(records))
	now := time.Now().UTC()
	for _, rec := range records {
		docs = append(docs, bson.M{
			"name":               rec.Name,
			"title":              rec.Title,
			"company":            rec.Company,
			"location":           rec.Location,
			"industry":           rec.Industry,
			"connection_degree":  string(rec.ConnectionDegree),
			"shared_connections": rec.SharedConnections,
			"profile_url":        rec.ProfileURL,
			"scraped_at":         now,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := w.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to insert records: %w", err)
	}
	return nil
}

// Close disconnects from the cluster.
func (w *MongoDBWriter) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.client.Disconnect(ctx)
}
