package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names shared by services and indexes.
const (
	PropertiesCollection   = "properties"
	UsersCollection        = "users"
	AppointmentsCollection = "appointments"
)

// ConnectDB opens a client, pings the primary and returns the named database.
func ConnectDB(uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("Connected to MongoDB database %q", dbName)
	return client, client.Database(dbName), nil
}

// DisconnectDB closes the MongoDB client connection.
func DisconnectDB(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	log.Println("MongoDB connection closed.")
	return nil
}

// EnsureIndexes creates the indexes the services rely on. Creating an index
// that already exists with the same spec is a no-op on the server.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	propertyIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "address.city", Value: "text"},
				{Key: "address.state", Value: "text"},
				{Key: "address.neighborhood", Value: "text"},
				{Key: "amenities", Value: "text"},
			},
			Options: options.Index().SetName("property_text"),
		},
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "deletionRequest.requested", Value: 1}, {Key: "deletionRequest.status", Value: 1}}},
	}
	if _, err := database.Collection(PropertiesCollection).Indexes().CreateMany(ctx, propertyIndexes); err != nil {
		return fmt.Errorf("failed to create property indexes: %w", err)
	}

	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, userIndex); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	appointmentIndex := mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}}}
	if _, err := database.Collection(AppointmentsCollection).Indexes().CreateOne(ctx, appointmentIndex); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
