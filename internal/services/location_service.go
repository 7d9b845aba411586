package services

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"goldenview/realty/internal/cache"
	"goldenview/realty/internal/db"
	"goldenview/realty/internal/models"
)

// ILocationService defines the interface for location operations.
type ILocationService interface {
	ListLocations(ctx context.Context) ([]models.LocationSummary, error)
}

// locationService implements ILocationService.
type locationService struct {
	db    *mongo.Database
	cache cache.ICatalogCache
}

// NewLocationService creates a new LocationService. A nil cache disables caching.
func NewLocationService(database *mongo.Database, catalogCache cache.ICatalogCache) ILocationService {
	if catalogCache == nil {
		catalogCache = cache.NopCache{}
	}
	return &locationService{db: database, cache: catalogCache}
}

// ListLocations groups listings by city and state, busiest locations first.
func (s *locationService) ListLocations(ctx context.Context) ([]models.LocationSummary, error) {
	var cached []models.LocationSummary
	if hit, err := s.cache.Get(ctx, cache.LocationsKey, &cached); err != nil {
		log.Printf("Error reading locations from cache: %v", err)
	} else if hit {
		return cached, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"address.city": bson.M{"$nin": bson.A{"", nil}}}}},
		{{Key: "$group", Value: bson.M{
			"_id":             bson.M{"city": "$address.city", "state": "$address.state"},
			"propertiesCount": bson.M{"$sum": 1},
			"averagePrice":    bson.M{"$avg": "$price"},
			"minPrice":        bson.M{"$min": "$price"},
			"maxPrice":        bson.M{"$max": "$price"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":             0,
			"city":            "$_id.city",
			"state":           "$_id.state",
			"propertiesCount": 1,
			"averagePrice":    1,
			"minPrice":        1,
			"maxPrice":        1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "propertiesCount", Value: -1}, {Key: "city", Value: 1}}}},
	}

	cursor, err := s.db.Collection(db.PropertiesCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate locations: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.LocationSummary{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode location aggregation: %w", err)
	}
	for i := range results {
		results[i].Name = models.FormatLocation(results[i].City, results[i].State)
	}

	if err := s.cache.Set(ctx, cache.LocationsKey, results); err != nil {
		log.Printf("Error caching locations: %v", err)
	}
	return results, nil
}
