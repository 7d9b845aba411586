package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goldenview/realty/internal/cache"
	"goldenview/realty/internal/config"
	"goldenview/realty/internal/db"
	"goldenview/realty/internal/filter"
	"goldenview/realty/internal/models"
	"goldenview/realty/internal/validation"
)

var (
	ErrPropertyNotFound  = errors.New("property not found")
	ErrForbidden         = errors.New("caller may not modify this property")
	ErrInvalidTransition = errors.New("property is not in a state that allows this change")
)

// Caller identifies who is performing an operation.
type Caller struct {
	UserID  primitive.ObjectID
	IsAdmin bool
}

// SystemCaller is used by background jobs acting on behalf of the platform.
var SystemCaller = Caller{IsAdmin: true}

// CanModify reports whether the caller owns p or is an admin.
func (c Caller) CanModify(p *models.Property) bool {
	return c.IsAdmin || (!c.UserID.IsZero() && c.UserID == p.Owner)
}

// ListOptions narrows ListProperties. Zero values mean "any".
type ListOptions struct {
	Status   models.ListingStatus
	Featured *bool
	Owner    *primitive.ObjectID
	Limit    int
}

// ImportFailure describes one rejected record of a bulk import.
type ImportFailure struct {
	Index  int                         `json:"index"`
	Errors validation.ValidationErrors `json:"errors"`
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Inserted []primitive.ObjectID `json:"inserted"`
	Failed   []ImportFailure      `json:"failed"`
}

// IPropertyService defines the interface for property-related operations.
type IPropertyService interface {
	CreateProperty(ctx context.Context, caller Caller, candidate []byte) (*models.Property, error)
	ImportProperties(ctx context.Context, caller Caller, candidates []byte) (*ImportResult, error)
	GetProperty(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	UpdateProperty(ctx context.Context, caller Caller, id primitive.ObjectID, candidate []byte) (*models.Property, error)
	ListProperties(ctx context.Context, opts ListOptions) ([]models.Property, error)
	SearchProperties(ctx context.Context, spec filter.Spec) ([]models.PropertySummary, error)
	SimilarProperties(ctx context.Context, id primitive.ObjectID) ([]models.PropertySummary, error)
	SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) (*models.Property, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ListingStatus) (*models.Property, error)
	RequestDeletion(ctx context.Context, caller Caller, id primitive.ObjectID, reason models.DeletionReason, message string) (*models.Property, error)
	ReviewDeletion(ctx context.Context, id primitive.ObjectID, decision models.ReviewStatus) (*models.Property, error)
	ListDeletionRequests(ctx context.Context, status models.ReviewStatus) ([]models.Property, error)
	DeleteProperty(ctx context.Context, id primitive.ObjectID) error
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) error
	AddImage(ctx context.Context, caller Caller, id primitive.ObjectID, img models.Image) (*models.Property, error)
}

// propertyService implements IPropertyService.
type propertyService struct {
	db        *mongo.Database
	cfg       *config.Config
	cache     cache.ICatalogCache
	validator *validation.Validator
}

// NewPropertyService creates a new PropertyService. A nil cache disables caching.
func NewPropertyService(database *mongo.Database, cfg *config.Config, catalogCache cache.ICatalogCache) IPropertyService {
	if catalogCache == nil {
		catalogCache = cache.NopCache{}
	}
	return &propertyService{
		db:        database,
		cfg:       cfg,
		cache:     catalogCache,
		validator: validation.New(cfg.PlaceholderImageURL),
	}
}

func (s *propertyService) collection() *mongo.Collection {
	return s.db.Collection(db.PropertiesCollection)
}

// invalidate drops derived catalog views. Failures only cost freshness until the TTL expires.
func (s *propertyService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Error invalidating catalog cache: %v", err)
	}
}

// CreateProperty validates a candidate record and stores it as owned by the caller.
func (s *propertyService) CreateProperty(ctx context.Context, caller Caller, candidate []byte) (*models.Property, error) {
	p, err := s.validator.ValidateAndNormalize(candidate)
	if err != nil {
		return nil, err
	}
	s.stamp(p, caller)

	if err := db.InsertOne(ctx, s.collection(), p.ID, p); err != nil {
		return nil, fmt.Errorf("failed to insert property %s: %w", p.ID.Hex(), err)
	}

	s.invalidate(ctx)
	log.Printf("Property %s created by %s", p.ID.Hex(), caller.UserID.Hex())
	return p, nil
}

// stamp assigns the server-controlled fields of a new record. Only admins may
// list a record as featured straight away.
func (s *propertyService) stamp(p *models.Property, caller Caller) {
	now := time.Now().UTC()
	if !caller.IsAdmin {
		p.Featured = false
	}
	p.ID = primitive.NewObjectID()
	p.Owner = caller.UserID
	p.PostedBy = caller.UserID
	p.CreatedAt = now
	p.UpdatedAt = now
	p.ViewCount = 0
	p.FavoriteCount = 0
	p.DeletionRequest = models.DeletionRequest{Status: models.ReviewPending}
}

// ImportProperties validates every element of a JSON array independently and
// inserts the ones that pass. Rejected elements are reported by index.
func (s *propertyService) ImportProperties(ctx context.Context, caller Caller, candidates []byte) (*ImportResult, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(candidates, &items); err != nil {
		return nil, validation.ValidationErrors{{Message: "import body must be a JSON array of properties"}}
	}

	result := &ImportResult{Inserted: []primitive.ObjectID{}, Failed: []ImportFailure{}}
	docs := make([]interface{}, 0, len(items))
	for i, raw := range items {
		p, err := s.validator.ValidateAndNormalize(raw)
		if err != nil {
			var verrs validation.ValidationErrors
			if !errors.As(err, &verrs) {
				verrs = validation.ValidationErrors{{Message: err.Error()}}
			}
			result.Failed = append(result.Failed, ImportFailure{Index: i, Errors: verrs})
			continue
		}
		s.stamp(p, caller)
		docs = append(docs, p)
		result.Inserted = append(result.Inserted, p.ID)
	}

	if len(docs) == 0 {
		return result, nil
	}
	if _, err := s.collection().InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to import %d properties: %w", len(docs), err)
	}

	s.invalidate(ctx)
	log.Printf("Imported %d properties (%d rejected)", len(result.Inserted), len(result.Failed))
	return result, nil
}

// GetProperty returns a single property, served from the catalog cache when possible.
func (s *propertyService) GetProperty(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	key := cache.PropertyKey(id.Hex())
	var cached models.Property
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Printf("Error reading property %s from cache: %v", id.Hex(), err)
	} else if hit {
		return &cached, nil
	}

	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, p); err != nil {
		log.Printf("Error caching property %s: %v", id.Hex(), err)
	}
	return p, nil
}

func (s *propertyService) find(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("error finding property %s: %w", id.Hex(), err)
	}
	return &p, nil
}

// UpdateProperty replaces the editable content of a property with a freshly
// validated candidate. Identity, ownership, timestamps of creation, counters
// and the deletion request survive the edit, and so does the featured flag
// unless an admin makes the edit.
func (s *propertyService) UpdateProperty(ctx context.Context, caller Caller, id primitive.ObjectID, candidate []byte) (*models.Property, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanModify(existing) {
		return nil, ErrForbidden
	}

	p, err := s.validator.ValidateAndNormalize(candidate)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.Owner = existing.Owner
	p.PostedBy = existing.PostedBy
	p.Agent = existing.Agent
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	p.ViewCount = existing.ViewCount
	p.FavoriteCount = existing.FavoriteCount
	p.DeletionRequest = existing.DeletionRequest
	if !caller.IsAdmin {
		p.Featured = existing.Featured
	}

	res, err := s.collection().ReplaceOne(ctx, bson.M{"_id": id}, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update property %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrPropertyNotFound
	}

	s.invalidate(ctx)
	return p, nil
}

// ListProperties returns stored records, newest first.
func (s *propertyService) ListProperties(ctx context.Context, opts ListOptions) ([]models.Property, error) {
	q := bson.M{}
	if opts.Status != "" {
		q["status"] = opts.Status
	}
	if opts.Featured != nil {
		q["featured"] = *opts.Featured
	}
	if opts.Owner != nil {
		q["owner"] = *opts.Owner
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultListLimit
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return s.findMany(ctx, q, findOpts)
}

func (s *propertyService) findMany(ctx context.Context, q bson.M, opts *options.FindOptions) ([]models.Property, error) {
	cur, err := s.collection().Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cur.Close(ctx)

	results := []models.Property{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return results, nil
}

// summaries returns the display projection of the whole catalog, featured
// listings first and then newest first.
func (s *propertyService) summaries(ctx context.Context) ([]models.PropertySummary, error) {
	var cached []models.PropertySummary
	if hit, err := s.cache.Get(ctx, cache.SummariesKey, &cached); err != nil {
		log.Printf("Error reading catalog summaries from cache: %v", err)
	} else if hit {
		return cached, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}})
	props, err := s.findMany(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]models.PropertySummary, len(props))
	for i := range props {
		out[i] = models.Summarize(&props[i])
	}

	if err := s.cache.Set(ctx, cache.SummariesKey, out); err != nil {
		log.Printf("Error caching catalog summaries: %v", err)
	}
	return out, nil
}

// SearchProperties narrows the catalog with spec.
func (s *propertyService) SearchProperties(ctx context.Context, spec filter.Spec) ([]models.PropertySummary, error) {
	key, err := cache.SearchKey(spec)
	if err != nil {
		return nil, err
	}
	var cached []models.PropertySummary
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Printf("Error reading search results from cache: %v", err)
	} else if hit {
		return cached, nil
	}

	all, err := s.summaries(ctx)
	if err != nil {
		return nil, err
	}
	results := filter.Apply(all, spec)

	if err := s.cache.Set(ctx, key, results); err != nil {
		log.Printf("Error caching search results: %v", err)
	}
	return results, nil
}

// SimilarProperties returns other listings in the same category as id.
func (s *propertyService) SimilarProperties(ctx context.Context, id primitive.ObjectID) ([]models.PropertySummary, error) {
	all, err := s.summaries(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.ID == id.Hex() {
			return filter.Similar(all, r, s.cfg.SimilarLimit), nil
		}
	}
	return nil, ErrPropertyNotFound
}

// SetFeatured toggles only the featured flag.
func (s *propertyService) SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) (*models.Property, error) {
	return s.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"featured": featured}})
}

// UpdateStatus moves a listing to another status of the status enum.
func (s *propertyService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ListingStatus) (*models.Property, error) {
	if !status.IsValid() {
		return nil, validation.ValidationErrors{{Field: "status", Message: fmt.Sprintf("'%s' is not a valid value for status", status)}}
	}
	return s.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
}

// updateOne applies update to the document matching q, bumps updatedAt and
// returns the document after the change.
func (s *propertyService) updateOne(ctx context.Context, q bson.M, update bson.M) (*models.Property, error) {
	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		update["$set"] = set
	}
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Property
	err := s.collection().FindOneAndUpdate(ctx, q, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	s.invalidate(ctx)
	return &updated, nil
}

// RequestDeletion records the owner's request to take a listing down. Only
// one request may be awaiting review at a time.
func (s *propertyService) RequestDeletion(ctx context.Context, caller Caller, id primitive.ObjectID, reason models.DeletionReason, message string) (*models.Property, error) {
	if !reason.IsValid() {
		return nil, validation.ValidationErrors{{Field: "reason", Message: fmt.Sprintf("'%s' is not a valid value for reason", reason)}}
	}
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanModify(existing) {
		return nil, ErrForbidden
	}
	if existing.DeletionRequest.Requested && existing.DeletionRequest.Status == models.ReviewPending {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	q := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"deletionRequest.requested": false},
			bson.M{"deletionRequest.status": bson.M{"$ne": models.ReviewPending}},
		},
	}
	update := bson.M{"$set": bson.M{
		"deletionRequest": models.DeletionRequest{
			Requested:   true,
			Reason:      reason,
			Message:     message,
			RequestDate: &now,
			Status:      models.ReviewPending,
		},
	}}
	p, err := s.updateOne(ctx, q, update)
	if errors.Is(err, ErrPropertyNotFound) {
		// Lost a race with another request for the same listing.
		return nil, ErrInvalidTransition
	}
	return p, err
}

// ReviewDeletion settles a pending deletion request. Approval does not remove
// the listing; that is a separate admin action.
func (s *propertyService) ReviewDeletion(ctx context.Context, id primitive.ObjectID, decision models.ReviewStatus) (*models.Property, error) {
	if decision != models.ReviewApproved && decision != models.ReviewRejected {
		return nil, validation.ValidationErrors{{Field: "status", Message: "status must be approved or rejected"}}
	}
	q := bson.M{
		"_id":                       id,
		"deletionRequest.requested": true,
		"deletionRequest.status":    models.ReviewPending,
	}
	p, err := s.updateOne(ctx, q, bson.M{"$set": bson.M{"deletionRequest.status": decision}})
	if errors.Is(err, ErrPropertyNotFound) {
		if _, findErr := s.find(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, ErrInvalidTransition
	}
	return p, err
}

// ListDeletionRequests returns listings with a deletion request, optionally
// restricted to one review status.
func (s *propertyService) ListDeletionRequests(ctx context.Context, status models.ReviewStatus) ([]models.Property, error) {
	q := bson.M{"deletionRequest.requested": true}
	if status != "" {
		q["deletionRequest.status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "deletionRequest.requestDate", Value: -1}})
	return s.findMany(ctx, q, opts)
}

// DeleteProperty permanently removes a listing.
func (s *propertyService) DeleteProperty(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete property %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrPropertyNotFound
	}
	s.invalidate(ctx)
	log.Printf("Property %s deleted", id.Hex())
	return nil
}

// IncrementViewCount bumps the view counter. Cached views of the listing keep
// the old count until they expire.
func (s *propertyService) IncrementViewCount(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"viewCount": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views for property %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// AddImage appends an uploaded image to a listing. The placeholder image is
// dropped once a real one arrives, and the first image becomes primary when
// none is.
func (s *propertyService) AddImage(ctx context.Context, caller Caller, id primitive.ObjectID, img models.Image) (*models.Property, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanModify(existing) {
		return nil, ErrForbidden
	}

	img.URL = validation.NormalizeURL(img.URL)
	if img.URL == "" {
		return nil, validation.ValidationErrors{{Field: "url", Message: "url is required"}}
	}

	images := make([]models.Image, 0, len(existing.Images)+1)
	hasPrimary := false
	for _, cur := range existing.Images {
		if cur.URL == s.cfg.PlaceholderImageURL || cur.URL == validation.DefaultPlaceholderImage {
			continue
		}
		if cur.URL == img.URL {
			log.Printf("Image %s already present on property %s", img.URL, id.Hex())
			return existing, nil
		}
		hasPrimary = hasPrimary || cur.IsPrimary
		images = append(images, cur)
	}
	if hasPrimary {
		img.IsPrimary = false
	}
	images = append(images, img)
	if !hasPrimary && !img.IsPrimary {
		images[0].IsPrimary = true
	}

	// Match on updatedAt so a concurrent edit is not overwritten.
	q := bson.M{"_id": id, "updatedAt": existing.UpdatedAt}
	p, err := s.updateOne(ctx, q, bson.M{"$set": bson.M{"images": images}})
	if errors.Is(err, ErrPropertyNotFound) {
		return nil, fmt.Errorf("property %s changed while adding image: %w", id.Hex(), ErrInvalidTransition)
	}
	return p, err
}
