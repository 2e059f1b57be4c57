package repository

import (
	"context"
	"errors"
	"fmt"
	"time"
	venueserrors "venuely/internal/venues/errors"
	"venuely/pkg/config"
	mongotx "venuely/pkg/db/mongo"
	"venuely/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const VenueCollectionName = "Venues"

type VenueRepository interface {
	Create(ctx context.Context, venue *model.Venue) error
	FindByID(ctx context.Context, id string) (*model.Venue, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, error)
	FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Venue, error)
	Search(ctx context.Context, cities []string, venueType model.VenueType, limit int, offset int64) ([]*model.Venue, error)
	Update(ctx context.Context, id string, venue *model.Venue) (*mongo.UpdateResult, error)
	SoftDelete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoVenueRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoVenueRepository(cfg *config.Config) VenueRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoVenueRepository{
		cfg:        cfg,
		collection: db.Collection(VenueCollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoVenueRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func notDeleted(filter bson.M) bson.M {
	filter["deleted_at"] = bson.M{"$exists": false}
	return filter
}

func (r *mongoVenueRepository) Create(ctx context.Context, venue *model.Venue) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	venue.CreatedAt = now
	venue.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, venue)
	if err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		venue.ID = oid.Hex()
	}
	return nil
}

func (r *mongoVenueRepository) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", venueserrors.ErrInvalidID, id)
	}

	var venue model.Venue
	err = r.collection.FindOne(ctx, notDeleted(bson.M{"_id": objectID})).Decode(&venue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, venueserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}

	return &venue, nil
}

func (r *mongoVenueRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, error) {
	return r.find(ctx, notDeleted(bson.M{}), limit, offset)
}

func (r *mongoVenueRepository) FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Venue, error) {
	return r.find(ctx, notDeleted(bson.M{"owner_id": ownerID}), limit, offset)
}

func (r *mongoVenueRepository) Search(ctx context.Context, cities []string, venueType model.VenueType, limit int, offset int64) ([]*model.Venue, error) {
	filter := notDeleted(bson.M{
		"is_active": true,
		"city":      bson.M{"$in": cities},
	})
	if venueType != "" {
		filter["type"] = venueType
	}
	return r.find(ctx, filter, limit, offset)
}

func (r *mongoVenueRepository) find(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.Venue, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find venues: %w", err)
	}
	defer cursor.Close(ctx)

	var venues []*model.Venue
	if err = cursor.All(ctx, &venues); err != nil {
		return nil, fmt.Errorf("failed to decode venues: %w", err)
	}

	return venues, nil
}

func (r *mongoVenueRepository) Update(ctx context.Context, id string, venue *model.Venue) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", venueserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        venue.Name,
			"description": venue.Description,
			"address":     venue.Address,
			"city":        venue.City,
			"country":     venue.Country,
			"phone":       venue.Phone,
			"email":       venue.Email,
			"time_zone":   venue.TimeZone,
			"is_active":   venue.IsActive,
			"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, notDeleted(bson.M{"_id": objectID}), update)
	if err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, venueserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoVenueRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", venueserrors.ErrInvalidID, id)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.UpdateOne(
		ctx,
		notDeleted(bson.M{"_id": objectID}),
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	if result.MatchedCount == 0 {
		return venueserrors.ErrNotFound
	}

	return nil
}

func (r *mongoVenueRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, notDeleted(bson.M{}))
	if err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}

	return count, nil
}

func (r *mongoVenueRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
