package repository

import (
	"context"
	"errors"
	"fmt"
	"time"
	venueserrors "venuely/internal/venues/errors"
	"venuely/pkg/config"
	"venuely/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	FacilityCollectionName = "SportsFacilities"
	RoomCollectionName     = "HotelRooms"
	TableCollectionName    = "RestaurantTables"
)

// CollectionForKind maps a resource kind to its backing collection. Shared
// with the migration runner so indexes land on the right collections.
func CollectionForKind(kind model.ResourceKind) (string, error) {
	switch kind {
	case model.KindSportsFacility:
		return FacilityCollectionName, nil
	case model.KindHotelRoom:
		return RoomCollectionName, nil
	case model.KindRestaurantTable:
		return TableCollectionName, nil
	}
	return "", fmt.Errorf("unknown resource kind: %s", kind)
}

// ResourceRepository stores the three resource variants, one collection per
// kind. Documents are decoded back into their concrete type, exposed through
// the ReservableResource interface.
type ResourceRepository interface {
	Create(ctx context.Context, resource model.ReservableResource) (string, error)
	FindByID(ctx context.Context, kind model.ResourceKind, id string) (model.ReservableResource, error)
	FindByVenue(ctx context.Context, kind model.ResourceKind, venueID string, limit int, offset int64) ([]model.ReservableResource, error)
	CountByVenue(ctx context.Context, kind model.ResourceKind, venueID string) (int64, error)
	Update(ctx context.Context, kind model.ResourceKind, id string, fields bson.M) error
	Delete(ctx context.Context, kind model.ResourceKind, id string) error
}

type mongoResourceRepository struct {
	cfg *config.Config
	db  *mongo.Database
}

func NewMongoResourceRepository(cfg *config.Config) ResourceRepository {
	return &mongoResourceRepository{
		cfg: cfg,
		db:  cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
	}
}

func (r *mongoResourceRepository) collection(kind model.ResourceKind) (*mongo.Collection, error) {
	name, err := CollectionForKind(kind)
	if err != nil {
		return nil, err
	}
	return r.db.Collection(name), nil
}

func (r *mongoResourceRepository) Create(ctx context.Context, resource model.ReservableResource) (string, error) {
	coll, err := r.collection(resource.Kind())
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	stampTimestamps(resource, now)

	result, err := coll.InsertOne(ctx, resource)
	if err != nil {
		return "", fmt.Errorf("failed to create resource: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

func (r *mongoResourceRepository) FindByID(ctx context.Context, kind model.ResourceKind, id string) (model.ReservableResource, error) {
	coll, err := r.collection(kind)
	if err != nil {
		return nil, err
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", venueserrors.ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	result := coll.FindOne(ctx, bson.M{"_id": objectID})
	resource, err := decodeOne(kind, result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, venueserrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}

	return resource, nil
}

func (r *mongoResourceRepository) FindByVenue(ctx context.Context, kind model.ResourceKind, venueID string, limit int, offset int64) ([]model.ReservableResource, error) {
	coll, err := r.collection(kind)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := coll.Find(ctx, bson.M{"venue_id": venueID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find resources: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeAll(ctx, kind, cursor)
}

func (r *mongoResourceRepository) CountByVenue(ctx context.Context, kind model.ResourceKind, venueID string) (int64, error) {
	coll, err := r.collection(kind)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := coll.CountDocuments(ctx, bson.M{"venue_id": venueID})
	if err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}
	return count, nil
}

// Update applies a caller-built field set. The service owns which fields are
// mutable per kind.
func (r *mongoResourceRepository) Update(ctx context.Context, kind model.ResourceKind, id string, fields bson.M) error {
	coll, err := r.collection(kind)
	if err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", venueserrors.ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	fields["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)

	result, err := coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update resource: %w", err)
	}

	if result.MatchedCount == 0 {
		return venueserrors.ErrResourceNotFound
	}

	return nil
}

func (r *mongoResourceRepository) Delete(ctx context.Context, kind model.ResourceKind, id string) error {
	coll, err := r.collection(kind)
	if err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", venueserrors.ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	if result.DeletedCount == 0 {
		return venueserrors.ErrResourceNotFound
	}

	return nil
}

func stampTimestamps(resource model.ReservableResource, now time.Time) {
	switch res := resource.(type) {
	case *model.SportsFacility:
		res.CreatedAt = now
		res.UpdatedAt = now
	case *model.HotelRoom:
		res.CreatedAt = now
		res.UpdatedAt = now
	case *model.RestaurantTable:
		res.CreatedAt = now
		res.UpdatedAt = now
	}
}

func decodeOne(kind model.ResourceKind, result *mongo.SingleResult) (model.ReservableResource, error) {
	switch kind {
	case model.KindSportsFacility:
		var facility model.SportsFacility
		if err := result.Decode(&facility); err != nil {
			return nil, err
		}
		return &facility, nil
	case model.KindHotelRoom:
		var room model.HotelRoom
		if err := result.Decode(&room); err != nil {
			return nil, err
		}
		return &room, nil
	case model.KindRestaurantTable:
		var table model.RestaurantTable
		if err := result.Decode(&table); err != nil {
			return nil, err
		}
		return &table, nil
	}
	return nil, fmt.Errorf("unknown resource kind: %s", kind)
}

func decodeAll(ctx context.Context, kind model.ResourceKind, cursor *mongo.Cursor) ([]model.ReservableResource, error) {
	switch kind {
	case model.KindSportsFacility:
		var facilities []*model.SportsFacility
		if err := cursor.All(ctx, &facilities); err != nil {
			return nil, fmt.Errorf("failed to decode resources: %w", err)
		}
		return asResources(facilities), nil
	case model.KindHotelRoom:
		var rooms []*model.HotelRoom
		if err := cursor.All(ctx, &rooms); err != nil {
			return nil, fmt.Errorf("failed to decode resources: %w", err)
		}
		return asResources(rooms), nil
	case model.KindRestaurantTable:
		var tables []*model.RestaurantTable
		if err := cursor.All(ctx, &tables); err != nil {
			return nil, fmt.Errorf("failed to decode resources: %w", err)
		}
		return asResources(tables), nil
	}
	return nil, fmt.Errorf("unknown resource kind: %s", kind)
}

func asResources[T model.ReservableResource](items []T) []model.ReservableResource {
	resources := make([]model.ReservableResource, len(items))
	for i, item := range items {
		resources[i] = item
	}
	return resources
}
