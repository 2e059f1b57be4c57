package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venuely/internal/migrations/mongo/validators"
	reservationsrepo "venuely/internal/reservations/repository"
	"venuely/internal/reservations/worker"
	venuesrepo "venuely/internal/venues/repository"
)

var (
	VenueIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{
			{Key: "city", Value: 1},
			{Key: "type", Value: 1},
			{Key: "is_active", Value: 1},
		}},
	}

	ResourceIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "venue_id", Value: 1}}},
	}

	ReservationIndexes = []mongo.IndexModel{
		// the conflict scan: all reservations of one resource in a window
		{Keys: bson.D{
			{Key: "resource_kind", Value: 1},
			{Key: "resource_id", Value: 1},
			{Key: "start_time", Value: 1},
			{Key: "end_time", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "start_time", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "venue_id", Value: 1},
			{Key: "start_time", Value: -1},
		}},
		// codes are unique among documents that have one; soft-deleted
		// reservations keep theirs without blocking reuse checks
		{
			Keys: bson.D{{Key: "confirmation_code", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"confirmation_code": bson.M{"$exists": true},
				}),
		},
	}

	// expired locks are reaped by Mongo itself; expireAfterSeconds 0 means
	// "at the expires_at timestamp"
	ReservationLockIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	AuditIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "reservation_id", Value: 1},
			{Key: "occurred_at", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "venue_id", Value: 1},
			{Key: "event_type", Value: 1},
			{Key: "occurred_at", Value: -1},
		}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running Venuely Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		venuesrepo.VenueCollectionName: {
			Indexes:   VenueIndexes,
			Validator: validators.VenueValidator,
		},
		venuesrepo.FacilityCollectionName: {
			Indexes:   ResourceIndexes,
			Validator: validators.SportsFacilityValidator,
		},
		venuesrepo.RoomCollectionName: {
			Indexes:   ResourceIndexes,
			Validator: validators.HotelRoomValidator,
		},
		venuesrepo.TableCollectionName: {
			Indexes:   ResourceIndexes,
			Validator: validators.RestaurantTableValidator,
		},
		reservationsrepo.CollectionName: {
			Indexes:   ReservationIndexes,
			Validator: validators.ReservationValidator,
		},
		reservationsrepo.LockCollectionName: {
			Indexes:   ReservationLockIndexes,
			Validator: validators.ReservationLockValidator,
		},
		worker.AuditCollectionName: {
			Indexes:   AuditIndexes,
			Validator: validators.AuditEventValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
