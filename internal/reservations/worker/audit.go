package worker

import (
	"context"
	"time"
	"venuely/pkg/config"
	"venuely/pkg/kafka"
	kafka_config "venuely/pkg/kafka/config"
	kafka_middleware "venuely/pkg/kafka/middleware"

	"go.mongodb.org/mongo-driver/mongo"
)

const AuditCollectionName = "Reservation_events"

// AuditRecord is one reservation event projected into Mongo. The event id
// doubles as _id, so a redelivered message lands on a duplicate key instead
// of a duplicate row.
type AuditRecord struct {
	EventID         string    `bson:"_id"`
	EventType       string    `bson:"event_type"`
	ReservationID   string    `bson:"reservation_id,omitempty"`
	VenueID         string    `bson:"venue_id"`
	ResourceKind    string    `bson:"resource_kind"`
	ResourceID      string    `bson:"resource_id"`
	UserID          string    `bson:"user_id"`
	Status          string    `bson:"status,omitempty"`
	StartTime       time.Time `bson:"start_time"`
	EndTime         time.Time `bson:"end_time"`
	TotalPriceCents int64     `bson:"total_price_cents,omitempty"`
	Reason          string    `bson:"reason,omitempty"`
	OccurredAt      time.Time `bson:"occurred_at"`
	RecordedAt      time.Time `bson:"recorded_at"`
}

// AuditStore persists audit records.
type AuditStore interface {
	Insert(ctx context.Context, record *AuditRecord) error
}

type mongoAuditStore struct {
	collection *mongo.Collection
}

func NewMongoAuditStore(cfg *config.Config) AuditStore {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAuditStore{collection: db.Collection(AuditCollectionName)}
}

func (s *mongoAuditStore) Insert(ctx context.Context, record *AuditRecord) error {
	_, err := s.collection.InsertOne(ctx, record)
	return err
}

// AuditWorker consumes the reservation event stream and projects every
// event into the audit collection. Analytics and support queries read the
// projection instead of replaying the topic.
type AuditWorker struct {
	consumer *kafka.Consumer
	store    AuditStore
	cfg      *config.Config
}

func NewAuditWorker(cfg *config.Config, store AuditStore, groupID string) (*AuditWorker, error) {
	worker := &AuditWorker{
		store: store,
		cfg:   cfg,
	}

	kafkaCfg := kafka_config.Load()
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.EventsTopic, groupID, cfg.EventsDLQTopic, worker.handle)
	if err != nil {
		return nil, err
	}

	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.MetricsConsumerMiddleware())
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware())
	}

	worker.consumer = consumer
	return worker, nil
}

func (w *AuditWorker) Run(ctx context.Context) error {
	w.cfg.Log.Info("Audit worker consuming", "topic", w.cfg.EventsTopic)
	return w.consumer.Start(ctx)
}

func (w *AuditWorker) Close() error {
	return w.consumer.Close()
}

func (w *AuditWorker) handle(ctx context.Context, msg kafka.Message) error {
	record, err := buildAuditRecord(msg)
	if err != nil {
		return err
	}

	if err := w.store.Insert(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// redelivery of an event already projected
			return nil
		}
		return kafka.NewTransientError("failed to store audit record", err)
	}

	w.cfg.Log.Debug("Reservation event recorded",
		"event_id", record.EventID,
		"event_type", record.EventType,
		"reservation_id", record.ReservationID,
	)
	return nil
}

func buildAuditRecord(msg kafka.Message) (*AuditRecord, error) {
	eventType := msg.GetEventType()

	record := &AuditRecord{
		EventID:    msg.GetEventID(),
		EventType:  eventType,
		RecordedAt: time.Now().UTC(),
	}

	if eventType == kafka.EventReservationRejected {
		var event kafka.ConflictRejectedEvent
		if err := msg.DecodeValue(&event); err != nil {
			return nil, kafka.NewPermanentError("invalid conflict event payload", err)
		}
		record.VenueID = event.VenueID
		record.ResourceKind = event.ResourceKind
		record.ResourceID = event.ResourceID
		record.UserID = event.UserID
		record.StartTime = event.StartTime
		record.EndTime = event.EndTime
		record.OccurredAt = event.OccurredAt
		return record, nil
	}

	var event kafka.ReservationEvent
	if err := msg.DecodeValue(&event); err != nil {
		return nil, kafka.NewPermanentError("invalid reservation event payload", err)
	}
	record.ReservationID = event.ReservationID
	record.VenueID = event.VenueID
	record.ResourceKind = event.ResourceKind
	record.ResourceID = event.ResourceID
	record.UserID = event.UserID
	record.Status = event.Status
	record.StartTime = event.StartTime
	record.EndTime = event.EndTime
	record.TotalPriceCents = event.TotalPriceCents
	record.Reason = event.Reason
	record.OccurredAt = event.OccurredAt
	return record, nil
}
