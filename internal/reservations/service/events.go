package service

import (
	"context"
	"time"
	"venuely/pkg/config"
	"venuely/pkg/kafka"
	kafka_config "venuely/pkg/kafka/config"
	kafka_middleware "venuely/pkg/kafka/middleware"
	"venuely/pkg/model"
)

// EventPublisher emits reservation lifecycle events. Publishing is
// best-effort: a broker outage never fails the booking, it only costs the
// downstream notification.
type EventPublisher interface {
	PublishLifecycle(ctx context.Context, eventType string, reservation *model.Reservation)
	PublishConflictRejected(ctx context.Context, reservation *model.Reservation)
	Close() error
}

type kafkaEventPublisher struct {
	producer *kafka.Producer
	cfg      *config.Config
}

// NewKafkaEventPublisher wires the producer against the reservation events
// topic with its DLQ.
func NewKafkaEventPublisher(cfg *config.Config) (EventPublisher, error) {
	kafkaCfg := kafka_config.Load()

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic, cfg.EventsDLQTopic)
	if err != nil {
		return nil, err
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.MetricsProducerMiddleware())
		producer.Use(kafka_middleware.LoggingProducerMiddleware())
	}

	return &kafkaEventPublisher{
		producer: producer,
		cfg:      cfg,
	}, nil
}

func (p *kafkaEventPublisher) PublishLifecycle(ctx context.Context, eventType string, reservation *model.Reservation) {
	event := kafka.ReservationEvent{
		ReservationID:    reservation.ID,
		VenueID:          reservation.VenueID,
		ResourceKind:     string(reservation.ResourceKind),
		ResourceID:       reservation.ResourceID,
		UserID:           reservation.UserID,
		Status:           string(reservation.Status),
		StartTime:        reservation.StartTime,
		EndTime:          reservation.EndTime,
		TotalPriceCents:  reservation.TotalPriceCents,
		ConfirmationCode: reservation.ConfirmationCode,
		CustomerPhone:    reservation.CustomerDetails.Phone,
		OccurredAt:       time.Now().UTC(),
	}
	if reservation.CancellationReason != nil {
		event.Reason = *reservation.CancellationReason
	}

	msg := kafka.NewReservationEventMessage(eventType, "reservations", event)
	if err := p.producer.Publish(ctx, msg); err != nil {
		p.cfg.Log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
	}
}

func (p *kafkaEventPublisher) PublishConflictRejected(ctx context.Context, reservation *model.Reservation) {
	event := kafka.ConflictRejectedEvent{
		VenueID:      reservation.VenueID,
		ResourceKind: string(reservation.ResourceKind),
		ResourceID:   reservation.ResourceID,
		UserID:       reservation.UserID,
		StartTime:    reservation.StartTime,
		EndTime:      reservation.EndTime,
		OccurredAt:   time.Now().UTC(),
	}

	msg := kafka.NewConflictRejectedMessage("reservations", event)
	if err := p.producer.Publish(ctx, msg); err != nil {
		p.cfg.Log.Warn("Failed to publish conflict rejection event",
			"resource_id", reservation.ResourceID,
			"error", err,
		)
	}
}

func (p *kafkaEventPublisher) Close() error {
	return p.producer.Close()
}

// NoopEventPublisher is used when RESERVATION_EVENTS_ENABLED is false and in
// tests.
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishLifecycle(ctx context.Context, eventType string, reservation *model.Reservation) {
}
func (NoopEventPublisher) PublishConflictRejected(ctx context.Context, reservation *model.Reservation) {
}
func (NoopEventPublisher) Close() error { return nil }
