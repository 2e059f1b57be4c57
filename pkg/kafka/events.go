package kafka

import "time"

// Topics for the reservation event stream. Every service publishes lifecycle
// events here; downstream consumers (notifications, analytics) attach their
// own group IDs.
const (
	TopicReservationEvents = "reservation-events"
	TopicReservationDLQ    = "dlq-reservation-events"
)

// Event types carried in the event-type header.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationRejected  = "reservation.conflict_rejected"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationCompleted = "reservation.completed"
	EventReservationDeleted   = "reservation.deleted"
)

const EventSchemaVersion = "1"

// ReservationEvent is the payload published for every lifecycle transition.
// It carries enough to notify without a read-back: the consumer side is
// often a notification worker with no database access.
type ReservationEvent struct {
	ReservationID    string    `json:"reservation_id"`
	VenueID          string    `json:"venue_id"`
	ResourceKind     string    `json:"resource_kind"`
	ResourceID       string    `json:"resource_id"`
	UserID           string    `json:"user_id"`
	Status           string    `json:"status"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	TotalPriceCents  int64     `json:"total_price_cents"`
	ConfirmationCode string    `json:"confirmation_code,omitempty"`
	CustomerPhone    string    `json:"customer_phone,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// ConflictRejectedEvent records a booking attempt the overlap check turned
// away. Feeds demand analytics: a venue with many rejections wants more
// capacity.
type ConflictRejectedEvent struct {
	VenueID      string    `json:"venue_id"`
	ResourceKind string    `json:"resource_kind"`
	ResourceID   string    `json:"resource_id"`
	UserID       string    `json:"user_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewReservationEventMessage assembles the standard envelope for a lifecycle
// event. The reservation id is the partition key.
func NewReservationEventMessage(eventType, source string, event ReservationEvent) Message {
	return NewMessage().
		WithKey(event.ReservationID).
		WithValue(event).
		WithEventType(eventType).
		WithReservationID(event.ReservationID).
		WithSchemaVersion(EventSchemaVersion).
		WithSource(source).
		Build()
}

// NewConflictRejectedMessage keys by resource so rejection bursts for one
// slot stay ordered.
func NewConflictRejectedMessage(source string, event ConflictRejectedEvent) Message {
	return NewMessage().
		WithKey(event.ResourceKind + ":" + event.ResourceID).
		WithValue(event).
		WithEventType(EventReservationRejected).
		WithSchemaVersion(EventSchemaVersion).
		WithSource(source).
		Build()
}
