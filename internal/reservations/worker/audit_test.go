package worker

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
	"venuely/pkg/kafka"
)

func lifecycleMessage(t *testing.T, eventType string) kafka.Message {
	t.Helper()
	event := kafka.ReservationEvent{
		ReservationID:   "65f000000000000000000009",
		VenueID:         "65f000000000000000000001",
		ResourceKind:    "sports_facility",
		ResourceID:      "65f000000000000000000002",
		UserID:          "user-1",
		Status:          "confirmed",
		StartTime:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
		TotalPriceCents: 4000,
		OccurredAt:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	return kafka.NewReservationEventMessage(eventType, "reservations", event)
}

func TestBuildAuditRecordLifecycle(t *testing.T) {
	msg := lifecycleMessage(t, kafka.EventReservationConfirmed)

	record, err := buildAuditRecord(msg)
	if err != nil {
		t.Fatalf("buildAuditRecord returned error: %v", err)
	}
	if record.EventID == "" {
		t.Error("expected event id from envelope")
	}
	if record.EventType != kafka.EventReservationConfirmed {
		t.Errorf("event type = %q", record.EventType)
	}
	if record.ReservationID != "65f000000000000000000009" {
		t.Errorf("reservation id = %q", record.ReservationID)
	}
	if record.TotalPriceCents != 4000 {
		t.Errorf("total price = %d", record.TotalPriceCents)
	}
	if record.RecordedAt.IsZero() {
		t.Error("expected recorded_at stamped")
	}
}

func TestBuildAuditRecordConflict(t *testing.T) {
	event := kafka.ConflictRejectedEvent{
		VenueID:      "65f000000000000000000001",
		ResourceKind: "hotel_room",
		ResourceID:   "65f000000000000000000003",
		UserID:       "user-2",
		StartTime:    time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC),
		OccurredAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	msg := kafka.NewConflictRejectedMessage("reservations", event)

	record, err := buildAuditRecord(msg)
	if err != nil {
		t.Fatalf("buildAuditRecord returned error: %v", err)
	}
	if record.EventType != kafka.EventReservationRejected {
		t.Errorf("event type = %q", record.EventType)
	}
	if record.ReservationID != "" {
		t.Error("rejected bookings have no reservation id")
	}
	if record.ResourceID != "65f000000000000000000003" {
		t.Errorf("resource id = %q", record.ResourceID)
	}
}

func TestBuildAuditRecordBadPayload(t *testing.T) {
	msg := kafka.NewMessage().
		WithRawValue([]byte("not json")).
		WithEventType(kafka.EventReservationCreated).
		Build()

	_, err := buildAuditRecord(msg)
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}

	var kafkaErr *kafka.KafkaError
	if !errors.As(err, &kafkaErr) || !kafkaErr.IsPermanent() {
		t.Errorf("malformed payload must be a permanent error, got %v", err)
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	msg := lifecycleMessage(t, kafka.EventReservationCancelled)

	var decoded kafka.ReservationEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.Status != "confirmed" {
		t.Errorf("decoded status = %q", decoded.Status)
	}
	if msg.Key != decoded.ReservationID {
		t.Errorf("partition key %q should be the reservation id", msg.Key)
	}
}
