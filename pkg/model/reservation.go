package model

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// ActiveStatuses are the statuses that occupy a slot for conflict purposes.
// Cancelled and completed reservations never block a new booking.
var ActiveStatuses = []ReservationStatus{StatusPending, StatusConfirmed}

// Terminal reports whether any further transition is allowed out of s.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentRefunded      PaymentStatus = "refunded"
)

// CustomerDetails is snapshotted verbatim onto the reservation at booking
// time and never updated afterwards, so a later profile change cannot
// rewrite the contact record of a past booking.
type CustomerDetails struct {
	Name  string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" bson:"email" validate:"required,email"`
	Phone string `json:"phone" bson:"phone" validate:"required,e164"`
}

type Reservation struct {
	ID               string            `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID           string            `json:"user_id" bson:"user_id" validate:"required"`
	VenueID          string            `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	ResourceKind     ResourceKind      `json:"resource_kind" bson:"resource_kind" validate:"required,oneof=sports_facility hotel_room restaurant_table"`
	ResourceID       string            `json:"resource_id" bson:"resource_id" validate:"required,mongodb"`
	StartTime        time.Time         `json:"start_time" bson:"start_time" validate:"required"`
	EndTime          time.Time         `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	NumberOfPeople   int               `json:"number_of_people" bson:"number_of_people" validate:"required,min=1"`
	Status           ReservationStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	PaymentStatus    PaymentStatus     `json:"payment_status" bson:"payment_status" validate:"required,oneof=pending paid partially_paid refunded"`
	TotalPriceCents  int64             `json:"total_price_cents" bson:"total_price_cents" validate:"min=0"`
	DepositPaidCents int64             `json:"deposit_paid_cents" bson:"deposit_paid_cents" validate:"min=0"`
	SpecialRequests  string            `json:"special_requests,omitempty" bson:"special_requests,omitempty" validate:"omitempty,max=2000"`
	CustomerDetails  CustomerDetails   `json:"customer_details" bson:"customer_details" validate:"required"`
	ConfirmationCode string            `json:"confirmation_code,omitempty" bson:"confirmation_code,omitempty"`

	// CancellationReason and CancelledAt are set together, exactly when the
	// reservation transitions to cancelled.
	CancellationReason *string    `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`

	// Payment integration placeholders. Nothing in the engine reads them.
	PaymentMethod string `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	TransactionID string `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at" validate:"omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

// BalanceDueCents is the amount still owed at confirmation time.
func (r *Reservation) BalanceDueCents() int64 {
	return r.TotalPriceCents - r.DepositPaidCents
}

// Elapsed reports whether the booked interval lies fully in the past.
func (r *Reservation) Elapsed(now time.Time) bool {
	return r.EndTime.Before(now)
}

// ConflictsWith applies the boundary-inclusive overlap predicate: intervals
// that merely touch (one ends exactly when the other starts) count as
// conflicting. Razor-thin back-to-back double bookings are rejected on
// purpose.
func (r *Reservation) ConflictsWith(start, end time.Time) bool {
	return IntervalsConflict(r.StartTime, r.EndTime, start, end)
}

// IntervalsConflict is the single definition of "overlap" used everywhere:
// [s1,e1] and [s2,e2] conflict iff s1 <= e2 AND e1 >= s2, bounds inclusive.
func IntervalsConflict(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}

// ReservationUpdate carries the owner-editable fields. Status transitions go
// through the dedicated confirm/cancel/complete operations, never here.
type ReservationUpdate struct {
	SpecialRequests  *string `json:"special_requests,omitempty" validate:"omitempty,max=2000"`
	DepositPaidCents *int64  `json:"deposit_paid_cents,omitempty" validate:"omitempty,min=0"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
	TransactionID    string  `json:"transaction_id,omitempty"`
}
