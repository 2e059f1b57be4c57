package model

import "time"

// ResourceKind tags the polymorphic reservable variants. The string values
// double as the wire/storage representation.
type ResourceKind string

const (
	KindSportsFacility  ResourceKind = "sports_facility"
	KindHotelRoom       ResourceKind = "hotel_room"
	KindRestaurantTable ResourceKind = "restaurant_table"
)

func (k ResourceKind) Valid() bool {
	switch k {
	case KindSportsFacility, KindHotelRoom, KindRestaurantTable:
		return true
	}
	return false
}

// VenueTypeFor maps a resource kind to the venue type allowed to hold it.
func VenueTypeFor(kind ResourceKind) VenueType {
	switch kind {
	case KindSportsFacility:
		return VenueSports
	case KindHotelRoom:
		return VenueHotel
	case KindRestaurantTable:
		return VenueRestaurant
	}
	return ""
}

// ReservableResource is the uniform contract the conflict engine and the
// booking flow see. The three variants differ only in capacity semantics and
// pricing; everything else (availability, lifecycle) is kind-agnostic.
type ReservableResource interface {
	Kind() ResourceKind
	ResourceID() string
	VenueRef() string

	// CapacityBounds returns the allowed headcount range. Single-capacity
	// resources report (1, capacity); tables report their declared range.
	CapacityBounds() (min, max int)

	// Active gates NEW bookings only; existing reservations are unaffected
	// by a later deactivation.
	Active() bool

	// DefaultDuration derives an end time when a caller supplies only a
	// start time.
	DefaultDuration() time.Duration

	// PriceCents computes the total price for [start, end) in integer
	// cents. Pure: identical inputs always yield identical output.
	PriceCents(start, end time.Time) int64
}

type SportsFacility struct {
	ID                string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID           string    `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	Name              string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	SportType         string    `json:"sport_type" bson:"sport_type" validate:"required,min=2,max=50"`
	Capacity          int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=1000"`
	PricePerHourCents int64     `json:"price_per_hour_cents" bson:"price_per_hour_cents" validate:"min=0"`
	DurationMinutes   int       `json:"duration_minutes" bson:"duration_minutes" validate:"omitempty,min=15,max=480"`
	Indoor            bool      `json:"indoor" bson:"indoor"`
	HasLighting       bool      `json:"has_lighting" bson:"has_lighting"`
	Amenities         []string  `json:"amenities,omitempty" bson:"amenities,omitempty"`
	IsActive          bool      `json:"is_active" bson:"is_active"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

func (f *SportsFacility) Kind() ResourceKind { return KindSportsFacility }
func (f *SportsFacility) ResourceID() string { return f.ID }
func (f *SportsFacility) VenueRef() string   { return f.VenueID }
func (f *SportsFacility) Active() bool       { return f.IsActive }

func (f *SportsFacility) CapacityBounds() (int, int) {
	return 1, f.Capacity
}

func (f *SportsFacility) DefaultDuration() time.Duration {
	if f.DurationMinutes > 0 {
		return time.Duration(f.DurationMinutes) * time.Minute
	}
	return time.Hour
}

// PriceCents bills the exact fractional hour count: a 90 minute booking at
// 40.00/hour costs exactly 60.00. No rounding up.
func (f *SportsFacility) PriceCents(start, end time.Time) int64 {
	seconds := int64(end.Sub(start) / time.Second)
	if seconds <= 0 {
		return 0
	}
	return f.PricePerHourCents * seconds / 3600
}

type HotelRoom struct {
	ID                 string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID            string    `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	RoomNumber         string    `json:"room_number" bson:"room_number" validate:"required,min=1,max=20"`
	RoomType           string    `json:"room_type" bson:"room_type" validate:"required,min=2,max=50"`
	Capacity           int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=20"`
	PricePerNightCents int64     `json:"price_per_night_cents" bson:"price_per_night_cents" validate:"min=0"`
	BedCount           int       `json:"bed_count,omitempty" bson:"bed_count,omitempty" validate:"omitempty,min=1,max=10"`
	FloorNumber        int       `json:"floor_number,omitempty" bson:"floor_number,omitempty"`
	Amenities          []string  `json:"amenities,omitempty" bson:"amenities,omitempty"`
	IsAccessible       bool      `json:"is_accessible" bson:"is_accessible"`
	IsActive           bool      `json:"is_active" bson:"is_active"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

func (r *HotelRoom) Kind() ResourceKind { return KindHotelRoom }
func (r *HotelRoom) ResourceID() string { return r.ID }
func (r *HotelRoom) VenueRef() string   { return r.VenueID }
func (r *HotelRoom) Active() bool       { return r.IsActive }

func (r *HotelRoom) CapacityBounds() (int, int) {
	return 1, r.Capacity
}

func (r *HotelRoom) DefaultDuration() time.Duration {
	return 24 * time.Hour
}

// PriceCents bills whole nights, rounding partial days UP: a 25 hour stay
// is 2 nights, a 20 hour stay is 1. This asymmetry with facility pricing is
// intentional and load-bearing for hotel billing.
func (r *HotelRoom) PriceCents(start, end time.Time) int64 {
	seconds := int64(end.Sub(start) / time.Second)
	if seconds <= 0 {
		return 0
	}
	nights := (seconds + 86399) / 86400
	return r.PricePerNightCents * nights
}

type RestaurantTable struct {
	ID                 string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID            string    `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	TableNumber        string    `json:"table_number" bson:"table_number" validate:"required,min=1,max=20"`
	Location           string    `json:"location" bson:"location" validate:"required,oneof=indoor outdoor bar private_room"`
	MinCapacity        int       `json:"min_capacity" bson:"min_capacity" validate:"required,min=1,max=100"`
	MaxCapacity        int       `json:"max_capacity" bson:"max_capacity" validate:"required,min=1,max=100,gtefield=MinCapacity"`
	TableType          string    `json:"table_type,omitempty" bson:"table_type,omitempty" validate:"omitempty,oneof=standard booth high_top private"`
	DurationMinutes    int       `json:"duration_minutes" bson:"duration_minutes" validate:"omitempty,min=30,max=480"`
	RequiresDeposit    bool      `json:"requires_deposit" bson:"requires_deposit"`
	DepositCents       int64     `json:"deposit_cents,omitempty" bson:"deposit_cents,omitempty" validate:"min=0"`
	MinimumSpendCents  int64     `json:"minimum_spend_cents,omitempty" bson:"minimum_spend_cents,omitempty" validate:"min=0"`
	IsAccessible       bool      `json:"is_accessible" bson:"is_accessible"`
	IsActive           bool      `json:"is_active" bson:"is_active"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

func (t *RestaurantTable) Kind() ResourceKind { return KindRestaurantTable }
func (t *RestaurantTable) ResourceID() string { return t.ID }
func (t *RestaurantTable) VenueRef() string   { return t.VenueID }
func (t *RestaurantTable) Active() bool       { return t.IsActive }

func (t *RestaurantTable) CapacityBounds() (int, int) {
	return t.MinCapacity, t.MaxCapacity
}

func (t *RestaurantTable) DefaultDuration() time.Duration {
	if t.DurationMinutes > 0 {
		return time.Duration(t.DurationMinutes) * time.Minute
	}
	return 2 * time.Hour
}

// PriceCents is zero for tables: the kitchen bills at the venue. Deposit
// and minimum spend are informational metadata for the booking flow, not a
// precondition the engine enforces.
func (t *RestaurantTable) PriceCents(start, end time.Time) int64 {
	return 0
}

// DepositRequired reports whether the booking flow should collect a deposit
// up front.
func (t *RestaurantTable) DepositRequired() bool {
	return t.RequiresDeposit && t.DepositCents > 0
}

func (t *RestaurantTable) HasMinimumSpend() bool {
	return t.MinimumSpendCents > 0
}
