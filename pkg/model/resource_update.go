package model

// Per-kind update payloads. Pointer fields distinguish "leave unchanged"
// from a deliberate zero (price drops to free, capacity changes, flag
// toggles). Capacity and pricing changes never re-validate existing
// reservations.

type SportsFacilityUpdate struct {
	Name              string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	SportType         string   `json:"sport_type,omitempty" validate:"omitempty,min=2,max=50"`
	Capacity          *int     `json:"capacity,omitempty" validate:"omitempty,min=1,max=1000"`
	PricePerHourCents *int64   `json:"price_per_hour_cents,omitempty" validate:"omitempty,min=0"`
	DurationMinutes   *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=15,max=480"`
	Indoor            *bool    `json:"indoor,omitempty"`
	HasLighting       *bool    `json:"has_lighting,omitempty"`
	Amenities         []string `json:"amenities,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
}

type HotelRoomUpdate struct {
	RoomType           string   `json:"room_type,omitempty" validate:"omitempty,min=2,max=50"`
	Capacity           *int     `json:"capacity,omitempty" validate:"omitempty,min=1,max=20"`
	PricePerNightCents *int64   `json:"price_per_night_cents,omitempty" validate:"omitempty,min=0"`
	BedCount           *int     `json:"bed_count,omitempty" validate:"omitempty,min=1,max=10"`
	FloorNumber        *int     `json:"floor_number,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
	IsAccessible       *bool    `json:"is_accessible,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

type RestaurantTableUpdate struct {
	Location          string `json:"location,omitempty" validate:"omitempty,oneof=indoor outdoor bar private_room"`
	MinCapacity       *int   `json:"min_capacity,omitempty" validate:"omitempty,min=1,max=100"`
	MaxCapacity       *int   `json:"max_capacity,omitempty" validate:"omitempty,min=1,max=100"`
	TableType         string `json:"table_type,omitempty" validate:"omitempty,oneof=standard booth high_top private"`
	DurationMinutes   *int   `json:"duration_minutes,omitempty" validate:"omitempty,min=30,max=480"`
	RequiresDeposit   *bool  `json:"requires_deposit,omitempty"`
	DepositCents      *int64 `json:"deposit_cents,omitempty" validate:"omitempty,min=0"`
	MinimumSpendCents *int64 `json:"minimum_spend_cents,omitempty" validate:"omitempty,min=0"`
	IsAccessible      *bool  `json:"is_accessible,omitempty"`
	IsActive          *bool  `json:"is_active,omitempty"`
}
