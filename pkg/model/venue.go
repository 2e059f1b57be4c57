package model

import "time"

// VenueType declares which resource kind a venue may contain. A venue owns
// resources of its declared type only.
type VenueType string

const (
	VenueSports     VenueType = "sports"
	VenueHotel      VenueType = "hotel"
	VenueRestaurant VenueType = "restaurant"
)

type Venue struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID     string    `json:"owner_id" bson:"owner_id" validate:"required"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Type        VenueType `json:"type" bson:"type" validate:"required,oneof=sports hotel restaurant"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Address     string    `json:"address" bson:"address" validate:"required,min=2,max=200"`
	City        string    `json:"city" bson:"city" validate:"required,min=2,max=100"`
	Country     string    `json:"country,omitempty" bson:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	Phone       string    `json:"phone" bson:"phone" validate:"required,e164"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	TimeZone    string    `json:"time_zone,omitempty" bson:"time_zone,omitempty" validate:"omitempty,timezone"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

type VenueUpdate struct {
	Name        string     `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Address     string     `json:"address,omitempty" validate:"omitempty,min=2,max=200"`
	City        string     `json:"city,omitempty" validate:"omitempty,min=2,max=100"`
	Country     string     `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	Phone       string     `json:"phone,omitempty" validate:"omitempty,e164"`
	Email       *string    `json:"email,omitempty" validate:"omitempty,email"`
	TimeZone    string     `json:"time_zone,omitempty" validate:"omitempty,timezone"`
	IsActive    *bool      `json:"is_active,omitempty"`
}
