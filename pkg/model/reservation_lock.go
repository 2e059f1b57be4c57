package model

import "time"

// ReservationLock is an advisory lock preventing two concurrent creates from
// both passing the overlap check for the same resource. The _id is derived
// from the resource coordinates, so a second insert fails on the unique
// index; ExpiresAt backs a TTL index in case a holder dies before releasing.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
