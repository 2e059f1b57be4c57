package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "venuely"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultVenuesServiceURL       = "http://localhost:8081"
	DefaultReservationsServiceURL = "http://localhost:8082"

	// Restaurant tables without an explicit duration get a two hour sitting;
	// sports facilities default to one hour slots. Both mirror the values
	// venue owners most commonly configure.
	DefaultDefaultTableDurationMin = 120
	DefaultDefaultFacilitySlotMin  = 60

	DefaultMaxPartySize = 200

	DefaultConfirmationCodeLength     = 8
	DefaultConfirmationCodeMaxRetries = 5

	// Advisory lock TTL bounds how long a crashed create can block a slot.
	DefaultReservationLockTTL = 10 * time.Second

	// Upper bound on reservations fetched for one overlap check.
	DefaultOverlapScanLimit = 50

	DefaultEventsTopic    = "reservation-events"
	DefaultEventsDLQTopic = "dlq-reservation-events"
	DefaultEventsEnabled  = false

	DefaultPaginationLimit = 100
)
