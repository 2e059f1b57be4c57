package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvPartnerWebhookSecret = "PARTNER_WEBHOOK_SECRET"
	EnvSlotTokenKey         = "SLOT_TOKEN_KEY"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvVenuesServiceURL       = "VENUES_SERVICE_URL"
	EnvReservationsServiceURL = "RESERVATIONS_SERVICE_URL"

	EnvDefaultTableDurationMin    = "DEFAULT_TABLE_DURATION_MIN"
	EnvDefaultFacilitySlotMin     = "DEFAULT_FACILITY_SLOT_MIN"
	EnvMaxPartySize               = "MAX_PARTY_SIZE"
	EnvConfirmationCodeLength     = "CONFIRMATION_CODE_LENGTH"
	EnvConfirmationCodeMaxRetries = "CONFIRMATION_CODE_MAX_RETRIES"
	EnvReservationLockTTL         = "RESERVATION_LOCK_TTL"
	EnvOverlapScanLimit           = "OVERLAP_SCAN_LIMIT"

	EnvEventsTopic    = "RESERVATION_EVENTS_TOPIC"
	EnvEventsDLQTopic = "RESERVATION_EVENTS_DLQ_TOPIC"
	EnvEventsEnabled  = "RESERVATION_EVENTS_ENABLED"
)
