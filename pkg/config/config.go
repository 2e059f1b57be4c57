package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"venuely/pkg/client"
	"venuely/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	PartnerWebhookSecret string
	SlotTokenKey         string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	VenuesServiceURL       string
	ReservationsServiceURL string

	DefaultTableDurationMin    int
	DefaultFacilitySlotMin     int
	MaxPartySize               int
	ConfirmationCodeLength     int
	ConfirmationCodeMaxRetries int
	ReservationLockTTL         time.Duration
	OverlapScanLimit           int

	EventsTopic    string
	EventsDLQTopic string
	EventsEnabled  bool

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		PartnerWebhookSecret: getEnvStr(EnvPartnerWebhookSecret, ""),
		SlotTokenKey:         getEnvStr(EnvSlotTokenKey, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		VenuesServiceURL:       getEnvStr(EnvVenuesServiceURL, DefaultVenuesServiceURL),
		ReservationsServiceURL: getEnvStr(EnvReservationsServiceURL, DefaultReservationsServiceURL),

		DefaultTableDurationMin:    getEnvNum(EnvDefaultTableDurationMin, DefaultDefaultTableDurationMin),
		DefaultFacilitySlotMin:     getEnvNum(EnvDefaultFacilitySlotMin, DefaultDefaultFacilitySlotMin),
		MaxPartySize:               getEnvNum(EnvMaxPartySize, DefaultMaxPartySize),
		ConfirmationCodeLength:     getEnvNum(EnvConfirmationCodeLength, DefaultConfirmationCodeLength),
		ConfirmationCodeMaxRetries: getEnvNum(EnvConfirmationCodeMaxRetries, DefaultConfirmationCodeMaxRetries),
		ReservationLockTTL:         getEnvDuration(EnvReservationLockTTL, DefaultReservationLockTTL),
		OverlapScanLimit:           getEnvNum(EnvOverlapScanLimit, DefaultOverlapScanLimit),

		EventsTopic:    getEnvStr(EnvEventsTopic, DefaultEventsTopic),
		EventsDLQTopic: getEnvStr(EnvEventsDLQTopic, DefaultEventsDLQTopic),
		EventsEnabled:  getEnvBool(EnvEventsEnabled, DefaultEventsEnabled),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errs = append(errs, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errs = append(errs, "MongoDatabaseName cannot be empty")
	}

	for name, d := range map[string]time.Duration{
		"MongoConnTimeout":   cfg.MongoConnTimeout,
		"RateLimitWindow":    cfg.RateLimitWindow,
		"RequestTimeout":     cfg.RequestTimeout,
		"IdempotencyTTL":     cfg.IdempotencyTTL,
		"ReadTimeout":        cfg.ReadTimeout,
		"WriteTimeout":       cfg.WriteTimeout,
		"IdleTimeout":        cfg.IdleTimeout,
		"ShutdownTimeout":    cfg.ShutdownTimeout,
		"ReservationLockTTL": cfg.ReservationLockTTL,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.DefaultTableDurationMin <= 0 {
		errs = append(errs, fmt.Sprintf("DefaultTableDurationMin must be positive, got: %d", cfg.DefaultTableDurationMin))
	}
	if cfg.DefaultFacilitySlotMin <= 0 {
		errs = append(errs, fmt.Sprintf("DefaultFacilitySlotMin must be positive, got: %d", cfg.DefaultFacilitySlotMin))
	}
	if cfg.MaxPartySize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxPartySize must be positive, got: %d", cfg.MaxPartySize))
	}
	if cfg.ConfirmationCodeLength < 6 {
		errs = append(errs, fmt.Sprintf("ConfirmationCodeLength must be at least 6, got: %d", cfg.ConfirmationCodeLength))
	}
	if cfg.ConfirmationCodeMaxRetries <= 0 {
		errs = append(errs, fmt.Sprintf("ConfirmationCodeMaxRetries must be positive, got: %d", cfg.ConfirmationCodeMaxRetries))
	}
	if cfg.OverlapScanLimit <= 0 {
		errs = append(errs, fmt.Sprintf("OverlapScanLimit must be positive, got: %d", cfg.OverlapScanLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"partner_webhook_secret_set", cfg.PartnerWebhookSecret != "",
		"slot_token_key_set", cfg.SlotTokenKey != "",
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_table_duration_min", cfg.DefaultTableDurationMin,
		"default_facility_slot_min", cfg.DefaultFacilitySlotMin,
		"max_party_size", cfg.MaxPartySize,
		"confirmation_code_length", cfg.ConfirmationCodeLength,
		"reservation_lock_ttl", cfg.ReservationLockTTL,
		"overlap_scan_limit", cfg.OverlapScanLimit,
		"events_topic", cfg.EventsTopic,
		"events_enabled", cfg.EventsEnabled,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
