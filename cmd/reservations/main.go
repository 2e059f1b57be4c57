package main

import (
	"venuely/internal/reservations/handler"
	"venuely/internal/reservations/repository"
	"venuely/internal/reservations/service"
	"venuely/internal/reservations/validator"
	"venuely/pkg/app"
	"venuely/pkg/config"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.Client.SetVenues(cfg.VenuesServiceURL)

	cfg.Log.Info("Starting Reservations service")
	reservationService, publisher := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, cfg))
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	})
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.ReservationService, service.EventPublisher) {
	reservationValidator := validator.NewReservationValidator(cfg.Log, cfg.MaxPartySize)
	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewReservationLockRepository(cfg)
	resolver := service.NewHTTPResourceResolver(cfg.Client.Venues)

	var publisher service.EventPublisher = service.NoopEventPublisher{}
	if cfg.EventsEnabled {
		kafkaPublisher, err := service.NewKafkaEventPublisher(cfg)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
		}
		publisher = kafkaPublisher
		cfg.Log.Info("Reservation event publishing enabled", "topic", cfg.EventsTopic)
	}

	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		resolver,
		reservationValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService, publisher
}
