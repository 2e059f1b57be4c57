package main

import (
	"venuely/internal/venues/handler"
	"venuely/internal/venues/repository"
	"venuely/internal/venues/service"
	"venuely/internal/venues/validator"
	"venuely/pkg/app"
	"venuely/pkg/config"
)

const ServiceName = "venues"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Venues service")
	venueService, resourceService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewVenueHandler(venueService, resourceService, cfg))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.VenueService, service.ResourceService) {
	venueValidator := validator.NewVenueValidator(cfg.Log)
	venueRepo := repository.NewMongoVenueRepository(cfg)
	resourceRepo := repository.NewMongoResourceRepository(cfg)

	venueService := service.NewVenueService(venueRepo, venueValidator, cfg)
	resourceService := service.NewResourceService(venueRepo, resourceRepo, venueValidator, cfg)

	cfg.Log.Info("Venue services initialized", "database", cfg.MongoDatabaseName)
	return venueService, resourceService
}
