package main

import (
	"venuely/internal/concierge/handler"
	"venuely/internal/concierge/service"
	"venuely/pkg/app"
	"venuely/pkg/config"
	"venuely/pkg/sealer"
)

const ServiceName = "concierge"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Client.SetVenues(cfg.VenuesServiceURL)
	cfg.Client.SetReservations(cfg.ReservationsServiceURL)

	cfg.Log.Info("Starting Concierge service",
		"venues_url", cfg.VenuesServiceURL,
		"reservations_url", cfg.ReservationsServiceURL,
	)

	slotSealer, err := newSealer(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize slot sealer", "error", err)
	}

	conciergeService := service.NewConciergeService(cfg.Client, slotSealer, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewFlowHandler(conciergeService, cfg.Log))
	serverApp.Run()
}

func newSealer(cfg *config.Config) (*sealer.Sealer, error) {
	if cfg.SlotTokenKey != "" {
		return sealer.New(cfg.SlotTokenKey)
	}
	return sealer.NewFromEnv()
}
