package flows

import (
	"net/http"
	"venuely/internal/concierge/core"
	"venuely/pkg/model"
)

// CreateReservationFlow books the slot behind a token handed out by the
// availability flow. The booking engine re-checks conflicts under its own
// lock, so a stale token fails there, not here.
func CreateReservationFlow() *core.Flow {
	return core.NewFlow("create_reservation",
		&core.Step{Name: "open slot token", Execute: openSlotToken},
		&core.Step{Name: "build reservation", Execute: buildReservation},
		&core.Step{Name: "book slot", Execute: bookSlot},
	)
}

func openSlotToken(fc *core.FlowContext) error {
	token, err := fc.ExtractString("slot_token")
	if err != nil {
		return err
	}

	venueID, kind, resourceID, err := fc.Sealer.OpenSlot(token)
	if err != nil {
		return err
	}

	fc.Process["venue_id"] = venueID
	fc.Process["kind"] = model.ResourceKind(kind)
	fc.Process["resource_id"] = resourceID
	return nil
}

func buildReservation(fc *core.FlowContext) error {
	startTime, err := fc.ExtractTime("start_time")
	if err != nil {
		return err
	}

	userID, err := fc.ExtractString("user_id")
	if err != nil {
		return err
	}

	customerName, err := fc.ExtractString("customer_name")
	if err != nil {
		return err
	}
	customerEmail, err := fc.ExtractString("customer_email")
	if err != nil {
		return err
	}
	customerPhone, err := fc.ExtractString("customer_phone")
	if err != nil {
		return err
	}

	reservation := &model.Reservation{
		UserID:          userID,
		VenueID:         fc.Process["venue_id"].(string),
		ResourceKind:    fc.Process["kind"].(model.ResourceKind),
		ResourceID:      fc.Process["resource_id"].(string),
		StartTime:       startTime,
		NumberOfPeople:  fc.OptionalInt("number_of_people", 1),
		SpecialRequests: fc.OptionalString("special_requests"),
		CustomerDetails: model.CustomerDetails{
			Name:  customerName,
			Email: customerEmail,
			Phone: customerPhone,
		},
	}

	// end_time is optional: the booking engine derives it from the
	// resource's default duration when absent.
	if endTime, present, err := fc.OptionalTime("end_time"); err != nil {
		return err
	} else if present {
		reservation.EndTime = endTime
	}

	fc.Process["reservation"] = reservation
	return nil
}

func bookSlot(fc *core.FlowContext) error {
	reservation := fc.Process["reservation"].(*model.Reservation)

	resp, err := fc.Client.Reservations.Create(fc.Ctx, reservation)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return remoteErr("reservation create", resp)
	}

	created, err := fc.Client.Reservations.DecodeReservation(resp)
	if err != nil {
		return err
	}

	fc.Output["reservation_id"] = created.ID
	fc.Output["confirmation_code"] = created.ConfirmationCode
	fc.Output["status"] = string(created.Status)
	fc.Output["total_price_cents"] = created.TotalPriceCents
	fc.Output["start_time"] = created.StartTime
	fc.Output["end_time"] = created.EndTime
	return nil
}
