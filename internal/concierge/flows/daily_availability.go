package flows

import (
	"fmt"
	"time"
	"venuely/internal/concierge/core"
	"venuely/pkg/model"
)

// DailyAvailabilityFlow lists the open slots of a venue for one day. Each
// offered slot carries an opaque token the guest passes back to
// create_reservation, so raw resource identifiers never leave the backend.
func DailyAvailabilityFlow() *core.Flow {
	return core.NewFlow("get_daily_availability",
		&core.Step{Name: "load venue", Execute: loadVenue},
		&core.Step{Name: "resolve day window", Execute: resolveDayWindow},
		&core.Step{Name: "list resources", Execute: listVenueResources},
		&core.Step{Name: "compute open slots", Execute: computeOpenSlots},
	)
}

// SlotOffer is one bookable interval on one resource.
type SlotOffer struct {
	Token        string    `json:"token"`
	ResourceName string    `json:"resource_name"`
	Kind         string    `json:"kind"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	PriceCents   int64     `json:"price_cents"`
	MinCapacity  int       `json:"min_capacity"`
	MaxCapacity  int       `json:"max_capacity"`
}

func loadVenue(fc *core.FlowContext) error {
	venueID, err := fc.ExtractString("venue_id")
	if err != nil {
		return err
	}

	resp, err := fc.Client.Venues.GetByID(fc.Ctx, venueID)
	if err != nil {
		return err
	}
	if !ok(resp) {
		return remoteErr("venue lookup", resp)
	}

	venue, err := fc.Client.Venues.DecodeVenue(resp)
	if err != nil {
		return err
	}
	if !venue.IsActive {
		return fmt.Errorf("venue [%v] is not accepting bookings", venueID)
	}

	fc.Process["venue"] = venue
	return nil
}

// resolveDayWindow anchors the requested calendar date in the venue's own
// timezone. "Tomorrow in Tokyo" is not "tomorrow in New York".
func resolveDayWindow(fc *core.FlowContext) error {
	venue := fc.Process["venue"].(*model.Venue)

	loc := time.UTC
	if venue.TimeZone != "" {
		parsed, err := time.LoadLocation(venue.TimeZone)
		if err != nil {
			return fmt.Errorf("venue has invalid timezone [%v]: %w", venue.TimeZone, err)
		}
		loc = parsed
	}

	day := time.Now().In(loc)
	if raw := fc.OptionalString("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return fmt.Errorf("param [date] must be YYYY-MM-DD: %v", raw)
		}
		day = parsed
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	fc.Process["day_start"] = dayStart
	fc.Process["day_end"] = dayStart.Add(24 * time.Hour)
	return nil
}

func listVenueResources(fc *core.FlowContext) error {
	venue := fc.Process["venue"].(*model.Venue)

	kind, err := kindForVenueType(venue.Type)
	if err != nil {
		return err
	}

	resp, err := fc.Client.Venues.ListResources(fc.Ctx, venue.ID, kind, 100, 0)
	if err != nil {
		return err
	}
	if !ok(resp) {
		return remoteErr("resource listing", resp)
	}

	resources, err := decodeResourcesForKind(kind, resp)
	if err != nil {
		return err
	}

	fc.Process["kind"] = kind
	fc.Process["resources"] = resources
	return nil
}

func computeOpenSlots(fc *core.FlowContext) error {
	venue := fc.Process["venue"].(*model.Venue)
	kind := fc.Process["kind"].(model.ResourceKind)
	resources := fc.Process["resources"].([]model.ReservableResource)
	dayStart := fc.Process["day_start"].(time.Time)
	dayEnd := fc.Process["day_end"].(time.Time)
	partySize := fc.OptionalInt("party_size", 0)

	now := time.Now()
	var slots []SlotOffer

	for _, resource := range resources {
		if !resource.Active() {
			continue
		}
		if partySize > 0 {
			minCap, maxCap := resource.CapacityBounds()
			if partySize < minCap || partySize > maxCap {
				continue
			}
		}

		resp, err := fc.Client.Reservations.GetByResource(
			fc.Ctx, kind, resource.ResourceID(), dayStart, dayEnd, 100, 0)
		if err != nil {
			return err
		}
		if !ok(resp) {
			return remoteErr("reservation lookup", resp)
		}

		reservations, _, err := fc.Client.Reservations.DecodeReservations(resp)
		if err != nil {
			return err
		}

		for _, window := range openWindows(resource, dayStart, dayEnd, now, reservations) {
			token, err := fc.Sealer.SealSlot(venue.ID, string(kind), resource.ResourceID())
			if err != nil {
				return err
			}

			minCap, maxCap := resource.CapacityBounds()
			slots = append(slots, SlotOffer{
				Token:        token,
				ResourceName: resourceLabel(resource),
				Kind:         string(kind),
				StartTime:    window.start,
				EndTime:      window.end,
				PriceCents:   resource.PriceCents(window.start, window.end),
				MinCapacity:  minCap,
				MaxCapacity:  maxCap,
			})
		}
	}

	fc.Output["venue_id"] = venue.ID
	fc.Output["date"] = dayStart.Format("2006-01-02")
	fc.Output["slots"] = slots
	fc.Output["count"] = len(slots)
	return nil
}

type slotWindow struct {
	start time.Time
	end   time.Time
}

// openWindows steps through the day in default-duration increments and keeps
// the windows no active reservation touches. Overlap is boundary-inclusive,
// matching the booking engine, so a window that merely abuts an existing
// booking is not offered.
func openWindows(resource model.ReservableResource, dayStart, dayEnd, now time.Time, reservations []*model.Reservation) []slotWindow {
	step := resource.DefaultDuration()
	if step <= 0 {
		return nil
	}

	var windows []slotWindow
	for start := dayStart; !start.Add(step).After(dayEnd); start = start.Add(step) {
		end := start.Add(step)
		if !start.After(now) {
			continue
		}

		blocked := false
		for _, reservation := range reservations {
			if reservation.Status.Terminal() {
				continue
			}
			if reservation.ConflictsWith(start, end) {
				blocked = true
				break
			}
		}
		if !blocked {
			windows = append(windows, slotWindow{start: start, end: end})
		}
	}
	return windows
}

func resourceLabel(resource model.ReservableResource) string {
	switch r := resource.(type) {
	case *model.SportsFacility:
		return r.Name
	case *model.HotelRoom:
		return "Room " + r.RoomNumber
	case *model.RestaurantTable:
		return "Table " + r.TableNumber
	}
	return resource.ResourceID()
}
