package flows

import (
	"testing"
	"time"
	"venuely/pkg/model"
)

func dayWindow(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func hourlyFacility() *model.SportsFacility {
	return &model.SportsFacility{
		ID:                "65f000000000000000000002",
		VenueID:           "65f000000000000000000001",
		Name:              "Court 1",
		SportType:         "tennis",
		Capacity:          4,
		PricePerHourCents: 4000,
		DurationMinutes:   60,
		IsActive:          true,
	}
}

func reservationAt(start, end time.Time, status model.ReservationStatus) *model.Reservation {
	return &model.Reservation{
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestOpenWindows(t *testing.T) {
	dayStart, dayEnd := dayWindow(t)
	before := dayStart.Add(-time.Hour)

	t.Run("empty day offers every window", func(t *testing.T) {
		windows := openWindows(hourlyFacility(), dayStart, dayEnd, before, nil)
		if len(windows) != 24 {
			t.Fatalf("expected 24 hourly windows, got %d", len(windows))
		}
		if !windows[0].start.Equal(dayStart) {
			t.Errorf("expected first window at day start, got %v", windows[0].start)
		}
		if !windows[23].end.Equal(dayEnd) {
			t.Errorf("expected last window to end at day end, got %v", windows[23].end)
		}
	})

	t.Run("booking blocks adjacent windows too", func(t *testing.T) {
		booked := reservationAt(
			dayStart.Add(10*time.Hour),
			dayStart.Add(11*time.Hour),
			model.StatusConfirmed,
		)

		windows := openWindows(hourlyFacility(), dayStart, dayEnd, before, []*model.Reservation{booked})

		// 10:00-11:00 is taken, and the touching 09:00-10:00 and
		// 11:00-12:00 windows conflict on the shared boundary.
		if len(windows) != 21 {
			t.Fatalf("expected 21 windows, got %d", len(windows))
		}
		for _, w := range windows {
			if booked.ConflictsWith(w.start, w.end) {
				t.Errorf("offered window %v-%v conflicts with booking", w.start, w.end)
			}
		}
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		cancelled := reservationAt(
			dayStart.Add(10*time.Hour),
			dayStart.Add(11*time.Hour),
			model.StatusCancelled,
		)

		windows := openWindows(hourlyFacility(), dayStart, dayEnd, before, []*model.Reservation{cancelled})
		if len(windows) != 24 {
			t.Errorf("expected cancelled booking ignored, got %d windows", len(windows))
		}
	})

	t.Run("past windows are not offered", func(t *testing.T) {
		noon := dayStart.Add(12 * time.Hour)

		windows := openWindows(hourlyFacility(), dayStart, dayEnd, noon, nil)

		// Windows starting at or before noon are gone; 13:00 through 23:00
		// remain. The 12:00-13:00 window starts exactly at now and is skipped.
		if len(windows) != 11 {
			t.Fatalf("expected 11 future windows, got %d", len(windows))
		}
		if !windows[0].start.Equal(dayStart.Add(13 * time.Hour)) {
			t.Errorf("expected first window at 13:00, got %v", windows[0].start)
		}
	})

	t.Run("duration drives the grid", func(t *testing.T) {
		table := &model.RestaurantTable{
			ID:          "65f000000000000000000003",
			TableNumber: "T1",
			MinCapacity: 2,
			MaxCapacity: 6,
			IsActive:    true,
		}

		// tables default to two hours
		windows := openWindows(table, dayStart, dayEnd, before, nil)
		if len(windows) != 12 {
			t.Errorf("expected 12 two-hour windows, got %d", len(windows))
		}
	})
}

func TestKindForVenueType(t *testing.T) {
	cases := []struct {
		venueType model.VenueType
		want      model.ResourceKind
		wantErr   bool
	}{
		{model.VenueSports, model.KindSportsFacility, false},
		{model.VenueHotel, model.KindHotelRoom, false},
		{model.VenueRestaurant, model.KindRestaurantTable, false},
		{"arcade", "", true},
	}

	for _, tc := range cases {
		kind, err := kindForVenueType(tc.venueType)
		if tc.wantErr {
			if err == nil {
				t.Errorf("kindForVenueType(%q): expected error", tc.venueType)
			}
			continue
		}
		if err != nil {
			t.Errorf("kindForVenueType(%q): unexpected error %v", tc.venueType, err)
		}
		if kind != tc.want {
			t.Errorf("kindForVenueType(%q) = %q, want %q", tc.venueType, kind, tc.want)
		}
	}
}

func TestResourceLabel(t *testing.T) {
	if got := resourceLabel(hourlyFacility()); got != "Court 1" {
		t.Errorf("facility label = %q", got)
	}
	if got := resourceLabel(&model.HotelRoom{RoomNumber: "204"}); got != "Room 204" {
		t.Errorf("room label = %q", got)
	}
	if got := resourceLabel(&model.RestaurantTable{TableNumber: "T7"}); got != "Table T7" {
		t.Errorf("table label = %q", got)
	}
}
