package model

import (
	"testing"
	"time"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSportsFacilityPricing(t *testing.T) {
	facility := &SportsFacility{PricePerHourCents: 4000}

	tests := []struct {
		name  string
		start string
		end   string
		want  int64
	}{
		{
			name:  "90 minutes bills exactly 1.5x the hourly rate",
			start: "2024-06-01T10:00:00Z",
			end:   "2024-06-01T11:30:00Z",
			want:  6000,
		},
		{
			name:  "exact hour",
			start: "2024-06-01T10:00:00Z",
			end:   "2024-06-01T11:00:00Z",
			want:  4000,
		},
		{
			name:  "half hour",
			start: "2024-06-01T10:00:00Z",
			end:   "2024-06-01T10:30:00Z",
			want:  2000,
		},
		{
			name:  "zero-length interval",
			start: "2024-06-01T10:00:00Z",
			end:   "2024-06-01T10:00:00Z",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := facility.PriceCents(at(tt.start), at(tt.end))
			if got != tt.want {
				t.Errorf("PriceCents(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestHotelRoomPricing(t *testing.T) {
	room := &HotelRoom{PricePerNightCents: 15000}

	tests := []struct {
		name  string
		start string
		end   string
		want  int64
	}{
		{
			name:  "20 hour stay bills one night",
			start: "2024-01-01T15:00:00Z",
			end:   "2024-01-02T11:00:00Z",
			want:  15000,
		},
		{
			name:  "25 hour stay rounds up to two nights",
			start: "2024-01-01T10:00:00Z",
			end:   "2024-01-02T11:00:00Z",
			want:  30000,
		},
		{
			name:  "exactly 24 hours is one night",
			start: "2024-01-01T14:00:00Z",
			end:   "2024-01-02T14:00:00Z",
			want:  15000,
		},
		{
			name:  "three full days",
			start: "2024-01-01T14:00:00Z",
			end:   "2024-01-04T14:00:00Z",
			want:  45000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := room.PriceCents(at(tt.start), at(tt.end))
			if got != tt.want {
				t.Errorf("PriceCents(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestRestaurantTablePricing(t *testing.T) {
	table := &RestaurantTable{MinimumSpendCents: 10000, RequiresDeposit: true, DepositCents: 2500}

	got := table.PriceCents(at("2024-06-01T19:00:00Z"), at("2024-06-01T21:00:00Z"))
	if got != 0 {
		t.Errorf("table PriceCents = %d, want 0", got)
	}

	if !table.DepositRequired() {
		t.Error("expected DepositRequired to be true")
	}
	if !table.HasMinimumSpend() {
		t.Error("expected HasMinimumSpend to be true")
	}
}

func TestPricingIsDeterministic(t *testing.T) {
	facility := &SportsFacility{PricePerHourCents: 3333}
	room := &HotelRoom{PricePerNightCents: 12345}

	start := at("2024-06-01T09:17:00Z")
	end := at("2024-06-01T12:43:00Z")

	for i := 0; i < 10; i++ {
		if facility.PriceCents(start, end) != facility.PriceCents(start, end) {
			t.Fatal("facility pricing is not deterministic")
		}
		if room.PriceCents(start, end) != room.PriceCents(start, end) {
			t.Fatal("room pricing is not deterministic")
		}
	}
}

func TestCapacityBounds(t *testing.T) {
	tests := []struct {
		name     string
		resource ReservableResource
		wantMin  int
		wantMax  int
	}{
		{
			name:     "facility reports 1..capacity",
			resource: &SportsFacility{Capacity: 22},
			wantMin:  1,
			wantMax:  22,
		},
		{
			name:     "room reports 1..capacity",
			resource: &HotelRoom{Capacity: 4},
			wantMin:  1,
			wantMax:  4,
		},
		{
			name:     "table reports its declared range",
			resource: &RestaurantTable{MinCapacity: 2, MaxCapacity: 6},
			wantMin:  2,
			wantMax:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := tt.resource.CapacityBounds()
			if gotMin != tt.wantMin || gotMax != tt.wantMax {
				t.Errorf("CapacityBounds() = (%d, %d), want (%d, %d)", gotMin, gotMax, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestDefaultDuration(t *testing.T) {
	if d := (&SportsFacility{DurationMinutes: 90}).DefaultDuration(); d != 90*time.Minute {
		t.Errorf("facility DefaultDuration = %s, want 90m", d)
	}
	if d := (&SportsFacility{}).DefaultDuration(); d != time.Hour {
		t.Errorf("facility fallback DefaultDuration = %s, want 1h", d)
	}
	if d := (&HotelRoom{}).DefaultDuration(); d != 24*time.Hour {
		t.Errorf("room DefaultDuration = %s, want 24h", d)
	}
	if d := (&RestaurantTable{}).DefaultDuration(); d != 2*time.Hour {
		t.Errorf("table fallback DefaultDuration = %s, want 2h", d)
	}
}
