package model

import "testing"

func TestIntervalsConflict(t *testing.T) {
	tests := []struct {
		name string
		s1   string
		e1   string
		s2   string
		e2   string
		want bool
	}{
		{
			name: "identical intervals conflict",
			s1:   "2024-06-01T10:00:00Z", e1: "2024-06-01T12:00:00Z",
			s2: "2024-06-01T10:00:00Z", e2: "2024-06-01T12:00:00Z",
			want: true,
		},
		{
			name: "partial overlap at the front",
			s1:   "2024-06-01T10:00:00Z", e1: "2024-06-01T12:00:00Z",
			s2: "2024-06-01T09:00:00Z", e2: "2024-06-01T11:00:00Z",
			want: true,
		},
		{
			name: "partial overlap at the back",
			s1:   "2024-06-01T10:00:00Z", e1: "2024-06-01T12:00:00Z",
			s2: "2024-06-01T11:00:00Z", e2: "2024-06-01T13:00:00Z",
			want: true,
		},
		{
			name: "containment conflicts",
			s1:   "2024-06-01T10:00:00Z", e1: "2024-06-01T12:00:00Z",
			s2: "2024-06-01T10:30:00Z", e2: "2024-06-01T11:30:00Z",
			want: true,
		},
		{
			name: "surrounding interval conflicts",
			s1:   "2024-06-01T10:30:00Z", e1: "2024-06-01T11:30:00Z",
			s2: "2024-06-01T10:00:00Z", e2: "2024-06-01T12:00:00Z",
			want: true,
		},
		{
			name: "touching at the boundary still conflicts",
			s1:   "2024-06-01T10:00:00Z", e1: "2024-06-01T12:00:00Z",
			s2: "2024-06-01T12:00:00Z", e2: "2024-06-01T14:00:00Z",
			want: true,
		},
		{
			name: "touching at the other boundary still conflicts",
			s1:   "2024-06-01T12:00:00Z", e1: "2024-06-01T14:00:00Z",
			s2: "2024-06-01T10:00:00Z", e2: "2024-06-01T12:00:00Z",
			want: true,
		},
		{
			name: "one second of clearance is enough",
			s1:   "2024-06-01T10:00:00Z", e1: "2024-06-01T11:59:59Z",
			s2: "2024-06-01T12:00:00Z", e2: "2024-06-01T14:00:00Z",
			want: false,
		},
		{
			name: "fully disjoint intervals",
			s1:   "2024-06-01T08:00:00Z", e1: "2024-06-01T09:00:00Z",
			s2: "2024-06-01T15:00:00Z", e2: "2024-06-01T16:00:00Z",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntervalsConflict(at(tt.s1), at(tt.e1), at(tt.s2), at(tt.e2))
			if got != tt.want {
				t.Errorf("IntervalsConflict = %v, want %v", got, tt.want)
			}
			// the predicate is symmetric
			sym := IntervalsConflict(at(tt.s2), at(tt.e2), at(tt.s1), at(tt.e1))
			if sym != tt.want {
				t.Errorf("IntervalsConflict (swapped) = %v, want %v", sym, tt.want)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	if StatusConfirmed.Terminal() {
		t.Error("confirmed must not be terminal")
	}
	if !StatusCancelled.Terminal() {
		t.Error("cancelled must be terminal")
	}
	if !StatusCompleted.Terminal() {
		t.Error("completed must be terminal")
	}
}

func TestReservationElapsed(t *testing.T) {
	now := at("2024-06-01T12:00:00Z")

	past := &Reservation{EndTime: at("2024-06-01T11:00:00Z")}
	if !past.Elapsed(now) {
		t.Error("expected a past reservation to be elapsed")
	}

	future := &Reservation{EndTime: at("2024-06-01T13:00:00Z")}
	if future.Elapsed(now) {
		t.Error("expected a future reservation not to be elapsed")
	}

	boundary := &Reservation{EndTime: now}
	if boundary.Elapsed(now) {
		t.Error("a reservation ending exactly now is not yet elapsed")
	}
}

func TestBalanceDueCents(t *testing.T) {
	r := &Reservation{TotalPriceCents: 30000, DepositPaidCents: 10000}
	if got := r.BalanceDueCents(); got != 20000 {
		t.Errorf("BalanceDueCents = %d, want 20000", got)
	}
}
