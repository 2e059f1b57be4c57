package sanitizer

import (
	"reflect"
	"testing"
)

func TestNormalizeStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "drops empties and duplicates",
			input: []string{" Wifi ", "wifi", "", "Parking"},
			want:  []string{"wifi", "parking"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
		{
			name:  "preserves first-seen order",
			input: []string{"Pool", "Sauna", "pool"},
			want:  []string{"pool", "sauna"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeStringSlice(tt.input, NormalizeCity)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeStringSlice(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClampCents(t *testing.T) {
	if got := ClampCents(-500); got != 0 {
		t.Errorf("ClampCents(-500) = %d, want 0", got)
	}
	if got := ClampCents(4200); got != 4200 {
		t.Errorf("ClampCents(4200) = %d, want 4200", got)
	}
}
