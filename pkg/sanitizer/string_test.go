package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Harbour View Grill  ",
			want:  "Harbour View Grill",
		},
		{
			name:  "multiple spaces between words",
			input: "Harbour    View   Grill",
			want:  "Harbour View Grill",
		},
		{
			name:  "tabs and newlines",
			input: "Harbour\t\nView Grill",
			want:  "Harbour View Grill",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Café & Spa™ ",
			want:  "Café & Spa™",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Guest@Example.COM ", "guest@example.com"},
		{"guest@example.com", "guest@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeCity(t *testing.T) {
	if got := NormalizeCity("  Tel  Aviv "); got != "tel aviv" {
		t.Errorf("NormalizeCity = %q, want %q", got, "tel aviv")
	}
}
