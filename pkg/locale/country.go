package locale

import (
	"strings"
)

const (
	DefaultTimezone = "UTC"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2
	Name            string
	PhonePrefixes   []string
	DefaultTimezone string // IANA identifier
}

var (
	Countries = map[string]Country{
		"IL": {
			Code:            "IL",
			Name:            "Israel",
			PhonePrefixes:   []string{"+972", "972"},
			DefaultTimezone: "Asia/Jerusalem",
		},
		"US": {
			Code:            "US",
			Name:            "United States",
			PhonePrefixes:   []string{"+1", "1"},
			DefaultTimezone: "America/New_York",
		},
		"GB": {
			Code:            "GB",
			Name:            "United Kingdom",
			PhonePrefixes:   []string{"+44", "44"},
			DefaultTimezone: "Europe/London",
		},
		"DE": {
			Code:            "DE",
			Name:            "Germany",
			PhonePrefixes:   []string{"+49", "49"},
			DefaultTimezone: "Europe/Berlin",
		},
	}

	TimeZoneTags = map[string][]string{
		"IL": {"Asia/Jerusalem", "Israel", "Asia/Tel_Aviv"},
		"US": {"America/New_York", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
		"GB": {"Europe/London", "GB"},
		"DE": {"Europe/Berlin"},
	}
)

// DetectRegion maps a timezone back to a region code, defaulting to IL where
// the platform launched.
func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return "IL"
}
