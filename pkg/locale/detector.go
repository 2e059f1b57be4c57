package locale

import "strings"

// InferTimezoneFromPhone picks a default timezone for a venue whose owner
// did not set one, based on the contact phone's country prefix.
func InferTimezoneFromPhone(phone string) string {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return country.DefaultTimezone
			}
		}
	}

	return DefaultTimezone
}

func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}
