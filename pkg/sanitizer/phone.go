package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var supportedRegions = []string{
	"IL",
	"US",
	"GB",
	"DE",
}

// NormalizePhone converts a phone number to E.164 format. Numbers that
// cannot be parsed against any supported region come back empty. Parse
// success is the bar here, not carrier-metadata validity: the validator's
// e164 check still guards the shape downstream.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}
	return ""
}
