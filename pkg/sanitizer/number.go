package sanitizer

// ClampCents floors negative monetary amounts at zero. Deposits are stored
// as integer cents and must never go negative.
//
// Headcounts are deliberately NOT clamped here: an out-of-range
// number_of_people must surface as a validation error, not get silently
// adjusted.
func ClampCents(cents int64) int64 {
	if cents < 0 {
		return 0
	}
	return cents
}
