// Package sanitizer provides input normalization for booking data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// Customer contact details are normalized once at reservation time and then
// stored as an immutable snapshot, so consistent normalization here matters
// more than strictness: phones become E.164, emails lowercase, free-text
// fields get their whitespace collapsed.
package sanitizer
