package flow

import "regexp"

// e164 matches international phone numbers: a leading +, a non-zero first
// digit, at most 15 digits total.
var e164 = regexp.MustCompile(`^\+[1-9]\d{0,14}$`)

// ValidPhone reports whether number is a well-formed E.164 phone number.
func ValidPhone(number string) bool {
	return e164.MatchString(number)
}
