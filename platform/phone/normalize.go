// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "KR"

var (
	nonDigits = regexp.MustCompile(`\D`)
	// krMobile matches Korean mobile numbers in national format (010, 011, 016-019).
	krMobile = regexp.MustCompile(`^01[016789]\d{7,8}$`)
)

// Canonical converts a raw Korean mobile number into its E.164 form, the
// natural dedup key for leads. Returns ok=false when the input is not a
// valid Korean mobile number.
func Canonical(input string) (e164 string, ok bool) {
	digits := nonDigits.ReplaceAllString(input, "")
	if !krMobile.MatchString(digits) {
		return "", false
	}

	number, err := phonenumbers.Parse(digits, defaultRegion)
	if err == nil && phonenumbers.IsValidNumber(number) {
		return phonenumbers.Format(number, phonenumbers.E164), true
	}

	// Fall back to the mechanical +82 translation when the library rejects
	// a number the national pattern accepts.
	return "+82" + digits[1:], true
}

// Display formats a phone number with the conventional dashes (3-4-4 for
// 11 digits, 3-3-4 for 10). Unrecognized shapes pass through trimmed.
func Display(input string) string {
	trimmed := strings.TrimSpace(input)
	digits := nonDigits.ReplaceAllString(trimmed, "")
	switch len(digits) {
	case 11:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	case 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	default:
		return trimmed
	}
}
