// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// e164Pattern is the structural rule enforced before dialing: a plus sign
// followed by 10 to 15 digits with no leading zero.
var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{9,14}$`)

// ValidE164 reports whether the number satisfies the strict E.164 shape
// accepted by the calling API.
func ValidE164(number string) bool {
	return e164Pattern.MatchString(number)
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
