package validate

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._%+-]*@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nameRe  = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	// Nepali mobile numbers: 10 digits starting with 98 or 97.
	phoneRe = regexp.MustCompile(`^(98|97)[0-9]{8}$`)

	addressLineRe = regexp.MustCompile(`^[a-zA-Z0-9\s,.\-#/]+$`)
	landmarkRe    = regexp.MustCompile(`^[a-zA-Z0-9\s,.\-()]+$`)
	placeRe       = regexp.MustCompile(`^[a-zA-Z\s.\-]+$`)
	postalCodeRe  = regexp.MustCompile(`^[a-zA-Z0-9\s\-]{3,10}$`)
)

// Email reports whether s looks like a deliverable email address.
func Email(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// Name allows letters, spaces, apostrophes and hyphens, 2-50 chars.
func Name(s string) bool {
	t := strings.TrimSpace(s)
	return len(t) >= 2 && len(t) <= 50 && nameRe.MatchString(t)
}

// Phone matches the supported mobile number format.
func Phone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// Password enforces the minimum-length policy only; strength estimation is
// out of scope.
func Password(s string) bool {
	return len(s) >= 8
}

// AddressLine allows street-address characters, 5-100 chars.
func AddressLine(s string) bool {
	t := strings.TrimSpace(s)
	return len(t) >= 5 && len(t) <= 100 && addressLineRe.MatchString(t)
}

// Landmark is optional; when present it is bounded and character-restricted.
func Landmark(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return true
	}
	return len(t) <= 100 && landmarkRe.MatchString(t)
}

// Place covers city, state and country names.
func Place(s string) bool {
	t := strings.TrimSpace(s)
	return len(t) >= 2 && len(t) <= 50 && placeRe.MatchString(t)
}

// OptionalPlace accepts empty input (defaults apply) or a valid Place.
func OptionalPlace(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	return Place(s)
}

// PostalCode accepts 3-10 alphanumeric characters, spaces and hyphens.
func PostalCode(s string) bool {
	return postalCodeRe.MatchString(strings.TrimSpace(s))
}

// Label accepts the fixed address label set; empty defaults to "Home".
func Label(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "Home", "Office", "Other":
		return true
	default:
		return false
	}
}

// CategoryName allows letters, spaces, hyphens and apostrophes, min 2 chars.
func CategoryName(s string) bool {
	t := strings.TrimSpace(s)
	return len(t) >= 2 && nameRe.MatchString(t)
}

// Description requires at least 2 meaningful characters.
func Description(s string) bool {
	return len(strings.TrimSpace(s)) >= 2
}
