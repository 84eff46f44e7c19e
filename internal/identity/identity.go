package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// countryCode is the Brazilian international dialing prefix
const countryCode = "55"

// customerIDPrefix namespaces customer ids derived from phone numbers
const customerIDPrefix = "cus_"

// ErrInvalidPhone is returned when the digit count does not resolve to any
// recognized Brazilian phone pattern.
var ErrInvalidPhone = errors.New("identity: phone number does not match any recognized pattern")

// NormalizePhone converts a raw phone string to the canonical E.164-like
// form used as the customer identity anchor.
//
// Rules, applied to the digits of the input:
//   - already prefixed with the country code and at least 12 digits long:
//     kept as-is behind a leading "+";
//   - otherwise a single domestic trunk zero is stripped, then an 11-digit
//     number has the extra mobile digit after the two-digit area code
//     dropped, and a 10-digit number passes through; the country code is
//     prepended to the resulting 10 digits.
func NormalizePhone(raw string) (string, error) {
	digits := stripNonDigits(raw)
	if digits == "" {
		return "", fmt.Errorf("%w: %q has no digits", ErrInvalidPhone, raw)
	}

	if strings.HasPrefix(digits, countryCode) && len(digits) >= 12 {
		return "+" + digits, nil
	}

	digits = strings.TrimPrefix(digits, "0")

	switch len(digits) {
	case 11:
		// Area code keeps its two digits; the extra leading mobile digit
		// inserted after it is dropped to reach the canonical subscriber form.
		digits = digits[:2] + digits[3:]
	case 10:
		// Already canonical.
	default:
		return "", fmt.Errorf("%w: %q resolves to %d digits", ErrInvalidPhone, raw, len(digits))
	}

	return "+" + countryCode + digits, nil
}

// CustomerID derives the deterministic customer identifier from a canonical
// phone number. The digest is cryptographic so the id stays collision
// resistant at production scale, and the function is pure: the same phone
// always yields the same id across processes and over time.
func CustomerID(e164 string) string {
	sum := sha256.Sum256([]byte(stripNonDigits(e164)))
	return customerIDPrefix + hex.EncodeToString(sum[:20])
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
