package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhone normalizes a free-form Kenyan mobile number into international
// 254XXXXXXXXX form. Accepted inputs after stripping non-digits:
//
//	712345678    -> 254712345678
//	0712345678   -> 254712345678
//	254712345678 -> 254712345678
//
// Anything else has no canonical form and returns an error.
func FormatPhone(phone string) (string, error) {
	digits := nonDigits.ReplaceAllString(phone, "")

	switch {
	case len(digits) == 9 && strings.HasPrefix(digits, "7"):
		return "254" + digits, nil
	case len(digits) == 10 && strings.HasPrefix(digits, "07"):
		return "254" + digits[1:], nil
	case len(digits) == 12 && strings.HasPrefix(digits, "254"):
		return digits, nil
	}

	return "", fmt.Errorf("no canonical form for phone number %q", phone)
}
