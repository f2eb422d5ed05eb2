package validate

import (
	"regexp"
	"strings"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Errors accumulates field-level validation failures in request order.
type Errors map[string][]string

func (e Errors) Add(field, msg string) { e[field] = append(e[field], msg) }
func (e Errors) Empty() bool           { return len(e) == 0 }

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Password enforces a length window plus character-class coverage.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// Quantity checks a parsed quantity field: present and at least 1.
// Requests carry quantities as *int so a missing field is distinguishable
// from an explicit zero.
func Quantity(n *int) (int, bool) {
	if n == nil || *n < 1 {
		return 0, false
	}
	return *n, true
}
