package validator

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
)

const maxClientNameLength = 150

func cleanPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)
}

// ValidatePhone accepts 8 to 15 digits with an optional leading plus;
// spaces, dashes and parentheses are ignored.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(cleanPhone(phone))
}

// FormatPhone strips everything but digits and a leading plus.
func FormatPhone(phone string) string {
	clean := cleanPhone(strings.TrimSpace(phone))
	if strings.HasPrefix(clean, "+") {
		return "+" + strings.ReplaceAll(clean[1:], "+", "")
	}
	return strings.ReplaceAll(clean, "+", "")
}

// ValidateClientName accepts any printable name of up to 150 characters that
// has at least one letter or digit.
func ValidateClientName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxClientNameLength {
		return false
	}

	var alnum bool
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum = true
		}
	}

	return alnum
}

func FormatName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' || r == '&' || r == '"' || r == '`' || r == ';' {
			return -1
		}
		return r
	}, s)
}
