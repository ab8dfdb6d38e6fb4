// Package mask holds the input masks applied to checkout form fields.
// Every function strips non-digits, truncates to the field's maximum and
// reinserts separators at fixed positions, so applying a mask to its own
// output yields the same string.
package mask

import "strings"

// Digits returns only the decimal digits of s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	d := Digits(s)
	if len(d) > max {
		return d[:max]
	}
	return d
}

// CardNumber groups up to 16 digits in blocks of 4 separated by spaces.
func CardNumber(s string) string {
	d := truncate(s, 16)
	var groups []string
	for i := 0; i < len(d); i += 4 {
		end := i + 4
		if end > len(d) {
			end = len(d)
		}
		groups = append(groups, d[i:end])
	}
	return strings.Join(groups, " ")
}

// Expiry formats up to 4 digits as MM/YY.
func Expiry(s string) string {
	d := truncate(s, 4)
	if len(d) >= 2 {
		return d[:2] + "/" + d[2:]
	}
	return d
}

// CPF formats up to 11 digits as 000.000.000-00.
func CPF(s string) string {
	d := truncate(s, 11)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// CEP formats up to 8 digits as 00000-000.
func CEP(s string) string {
	d := truncate(s, 8)
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

// Phone formats up to 11 digits with the variable grouping used for
// Brazilian numbers: (00) 00000-0000 for mobile, (00) 0000-0000 for
// landline, partial groups while typing.
func Phone(s string) string {
	d := truncate(s, 11)
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case len(d) <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// CVV keeps up to 4 digits, no separators.
func CVV(s string) string {
	return truncate(s, 4)
}
