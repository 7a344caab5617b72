package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatCurrency renders an amount as "BDT 12,345.67".
func FormatCurrency(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)

	out := strings.Join(groups, ",") + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return "BDT " + out
}

// FormatLongDate renders a date as "January 02, 2006".
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 02, 2006")
}

// FormatDateTime renders a timestamp as "January 02, 2006 at 03:04 PM".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 02, 2006 at 03:04 PM")
}
