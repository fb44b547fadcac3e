package view

import (
	"fmt"
	"time"
)

// AgeInMonths is the calendar month difference between birth and now. The
// day of month is ignored, so a baby born on the 31st is one month old on
// the 1st.
func AgeInMonths(birth, now time.Time) int {
	return int(now.Month()-birth.Month()) + 12*(now.Year()-birth.Year())
}

// AgeLabel renders AgeInMonths as "1 month" or "N months".
func AgeLabel(birth, now time.Time) string {
	if birth.IsZero() {
		return ""
	}
	n := AgeInMonths(birth, now)
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

// RelativeTime renders how long ago t was: "Nm ago" under an hour, "Nh ago"
// under a day, "Nd ago" otherwise. A zero t renders as "-".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	minutes := int(now.Sub(t).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case minutes < 24*60:
		return fmt.Sprintf("%dh ago", minutes/60)
	default:
		return fmt.Sprintf("%dd ago", minutes/(24*60))
	}
}
