package chat

import "time"

// DayLabel renders the date-separator text for a message timestamp,
// judged by the viewer's local clock.
func DayLabel(at, now time.Time) string {
	at = at.Local()
	now = now.Local()

	if sameDay(at, now) {
		return "Today"
	}
	if sameDay(at, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return at.Format("Jan 2, 2006")
}

// NeedsSeparator reports whether a date separator belongs between two
// consecutive messages: their calendar dates differ.
func NeedsSeparator(prev, current time.Time) bool {
	return !sameDay(prev.Local(), current.Local())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
