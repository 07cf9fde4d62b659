package golf

import (
	"strings"
	"time"
)

// DateFormat is the canonical YYYY-MM-DD form used everywhere a date is
// stored or compared.
const DateFormat = "2006-01-02"

// Eastern is the reference timezone for all "today" computation and date
// attribution. Coffee Golf puzzles roll over on US Eastern time, so the bot
// never uses the host timezone.
var Eastern = mustLoadEastern()

func mustLoadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("failed to load America/New_York tzdata: " + err.Error())
	}
	return loc
}

// Today returns the current date string in the reference timezone.
func Today(now time.Time) string {
	return FormatDate(now)
}

// FormatDate renders t as YYYY-MM-DD in the reference timezone.
func FormatDate(t time.Time) string {
	return t.In(Eastern).Format(DateFormat)
}

// ParseDate parses a YYYY-MM-DD string in the reference timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, Eastern)
}

// DatesBetween returns every date string in [start, end] inclusive. The
// bounds are YYYY-MM-DD strings; an unparsable bound yields nil.
func DatesBetween(start, end string) []string {
	s, err := ParseDate(start)
	if err != nil {
		return nil
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil
	}
	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, FormatDate(d))
	}
	return dates
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// MonthFromName resolves an English month name, full or abbreviated,
// case-insensitive.
func MonthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	if len(name) < 3 {
		return 0, false
	}
	m, ok := monthsByPrefix[name[:3]]
	if !ok {
		return 0, false
	}
	// Reject things like "janx" that merely share a prefix.
	full := strings.ToLower(m.String())
	if len(name) > 3 && !strings.HasPrefix(full, name) {
		return 0, false
	}
	return m, true
}

// ResolveDate turns a month+day fragment into a concrete date. The fragment
// carries no year: assume the current year, and if that produces an invalid
// calendar date or one more than a day in the future (a December score parsed
// in January), fall back to the previous year. Returns ok=false when neither
// year yields a plausible date.
func ResolveDate(month time.Month, day int, now time.Time) (string, bool) {
	now = now.In(Eastern)
	for _, year := range []int{now.Year(), now.Year() - 1} {
		d := time.Date(year, month, day, 0, 0, 0, 0, Eastern)
		if d.Month() != month || d.Day() != day {
			continue // day overflowed, e.g. Feb 30
		}
		if d.After(now.AddDate(0, 0, 1)) {
			continue
		}
		return FormatDate(d), true
	}
	return "", false
}
