// Package daterange turns a named earnings-date filter into a concrete,
// inclusive window of calendar dates.
package daterange

import (
	"fmt"
	"strings"
	"time"
)

const layout = "2006-01-02"

// Filter names a window relative to the current date.
type Filter int

const (
	Today Filter = iota
	Tomorrow
	ThisWeek
	NextWeek
	ThisMonth
	Custom
)

var filterNames = map[Filter]string{
	Today:     "Today",
	Tomorrow:  "Tomorrow",
	ThisWeek:  "This Week",
	NextWeek:  "Next Week",
	ThisMonth: "This Month",
	Custom:    "Custom Date Range",
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter accepts the dashboard labels ("This Week") as well as CLI
// spellings ("this-week", "this_week", "thisweek").
func ParseFilter(s string) (Filter, error) {
	key := strings.ToLower(s)
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)

	switch key {
	case "today":
		return Today, nil
	case "tomorrow":
		return Tomorrow, nil
	case "thisweek", "week":
		return ThisWeek, nil
	case "nextweek":
		return NextWeek, nil
	case "thismonth", "month":
		return ThisMonth, nil
	case "custom", "customdaterange", "range":
		return Custom, nil
	}
	return Today, fmt.Errorf("unknown date filter %q", s)
}

// Range is an inclusive window of calendar dates. Start and End carry no
// time-of-day component.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds a Range from two instants, dropping their time of day.
func NewRange(start, end time.Time) Range {
	return Range{Start: DateOf(start), End: DateOf(end)}
}

// ParseRange parses two YYYY-MM-DD strings in the given location.
func ParseRange(start, end string, loc *time.Location) (Range, error) {
	s, err := time.ParseInLocation(layout, start, loc)
	if err != nil {
		return Range{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.ParseInLocation(layout, end, loc)
	if err != nil {
		return Range{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return Range{Start: s, End: e}, nil
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Contains reports whether the calendar date of t lies within the range.
// Only the year, month and day of t are compared; its location is ignored.
func (r Range) Contains(t time.Time) bool {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, r.Start.Location())
	return !day.Before(r.Start) && !day.After(r.End)
}

// OnOrAfter reports whether the calendar date of t is the same as, or later
// than, the calendar date of ref.
func OnOrAfter(t, ref time.Time) bool {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ry, rm, rd := ref.Date()
	return !day.Before(time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC))
}

// Len is the number of days in the range, zero when End precedes Start.
func (r Range) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24+0.5) + 1
}

// Days lists every date in the range in ascending order.
func (r Range) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r Range) String() string {
	return r.Start.Format(layout) + " to " + r.End.Format(layout)
}

// Resolve maps a filter and the current instant to a concrete window. custom
// is only consulted for Custom and is returned as given, without checking
// that Start <= End.
func Resolve(f Filter, now time.Time, custom Range) Range {
	today := DateOf(now)

	switch f {
	case Today:
		return Range{Start: today, End: today}
	case Tomorrow:
		tomorrow := today.AddDate(0, 0, 1)
		return Range{Start: tomorrow, End: tomorrow}
	case ThisWeek:
		monday := today.AddDate(0, 0, -weekday(today))
		return Range{Start: monday, End: monday.AddDate(0, 0, 6)}
	case NextWeek:
		monday := today.AddDate(0, 0, 7-weekday(today))
		return Range{Start: monday, End: monday.AddDate(0, 0, 6)}
	case ThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, 0).AddDate(0, 0, -1)
		return Range{Start: first, End: last}
	case Custom:
		return custom
	}
	return Range{Start: today, End: today.AddDate(0, 0, 7)}
}

// weekday counts days since Monday (Monday = 0, Sunday = 6).
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
