package utils

import "time"

// DayLayout is the calendar-day wire format used across plans and prompts.
const DayLayout = "2006-01-02"

func NowUnixSeconds() int64 { return time.Now().Unix() }

// CalendarDay keeps the year/month/day as seen in t's own location and pins it to UTC midnight.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DayLayout)
}

// DaySpan lists n consecutive calendar days starting at start.
func DaySpan(start time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = start.AddDate(0, 0, i).Format(DayLayout)
	}
	return days
}
