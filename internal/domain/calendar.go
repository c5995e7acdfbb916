package domain

import "time"

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextEndDate adds one calendar month to the given end date. When the day of
// month does not exist in the target month, the result clamps to the last
// valid day instead of rolling into the following month, so a slot paid
// until Jan 31 renews to Feb 28 (or 29), not Mar 2.
func NextEndDate(endDate time.Time) time.Time {
	y, m, day := endDate.Date()
	target := time.Date(y, m, 1, 0, 0, 0, 0, endDate.Location()).AddDate(0, 1, 0)
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, endDate.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
