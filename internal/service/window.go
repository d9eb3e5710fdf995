package service

import "time"

// allTimeEnd caps the open-ended window. Far enough out that any stored
// match_date sorts strictly below it.
var allTimeEnd = time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC)

// resolveWindow turns an optional year into the half-open instant range
// [from, to). A nil year covers all time. The boundary matters: a match dated
// exactly at January 1 of year+1 belongs to the NEXT window.
func resolveWindow(year *int) (from, to time.Time) {
	if year == nil {
		return time.Time{}, allTimeEnd
	}
	from = time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(*year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, to
}
