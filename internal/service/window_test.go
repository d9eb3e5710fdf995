package service

import (
	"testing"
	"time"
)

func TestResolveWindow_Year(t *testing.T) {
	year := 2023
	from, to := resolveWindow(&year)

	if !from.Equal(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("from = %v", from)
	}
	if !to.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("to = %v", to)
	}

	// half-open: the last instant of the year is still inside
	lastTick := to.Add(-time.Nanosecond)
	if lastTick.Before(from) || !lastTick.Before(to) {
		t.Fatalf("Dec 31 23:59:59.999999999 must be inside the window")
	}
}

func TestResolveWindow_AllTime(t *testing.T) {
	from, to := resolveWindow(nil)
	if !from.IsZero() {
		t.Fatalf("all-time from = %v, want zero", from)
	}
	if to.Year() != 10000 {
		t.Fatalf("all-time to = %v", to)
	}
	// any plausible match date fits
	for _, d := range []time.Time{
		time.Date(1888, time.September, 8, 0, 0, 0, 0, time.UTC),
		time.Now().UTC(),
		time.Date(2999, time.June, 1, 0, 0, 0, 0, time.UTC),
	} {
		if d.Before(from) || !d.Before(to) {
			t.Fatalf("date %v outside all-time window", d)
		}
	}
}
