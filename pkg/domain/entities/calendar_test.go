package entities

import (
	"testing"
	"time"
)

func TestCalendar_Day(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cal := NewCalendar(berlin)

	// 23:30 UTC on Jan 14 is already Jan 15 in Berlin
	ts := time.Date(2025, 1, 14, 23, 30, 0, 0, time.UTC)
	day := cal.Day(ts)
	if day.Year() != 2025 || day.Month() != time.January || day.Day() != 15 {
		t.Errorf("Expected 2025-01-15, got %s", day.Format("2006-01-02"))
	}
	if day.Hour() != 0 || day.Minute() != 0 {
		t.Errorf("Expected midnight, got %s", day.Format(time.RFC3339))
	}

	utc := NewCalendar(nil)
	if utc.SameDay(ts, day) {
		t.Error("Expected UTC calendar to place the timestamps on different days")
	}
	if !cal.SameDay(ts, day) {
		t.Error("Expected Berlin calendar to place the timestamps on the same day")
	}
}

func TestCalendar_AddDaysAndDaysBetween(t *testing.T) {
	cal := NewCalendar(time.UTC)
	start := time.Date(2025, 2, 27, 15, 0, 0, 0, time.UTC)

	next := cal.AddDays(start, 2)
	if next.Format("2006-01-02") != "2025-03-01" {
		t.Errorf("Expected 2025-03-01, got %s", next.Format("2006-01-02"))
	}
	if got := cal.DaysBetween(start, next); got != 2 {
		t.Errorf("Expected 2 days between, got %d", got)
	}
	if got := cal.DaysBetween(next, start); got != -2 {
		t.Errorf("Expected -2 days between, got %d", got)
	}
}

func TestCalendar_ZeroValueIsUTC(t *testing.T) {
	var cal Calendar
	if cal.Location() != time.UTC {
		t.Errorf("Expected UTC, got %s", cal.Location())
	}
}
