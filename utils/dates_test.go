package utils

import (
	"testing"
	"time"
)

func TestDateKeyUsesReferenceTimezone(t *testing.T) {
	// 03:00 UTC on Jan 1 is still Dec 31 in the reference zone (UTC-6).
	instant := time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC)
	if got := DateKey(instant); got != "2025-12-31" {
		t.Fatalf("DateKey = %q, want 2025-12-31", got)
	}

	// The same instant expressed in another zone maps to the same key.
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	if got := DateKey(instant.In(tokyo)); got != "2025-12-31" {
		t.Fatalf("DateKey shifted across zones: %q", got)
	}
}

func TestParseDateKey(t *testing.T) {
	if _, err := ParseDateKey("2026-09-01"); err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}
	for _, bad := range []string{"", "2026/09/01", "01-09-2026", "2026-13-40"} {
		if _, err := ParseDateKey(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestWeekKeys(t *testing.T) {
	// 2026-09-06 is a Sunday; its week starts Monday 2026-08-31.
	sunday, err := ParseDateKey("2026-09-06")
	if err != nil {
		t.Fatal(err)
	}

	keys := WeekKeys(sunday)
	if len(keys) != 7 {
		t.Fatalf("expected 7 keys, got %d", len(keys))
	}
	if keys[0] != "2026-08-31" {
		t.Fatalf("week must start Monday, got %s", keys[0])
	}
	if keys[6] != "2026-09-06" {
		t.Fatalf("week must end Sunday, got %s", keys[6])
	}

	// Any day inside the week yields the same window.
	wednesday, _ := ParseDateKey("2026-09-02")
	again := WeekKeys(wednesday)
	for i := range keys {
		if keys[i] != again[i] {
			t.Fatalf("window differs at %d: %s vs %s", i, keys[i], again[i])
		}
	}
}

func TestCalculateAge(t *testing.T) {
	birthday := time.Now().AddDate(-30, 0, -1)
	if got := CalculateAge(birthday); got != 30 {
		t.Fatalf("age = %d, want 30", got)
	}

	notYet := time.Now().AddDate(-30, 0, 2)
	if got := CalculateAge(notYet); got != 29 {
		t.Fatalf("age before birthday = %d, want 29", got)
	}
}
