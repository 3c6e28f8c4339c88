package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-08-29")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if got := d.String(); got != "2026-08-29" {
		t.Errorf("String() = %q, want 2026-08-29", got)
	}
	if got := d.Tomorrow().String(); got != "2026-08-30" {
		t.Errorf("Tomorrow() = %q, want 2026-08-30", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "2026-13-01", "29.08.2026"} {
		if _, err := ParseDate(raw); err == nil {
			t.Errorf("ParseDate(%q) should fail", raw)
		}
	}
}

// Dates built in different locations must still compare by calendar day.
func TestBeforeIgnoresLocationOffset(t *testing.T) {
	east := time.FixedZone("UTC+7", 7*3600)
	sameDayUTC := NewDate(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	sameDayEast := NewDate(time.Date(2026, 8, 29, 23, 0, 0, 0, east))

	if sameDayUTC.Before(sameDayEast) || sameDayEast.Before(sameDayUTC) {
		t.Error("same calendar day should not be Before in either direction")
	}
	if !sameDayUTC.Equal(sameDayEast) {
		t.Error("same calendar day should be Equal across locations")
	}

	yesterday := NewDate(time.Date(2026, 8, 28, 12, 0, 0, 0, east))
	if !yesterday.Before(sameDayUTC) {
		t.Error("earlier calendar day should be Before")
	}
}

func TestDateJSON(t *testing.T) {
	d, _ := ParseDate("2026-08-29")
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `"2026-08-29"` {
		t.Errorf("Marshal = %s, want \"2026-08-29\"", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip mismatch: %s != %s", back, d)
	}
}

func TestDateScanFromTimeAndString(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) failed: %v", err)
	}
	if d.String() != "2026-08-29" {
		t.Errorf("Scan(time.Time) = %s, want 2026-08-29", d)
	}

	if err := d.Scan("2026-08-30"); err != nil {
		t.Fatalf("Scan(string) failed: %v", err)
	}
	if d.String() != "2026-08-30" {
		t.Errorf("Scan(string) = %s, want 2026-08-30", d)
	}

	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}
