package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-03-10")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if date.String() != "2025-03-10" {
		t.Errorf("String() = %q, want %q", date.String(), "2025-03-10")
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, input := range []string{"", "10-03-2025", "2025/03/10", "2025-13-01", "not-a-date"} {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("ParseDate(%q) expected error", input)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	date := NewDate(2025, time.March, 10)

	data, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2025-03-10"` {
		t.Errorf("Marshal() = %s, want %q", data, `"2025-03-10"`)
	}

	var decoded Date
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Equal(date) {
		t.Errorf("round trip = %s, want %s", decoded, date)
	}
}

func TestDateComparisons(t *testing.T) {
	earlier := NewDate(2025, time.March, 10)
	later := NewDate(2025, time.March, 11)

	if !earlier.Before(later) {
		t.Error("earlier.Before(later) = false, want true")
	}
	if later.Before(earlier) {
		t.Error("later.Before(earlier) = true, want false")
	}
	if !earlier.Equal(NewDate(2025, time.March, 10)) {
		t.Error("Equal() = false for same day")
	}
	if earlier.Equal(later) {
		t.Error("Equal() = true for different days")
	}
}

func TestDateScan(t *testing.T) {
	var date Date
	if err := date.Scan(time.Date(2025, time.March, 10, 14, 30, 0, 0, time.Local)); err != nil {
		t.Fatalf("Scan(time.Time) error = %v", err)
	}
	if date.String() != "2025-03-10" {
		t.Errorf("Scan(time.Time) = %s, want 2025-03-10", date)
	}

	if err := date.Scan([]byte("2025-04-01")); err != nil {
		t.Fatalf("Scan([]byte) error = %v", err)
	}
	if date.String() != "2025-04-01" {
		t.Errorf("Scan([]byte) = %s, want 2025-04-01", date)
	}

	if err := date.Scan(42); err == nil {
		t.Error("Scan(int) expected error")
	}
}

func TestTodayIsNotBeforeToday(t *testing.T) {
	if Today().Before(Today()) {
		t.Error("Today().Before(Today()) = true")
	}
}
