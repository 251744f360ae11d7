package timeutil

import (
	"testing"
	"time"
)

func TestParseISO(t *testing.T) {
	tests := map[string]bool{
		"2024-01-10": true,
		"2024-02-29": true,
		"2023-02-29": false,
		"2024-13-40": false,
		"2024-1-2":   false,
		"":           false,
		"yesterday":  false,
	}
	for in, want := range tests {
		if _, ok := ParseISO(in); ok != want {
			t.Fatalf("ParseISO(%q) ok=%v, want %v", in, ok, want)
		}
	}
}

func TestParseISOIsLocalMidnight(t *testing.T) {
	got, ok := ParseISO("2024-05-01")
	if !ok {
		t.Fatal("expected valid date")
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != time.Local {
		t.Fatalf("expected local midnight, got %v", got)
	}
}

func TestDayBounds(t *testing.T) {
	ref := time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC)
	if got := StartOfDay(ref); !got.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start of day %v", got)
	}
	if got := EndOfDay(ref); got.Hour() != 23 || got.Nanosecond() != int(999*time.Millisecond) {
		t.Fatalf("unexpected end of day %v", got)
	}
	if got := NextMidnight(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)); !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected next midnight %v", got)
	}
}

func TestAddDays(t *testing.T) {
	got, ok := AddDays("2024-02-28", 2)
	if !ok || got != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %q (%v)", got, ok)
	}
	if _, ok := AddDays("nope", 1); ok {
		t.Fatal("expected invalid input to fail")
	}
}
