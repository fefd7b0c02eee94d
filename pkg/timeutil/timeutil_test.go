package timeutil

import (
	"testing"
	"time"

	_ "time/tzdata"
)

func TestResolveTimezone(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "label WIB", label: "WIB", want: "Asia/Jakarta"},
		{name: "label WITA", label: "WITA", want: "Asia/Makassar"},
		{name: "label WIT", label: "WIT", want: "Asia/Jayapura"},
		{name: "label UTC", label: "UTC", want: "UTC"},
		{name: "iana name passes through", label: "America/New_York", want: "America/New_York"},
		{name: "unknown falls back to default", label: "ZONA_ANTAH", want: DefaultZone},
		{name: "empty falls back to default", label: "", want: DefaultZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTimezone(tt.label)
			if got.String() != tt.want {
				t.Fatalf("ResolveTimezone(%q) = %s, want %s", tt.label, got, tt.want)
			}
		})
	}
}

func TestDayWindow(t *testing.T) {
	loc := ResolveTimezone("WIB")
	at := time.Date(2026, 3, 2, 14, 30, 0, 0, loc)

	start, end := DayWindow(loc, at)
	if !start.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected day start: %v", start)
	}
	if !end.Equal(time.Date(2026, 3, 3, 0, 0, 0, 0, loc).Add(-time.Nanosecond)) {
		t.Fatalf("unexpected day end: %v", end)
	}
}

func TestDayWindowDSTTransition(t *testing.T) {
	// 8 Maret 2026: transisi spring-forward di Amerika Serikat; hari
	// lokalnya hanya 23 jam.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata America/New_York tidak tersedia")
	}

	at := time.Date(2026, 3, 8, 15, 0, 0, 0, loc)
	start, end := DayWindow(loc, at)

	if start.Hour() != 0 || start.Day() != 8 {
		t.Fatalf("day window must start at local midnight, got %v", start)
	}
	if end.Day() != 8 || end.Hour() != 23 || end.Minute() != 59 {
		t.Fatalf("day window must end just before next local midnight, got %v", end)
	}
	if got := end.Sub(start); got >= 24*time.Hour {
		t.Fatalf("spring-forward day should span less than 24h, got %v", got)
	}
}

func TestWeekWindow(t *testing.T) {
	loc := ResolveTimezone("WIB")

	tests := []struct {
		name      string
		at        time.Time
		wantStart time.Time
	}{
		{
			name:      "wednesday maps to preceding monday",
			at:        time.Date(2026, 3, 4, 10, 0, 0, 0, loc),
			wantStart: time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		},
		{
			name:      "monday is its own week start",
			at:        time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
			wantStart: time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		},
		{
			name:      "sunday belongs to week started six days earlier",
			at:        time.Date(2026, 3, 8, 23, 0, 0, 0, loc),
			wantStart: time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekWindow(loc, tt.at)
			if !start.Equal(tt.wantStart) {
				t.Fatalf("week start = %v, want %v", start, tt.wantStart)
			}
			wantEnd := tt.wantStart.AddDate(0, 0, 7).Add(-time.Nanosecond)
			if !end.Equal(wantEnd) {
				t.Fatalf("week end = %v, want %v", end, wantEnd)
			}
		})
	}
}

func TestCombineDateTime(t *testing.T) {
	loc := ResolveTimezone("WIB")

	got, err := CombineDateTime("2026-03-02", "09:30", loc)
	if err != nil {
		t.Fatalf("combine date time: %v", err)
	}
	want := time.Date(2026, 3, 2, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("CombineDateTime = %v, want %v", got, want)
	}

	if _, err := CombineDateTime("02-03-2026", "09:30", loc); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := CombineDateTime("2026-03-02", "9.30", loc); err == nil {
		t.Fatal("expected error for malformed clock")
	}
}

func TestDateOf(t *testing.T) {
	loc := ResolveTimezone("WIB")
	// 31 Des 17:30 UTC = 1 Jan 00:30 WIB.
	at := time.Date(2025, 12, 31, 17, 30, 0, 0, time.UTC)
	if got := DateOf(loc, at); got != "2026-01-01" {
		t.Fatalf("DateOf = %q, want 2026-01-01", got)
	}
}
