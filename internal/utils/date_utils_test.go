package utils

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

//
// 1. Тесты для DaysUntil
//

func TestDaysUntil_RoundsUp(t *testing.T) {
	now := mustTime(t, 2024, 1, 15, 12, 0)

	cases := []struct {
		name string
		next time.Time
		want int
	}{
		{"exact two days", mustTime(t, 2024, 1, 17, 12, 0), 2},
		{"one hour ahead", mustTime(t, 2024, 1, 15, 13, 0), 1},
		{"two days and a minute", mustTime(t, 2024, 1, 17, 12, 1), 3},
		{"same instant", now, 0},
		{"half a day ago", mustTime(t, 2024, 1, 15, 0, 0), 0},
		{"three days ago", mustTime(t, 2024, 1, 12, 12, 0), -3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysUntil(tc.next, now); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

//
// 2. Тесты для DateOnly / SameDay
//

func TestDateOnly(t *testing.T) {
	got := DateOnly(mustTime(t, 2024, 2, 29, 23, 59))
	if want := mustTime(t, 2024, 2, 29, 0, 0); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSameDay_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	a := mustTime(t, 2024, 1, 16, 2, 0) // 15-е 21:00 по UTC-5
	b := mustTime(t, 2024, 1, 15, 18, 0)

	if SameDay(a, b, nil) {
		t.Fatalf("expected different UTC dates")
	}
	if !SameDay(a, b, loc) {
		t.Fatalf("expected same date in %s", loc)
	}
}

//
// 3. Тесты для LoadLocation
//

func TestLoadLocation_FallsBackToUTC(t *testing.T) {
	if loc, ok := LoadLocation(""); ok || loc != time.UTC {
		t.Fatalf("expected UTC fallback for empty name, got %v ok=%v", loc, ok)
	}
	if loc, ok := LoadLocation("Mars/Olympus_Mons"); ok || loc != time.UTC {
		t.Fatalf("expected UTC fallback for unknown zone, got %v ok=%v", loc, ok)
	}
	if _, ok := LoadLocation("UTC"); !ok {
		t.Fatalf("expected UTC to load")
	}
}

//
// 4. Тесты для форматирования
//

func TestFormatRetouchDate(t *testing.T) {
	got := FormatRetouchDate(mustTime(t, 2024, 1, 22, 10, 0), nil)
	if want := "lunes 22 de enero de 2024"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatRetouchDate_ConvertsToLocation(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*60*60)
	got := FormatRetouchDate(mustTime(t, 2024, 12, 1, 3, 0), loc)
	if want := "sábado 30 de noviembre de 2024"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2026-12-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatISODate(d) != "2026-12-25" || d.Hour() != 0 {
		t.Fatalf("unexpected date %v", d)
	}
	if _, err := ParseISODate("25/12/2026"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}
