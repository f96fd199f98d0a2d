package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2024-06-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("parses as local midnight", func(t *testing.T) {
		got, err := ParseDate("2024-06-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Location() != time.Local {
			t.Errorf("got location %v, want local", got.Location())
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("got %v, want midnight", got)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !SameDay(got, time.Now()) {
			t.Errorf("got %v, want today", got)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		for _, s := range []string{"06-01-2024", "2024/06/01", "junk", "2024-13-01"} {
			if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("ParseDate(%q): got %v, want ErrInvalidDateFormat", s, err)
			}
		}
	})
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2024, 6, 1, 14, 30, 45, 99, time.UTC)
	got := TruncateToDay(in)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAddDays(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		delta int
		want  time.Time
	}{
		{"forward one", 1, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
		{"backward one", -1, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)},
		{"across month", 30, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"zero truncates", 0, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddDays(base, tt.delta); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		wantMonday time.Time
		wantSunday time.Time
	}{
		{
			name:       "wednesday",
			date:       time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC),
			wantMonday: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monday is its own week start",
			date:       time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			wantMonday: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "sunday belongs to preceding monday",
			date:       time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
			wantMonday: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, sunday := WeekRange(tt.date)
			if !monday.Equal(tt.wantMonday) {
				t.Errorf("monday: got %v, want %v", monday, tt.wantMonday)
			}
			if !sunday.Equal(tt.wantSunday) {
				t.Errorf("sunday: got %v, want %v", sunday, tt.wantSunday)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(time.Date(2024, 2, 15, 8, 0, 0, 0, time.UTC))
	if !first.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first: got %v", first)
	}
	// 2024 is a leap year
	if !last.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("last: got %v", last)
	}
}

func TestSameDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			name: "same date same location",
			a:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC),
			want: true,
		},
		{
			// Midnights in different locations are different instants but
			// the same calendar date.
			name: "same date across locations",
			a:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, 3, 4, 0, 0, 0, 0, tokyo),
			want: true,
		},
		{
			name: "different dates",
			a:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDay(tt.a, tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday
	relativeTo := time.Date(2025, 1, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr error
	}{
		{"empty is today", "", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), nil},
		{"today", "today", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), nil},
		{"tomorrow", "tomorrow", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), nil},
		{"yesterday", "yesterday", time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), nil},
		{"next-week", "next-week", time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC), nil},
		{"friday is upcoming friday", "friday", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC), nil},
		{"same weekday jumps a week", "wednesday", time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC), nil},
		{"next-monday", "next-monday", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), nil},
		{"case insensitive", "TOMORROW", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), nil},
		{"absolute", "2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), nil},
		{"absolute in the past is allowed", "2024-12-31", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), nil},
		{"garbage", "someday", time.Time{}, ErrInvalidDateFormat},
		{"next-garbage", "next-someday", time.Time{}, ErrInvalidDateFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, relativeTo)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !SameDay(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
