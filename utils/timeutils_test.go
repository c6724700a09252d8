package utils

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "Calendar day",
			input: "2023-11-05",
			want:  time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 truncated",
			input: "2023-10-27T10:00:00Z",
			want:  time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "Common DB Style",
			input: "2023-10-27 10:00:00",
			want:  time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "Invalid format",
			input:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "Empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDay() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDay() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDayIn(t *testing.T) {
	ny := time.FixedZone("EST", -5*60*60)
	tokyo := time.FixedZone("JST", 9*60*60)

	for _, loc := range []*time.Location{time.UTC, ny, tokyo} {
		got, err := ParseDayIn("2023-10-16", loc)
		if err != nil {
			t.Fatalf("%s: %v", loc, err)
		}
		want := time.Date(2023, 10, 16, 0, 0, 0, 0, loc)
		if !got.Equal(want) {
			t.Errorf("%s: expected %v, got %v", loc, want, got)
		}
	}

	// A timestamp keeps the calendar day written in it
	got, err := ParseDayIn("2023-10-16T23:30:00-05:00", tokyo)
	if err != nil {
		t.Fatal(err)
	}
	if y, m, d := got.Date(); y != 2023 || m != 10 || d != 16 {
		t.Errorf("Expected 2023-10-16, got %v", got)
	}
}

func TestFormatDay(t *testing.T) {
	got := FormatDay(time.Date(2023, 1, 9, 23, 59, 0, 0, time.UTC))
	if got != "2023-01-09" {
		t.Errorf("Expected 2023-01-09, got %s", got)
	}
}

func TestDaysBefore(t *testing.T) {
	today := time.Date(2023, 11, 15, 18, 30, 0, 0, time.UTC)
	got := DaysBefore(today, 30)
	want := time.Date(2023, 10, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestLexicalDayOrderMatchesChronological(t *testing.T) {
	days := []time.Time{
		time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 10, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for i := 1; i < len(days); i++ {
		if FormatDay(days[i-1]) >= FormatDay(days[i]) {
			t.Errorf("Expected %s < %s", FormatDay(days[i-1]), FormatDay(days[i]))
		}
	}
}
