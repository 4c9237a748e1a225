package services

import (
	"errors"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "hour minute", raw: "08:30", want: 510},
		{name: "hour minute second", raw: "20:00:00", want: 1200},
		{name: "midnight", raw: "00:00", want: 0},
		{name: "last minute", raw: "23:59:59", want: 1439},
		{name: "surrounding whitespace", raw: " 07:15 ", want: 435},
		{name: "hour out of range", raw: "24:00", wantErr: true},
		{name: "minute out of range", raw: "08:60", wantErr: true},
		{name: "garbage", raw: "morning", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(testCase.raw)
			if testCase.wantErr {
				if !errors.Is(err, ErrInvalidTimeOfDay) {
					t.Fatalf("expected ErrInvalidTimeOfDay for %q, got %v", testCase.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) unexpected error: %v", testCase.raw, err)
			}
			if got != testCase.want {
				t.Fatalf("ParseTimeOfDay(%q) = %d, want %d", testCase.raw, got, testCase.want)
			}
		})
	}
}

func TestGenerateSpecificTimesCollapsesDuplicatesAndSorts(t *testing.T) {
	times, err := GenerateSpecificTimes([]string{"20:00", "08:00", "08:00:00", "12:30"})
	if err != nil {
		t.Fatalf("GenerateSpecificTimes() unexpected error: %v", err)
	}

	expected := []string{"08:00:00", "12:30:00", "20:00:00"}
	if len(times) != len(expected) {
		t.Fatalf("expected %d times, got %#v", len(expected), times)
	}
	for index, want := range expected {
		if times[index] != want {
			t.Fatalf("expected times[%d] = %s, got %#v", index, want, times)
		}
	}
}

func TestGenerateSpecificTimesRejectsInvalidEntry(t *testing.T) {
	if _, err := GenerateSpecificTimes([]string{"08:00", "25:00"}); !errors.Is(err, ErrInvalidTimeOfDay) {
		t.Fatalf("expected ErrInvalidTimeOfDay, got %v", err)
	}
}

func TestGenerateIntervalTimesStopsAtEndOfDay(t *testing.T) {
	times, err := GenerateIntervalTimes("08:00", 4)
	if err != nil {
		t.Fatalf("GenerateIntervalTimes() unexpected error: %v", err)
	}

	expected := []string{"08:00:00", "12:00:00", "16:00:00", "20:00:00"}
	if len(times) != len(expected) {
		t.Fatalf("expected %d times, got %#v", len(expected), times)
	}
	for index, want := range expected {
		if times[index] != want {
			t.Fatalf("expected times[%d] = %s, got %#v", index, want, times)
		}
	}
}

func TestGenerateIntervalTimesZeroIntervalFallsBackToStart(t *testing.T) {
	times, err := GenerateIntervalTimes("08:00", 0)
	if err != nil {
		t.Fatalf("GenerateIntervalTimes() unexpected error: %v", err)
	}
	if len(times) != 1 || times[0] != "08:00:00" {
		t.Fatalf("expected single start entry, got %#v", times)
	}

	times, err = GenerateIntervalTimes("08:00", -3)
	if err != nil {
		t.Fatalf("GenerateIntervalTimes() unexpected error: %v", err)
	}
	if len(times) != 1 || times[0] != "08:00:00" {
		t.Fatalf("expected single start entry for negative interval, got %#v", times)
	}
}

func TestGenerateIntervalTimesLateStartYieldsSingleEntry(t *testing.T) {
	times, err := GenerateIntervalTimes("23:30", 6)
	if err != nil {
		t.Fatalf("GenerateIntervalTimes() unexpected error: %v", err)
	}
	if len(times) != 1 || times[0] != "23:30:00" {
		t.Fatalf("expected only the start entry before midnight, got %#v", times)
	}
}
