package fintrack

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Setenv("FINTRACK_TESTING_NOW", "2024-05-20 10:00:00")
	today := NewDate(2024, time.May, 20)

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"0d", today, false},
		{"today", today, false},
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"+2w", today.Add(14), false},
		{"+1m", NewDate(2024, time.June, 20), false},
		{"-1y", NewDate(2023, time.May, 20), false},
		{"27", NewDate(2024, time.May, 27), false},
		{"8-27", NewDate(2024, time.August, 27), false},
		{"0", NewDate(2024, time.April, 30), false},
		{"0-15", NewDate(2023, time.December, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		json     string
		expected Date
		wantErr  bool
	}{
		{`"2024-02-01"`, NewDate(2024, time.February, 1), false},
		{`"2024-2-1"`, NewDate(2024, time.February, 1), false},
		{`"2024-02-01T10:00:00Z"`, NewDate(2024, time.February, 1), false},
		{`"yesterday"`, Date{}, true},
		{`20240201`, Date{}, true},
	}
	for _, tt := range tests {
		var got Date
		err := json.Unmarshal([]byte(tt.json), &got)
		if (err != nil) != tt.wantErr {
			t.Errorf("Unmarshal(%s) error = %v, wantErr %v", tt.json, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("Unmarshal(%s) = %v, want %v", tt.json, got, tt.expected)
		}
	}

	b, _ := json.Marshal(NewDate(2024, time.March, 5))
	if string(b) != `"2024-03-05"` {
		t.Errorf("Marshal() = %s", b)
	}
}

func TestDate_Compare(t *testing.T) {
	a, b := NewDate(2024, 1, 31), NewDate(2024, 2, 1)
	if !a.Before(b) || a.After(b) || a.Add(1) != b {
		t.Errorf("%v / %v comparison failed", a, b)
	}
	if got := NewDate(2024, 1, 31).AddMonth(1); got != NewDate(2024, 3, 2) {
		t.Errorf("AddMonth(1) = %v, want 2024-03-02", got)
	}
}

func TestNow_Override(t *testing.T) {
	t.Setenv("FINTRACK_TESTING_NOW", "2006-01-02 15:04:05")
	if got := Today(); got != NewDate(2006, time.January, 2) {
		t.Errorf("Today() = %v, want 2006-01-02", got)
	}
}
