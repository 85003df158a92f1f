package fintrack

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIDGenerator_Next(t *testing.T) {
	now := time.UnixMilli(1_000)
	g := NewIDGenerator(0)
	g.clock = func() time.Time { return now }

	if got := g.Next(); got != 1000 {
		t.Errorf("Next() = %d, want 1000", got)
	}
	if got := g.Next(); got != 1001 {
		t.Errorf("Next() in the same millisecond = %d, want 1001", got)
	}
	now = time.UnixMilli(5_000)
	if got := g.Next(); got != 5000 {
		t.Errorf("Next() later = %d, want 5000", got)
	}
	g.Observe(9_000)
	if got := g.Next(); got != 9001 {
		t.Errorf("Next() after Observe = %d, want 9001", got)
	}
}

func TestLooseIDs(t *testing.T) {
	testCases := []struct {
		json string
		want PersonID
	}{
		{`"3f2a"`, "3f2a"},
		{`1712345678901`, "1712345678901"},
	}
	for _, tc := range testCases {
		var got PersonID
		if err := json.Unmarshal([]byte(tc.json), &got); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tc.json, err)
		}
		if got != tc.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tc.json, got, tc.want)
		}
	}

	var d DepositID
	if err := json.Unmarshal([]byte(`42`), &d); err != nil || d != "42" {
		t.Errorf("Unmarshal(42) = %q, %v", d, err)
	}
	if err := json.Unmarshal([]byte(`true`), &d); err == nil {
		t.Errorf("Unmarshal(true) succeeded")
	}
}
