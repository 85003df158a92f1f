package fintrack

import "time"

// BDT is a helper for tests to create money from a constant.
func BDT(v float64) Money { return M(v) }

// at parses an RFC3339 instant and panics on error.
func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// fixedClock returns a clock stuck on t.
func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

// newTestBook returns an empty book whose clock is stuck on now.
func newTestBook(now time.Time) *Book {
	b := NewBook(NewState())
	b.now = fixedClock(now)
	b.ids.clock = b.now
	return b
}
