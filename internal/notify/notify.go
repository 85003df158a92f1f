// Package notify publishes ledger change events to a message broker.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/etnz/fintrack"
)

// Operations reported in events.
const (
	OpAdd      = "add"
	OpDelete   = "delete"
	OpImport   = "import"
	OpPerson   = "person"
	OpSchedule = "schedule"
	OpComplete = "complete"
	OpMonthly  = "monthly"
)

// Event describes one saved mutation.
type Event struct {
	Op     string          `json:"op"`
	TxID   fintrack.TxID   `json:"txId,omitempty"`
	Type   fintrack.TxType `json:"type,omitempty"`
	Amount *fintrack.Money `json:"amount,omitempty"`
	Source string          `json:"source,omitempty"`
	At     time.Time       `json:"at"`
}

// TxEvent returns the event of a transaction added or deleted.
func TxEvent(op string, tx fintrack.Transaction, at time.Time) Event {
	amount := tx.Value()
	return Event{
		Op:     op,
		TxID:   tx.Identifier(),
		Type:   tx.What(),
		Amount: &amount,
		Source: string(tx.From()),
		At:     at.UTC(),
	}
}

func (e Event) JSON() ([]byte, error) { return json.Marshal(e) }

// Publisher sends events. Publishing is best effort: callers log errors and
// carry on.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
