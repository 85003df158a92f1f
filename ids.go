package fintrack

import (
	"bytes"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TxID identifies a transaction. Ids grow with creation time.
type TxID int64

func (id TxID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseTxID parses a transaction id.
func ParseTxID(s string) (TxID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return TxID(n), err
}

// IDGenerator hands out strictly increasing transaction ids that look like
// millisecond timestamps.
type IDGenerator struct {
	mu    sync.Mutex
	last  int64
	clock func() time.Time
}

// NewIDGenerator returns a generator that never returns an id lower than or
// equal to seed.
func NewIDGenerator(seed TxID) *IDGenerator {
	return &IDGenerator{last: int64(seed), clock: Now}
}

// Next returns max(last+1, now in milliseconds).
func (g *IDGenerator) Next() TxID {
	g.mu.Lock()
	defer g.mu.Unlock()
	clock := g.clock
	if clock == nil {
		clock = Now
	}
	next := clock().UnixMilli()
	if next <= g.last {
		next = g.last + 1
	}
	g.last = next
	return TxID(next)
}

// Observe makes sure future ids are greater than id.
func (g *IDGenerator) Observe(id TxID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if int64(id) > g.last {
		g.last = int64(id)
	}
}

// PersonID identifies a person. It is opaque text; older data used numbers.
type PersonID string

// NewPersonID returns a fresh random id.
func NewPersonID() PersonID { return PersonID(uuid.NewString()) }

// UnmarshalJSON accepts both a string and a number.
func (id *PersonID) UnmarshalJSON(data []byte) error {
	s, err := looseID(data)
	*id = PersonID(s)
	return err
}

// DepositID identifies a scheduled deposit.
type DepositID string

// NewDepositID returns a fresh random id.
func NewDepositID() DepositID { return DepositID(uuid.NewString()) }

// UnmarshalJSON accepts both a string and a number.
func (id *DepositID) UnmarshalJSON(data []byte) error {
	s, err := looseID(data)
	*id = DepositID(s)
	return err
}

// looseID decodes a JSON string or number into its text.
func looseID(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
