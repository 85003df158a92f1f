// Package store persists the tracker state in a key-value backend.
//
// The state is split over three keys, each holding a JSON document:
//
//	expenseSavingsData  {"savings":{...},"moneyGivenPeople":[...],"transactions":[...]}
//	monthlyAutoDeposit  the monthly deposit config, or null
//	scheduledDeposits   [...]
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/fintrack"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Persisted keys.
const (
	KeyData      = "expenseSavingsData"
	KeyMonthly   = "monthlyAutoDeposit"
	KeyScheduled = "scheduledDeposits"
)

// Keys lists every persisted key.
var Keys = []string{KeyData, KeyMonthly, KeyScheduled}

// KV is a string key-value store.
type KV interface {
	// Get returns the value of key, ok is false when it was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Gateway loads and saves a fintrack.State in a KV.
type Gateway struct {
	kv  KV
	log zerolog.Logger
}

// NewGateway returns a gateway over kv.
func NewGateway(kv KV, log zerolog.Logger) *Gateway {
	return &Gateway{kv: kv, log: log}
}

// Load reads the state. A missing key yields its default. A key holding
// malformed JSON is logged and yields its default too, without affecting
// the other keys. Only backend failures are returned.
func (g *Gateway) Load(ctx context.Context) (fintrack.State, error) {
	var values [3]string
	var found [3]bool
	eg, ctx := errgroup.WithContext(ctx)
	for i, key := range Keys {
		eg.Go(func() error {
			v, ok, err := g.kv.Get(ctx, key)
			if err != nil {
				return fmt.Errorf("could not read %q: %w", key, err)
			}
			values[i], found[i] = v, ok
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fintrack.State{}, err
	}

	s := fintrack.NewState()
	if found[0] {
		var data fintrack.State
		if err := fintrack.DecodeData(values[0], &data); err != nil {
			g.recovered(&fintrack.DeserializationError{Key: KeyData, Err: err})
		} else {
			s.Ledger, s.Registry, s.People = data.Ledger, data.Registry, data.People
		}
	}
	if found[1] {
		cfg, err := fintrack.DecodeMonthly(values[1])
		if err != nil {
			g.recovered(&fintrack.DeserializationError{Key: KeyMonthly, Err: err})
		} else {
			s.Monthly = cfg
		}
	}
	if found[2] {
		deps, err := fintrack.DecodeScheduled(values[2])
		if err != nil {
			g.recovered(&fintrack.DeserializationError{Key: KeyScheduled, Err: err})
		} else {
			s.Scheduled = deps
		}
	}
	g.log.Debug().
		Int("transactions", s.Ledger.Len()).
		Int("people", len(s.People)).
		Int("scheduled", len(s.Scheduled)).
		Msg("state loaded")
	return s, nil
}

func (g *Gateway) recovered(err *fintrack.DeserializationError) {
	g.log.Warn().Err(err.Err).Str("key", err.Key).Msg("malformed value, using defaults")
}

// Save writes every key. It attempts all writes and returns their joined errors.
func (g *Gateway) Save(ctx context.Context, s fintrack.State) error {
	data, err := fintrack.EncodeData(s)
	if err != nil {
		return fmt.Errorf("could not encode %q: %w", KeyData, err)
	}
	monthly, err := fintrack.EncodeMonthly(s.Monthly)
	if err != nil {
		return fmt.Errorf("could not encode %q: %w", KeyMonthly, err)
	}
	scheduled, err := fintrack.EncodeScheduled(s.Scheduled)
	if err != nil {
		return fmt.Errorf("could not encode %q: %w", KeyScheduled, err)
	}

	var errs error
	for _, kv := range [][2]string{{KeyData, data}, {KeyMonthly, monthly}, {KeyScheduled, scheduled}} {
		if err := g.kv.Set(ctx, kv[0], kv[1]); err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not write %q: %w", kv[0], err))
		}
	}
	if errs != nil {
		g.log.Error().Err(errs).Msg("state not saved")
		return errs
	}
	g.log.Debug().Int("transactions", s.Ledger.Len()).Msg("state saved")
	return nil
}

// Kinds of backend accepted by Open.
const (
	KindMemory = "memory"
	KindDir    = "dir"
	KindSQLite = "sqlite"
)

// Open opens a backend of the given kind at path.
func Open(kind, path string) (KV, error) {
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindDir:
		d, err := OpenDir(path)
		if err != nil {
			return nil, err
		}
		return d, nil
	case KindSQLite:
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q, want one of %s, %s, %s", kind, KindMemory, KindDir, KindSQLite)
	}
}
