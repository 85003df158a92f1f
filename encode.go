package fintrack

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Person is a counterparty of loans.
type Person struct {
	ID   PersonID `json:"id"`
	Name string   `json:"name"`
}

// State is everything the tracker persists.
type State struct {
	Ledger    Ledger
	Registry  Registry
	People    []Person
	Monthly   *MonthlyDepositConfig // nil when never configured
	Scheduled []ScheduledDeposit
}

// NewState returns the state of a fresh install.
func NewState() State {
	return State{Registry: NewRegistry()}
}

// Clone returns a copy sharing nothing mutable with s.
func (s State) Clone() State {
	// Ledger and Registry are values, never mutated in place.
	c := State{
		Ledger:    s.Ledger,
		Registry:  s.Registry,
		People:    slices.Clone(s.People),
		Scheduled: slices.Clone(s.Scheduled),
	}
	if s.Monthly != nil {
		m := *s.Monthly
		c.Monthly = &m
	}
	return c
}

// The data blob holds the ledger, the registry and the people together.
type dataBlob struct {
	Savings      Registry `json:"savings"`
	People       []Person `json:"moneyGivenPeople"`
	Transactions Ledger   `json:"transactions"`
}

// EncodeData returns the persisted form of the ledger, registry and people.
func EncodeData(s State) (string, error) {
	people := s.People
	if people == nil {
		people = []Person{}
	}
	b, err := json.Marshal(dataBlob{Savings: s.Registry, People: people, Transactions: s.Ledger})
	return string(b), err
}

// DecodeData reads the ledger, registry and people into s. It fails, leaving
// s untouched, when a stored transaction does not validate.
func DecodeData(value string, s *State) error {
	blob := dataBlob{Savings: NewRegistry()}
	if err := json.NewDecoder(strings.NewReader(value)).Decode(&blob); err != nil {
		return err
	}
	for _, tx := range blob.Transactions.Transactions() {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %s: %w", tx.Identifier(), err)
		}
	}
	s.Registry = blob.Savings
	s.People = blob.People
	s.Ledger = blob.Transactions
	return nil
}

// EncodeMonthly returns the persisted form of the monthly config, "null" when unset.
func EncodeMonthly(cfg *MonthlyDepositConfig) (string, error) {
	b, err := json.Marshal(cfg)
	return string(b), err
}

// DecodeMonthly reads a monthly config. "null" decodes to nil. An enabled
// config must validate.
func DecodeMonthly(value string) (*MonthlyDepositConfig, error) {
	var cfg *MonthlyDepositConfig
	if err := json.Unmarshal([]byte(value), &cfg); err != nil {
		return nil, err
	}
	if cfg != nil && cfg.Enabled {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// EncodeScheduled returns the persisted form of the scheduled deposits.
func EncodeScheduled(deps []ScheduledDeposit) (string, error) {
	if deps == nil {
		deps = []ScheduledDeposit{}
	}
	b, err := json.Marshal(deps)
	return string(b), err
}

// DecodeScheduled reads the scheduled deposits.
func DecodeScheduled(value string) ([]ScheduledDeposit, error) {
	var deps []ScheduledDeposit
	if err := json.Unmarshal([]byte(value), &deps); err != nil {
		return nil, err
	}
	for _, d := range deps {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("scheduled deposit %s: %w", d.ID, err)
		}
	}
	return deps, nil
}
