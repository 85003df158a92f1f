package fintrack

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// MoneySource is a pocket money is held in.
type MoneySource string

const (
	Mobile MoneySource = "mobile"
	Cash   MoneySource = "cash"
	Card   MoneySource = "card"
	Loan   MoneySource = "loan"
)

var sources = []MoneySource{Mobile, Cash, Card, Loan}

// Sources returns every money source in display order.
func Sources() []MoneySource { return slices.Clone(sources) }

// ParseSource parses a source name.
func ParseSource(s string) (MoneySource, error) {
	src := MoneySource(s)
	if !src.Valid() {
		return "", invalid("source", fmt.Errorf("%w: %q", ErrUnknownSource, s))
	}
	return src, nil
}

func (s MoneySource) Valid() bool { return slices.Contains(sources, s) }

// Label is the human name of the source.
func (s MoneySource) Label() string {
	switch s {
	case Mobile:
		return "Mobile Banking"
	case Cash:
		return "Cash"
	case Card:
		return "Card"
	case Loan:
		return "Loan"
	}
	return string(s)
}

// Category classifies an expense.
type Category string

const (
	Food          Category = "food"
	Entertainment Category = "entertainment"
	Vehicle       Category = "vehicle"
	Extra         Category = "extra"
)

var categories = []Category{Food, Entertainment, Vehicle, Extra}

// Categories returns every expense category in display order.
func Categories() []Category { return slices.Clone(categories) }

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", invalid("category", fmt.Errorf("%w: %q", ErrUnknownCategory, s))
	}
	return c, nil
}

func (c Category) Valid() bool { return slices.Contains(categories, c) }

// Label is the human name of the category.
func (c Category) Label() string {
	switch c {
	case Food:
		return "Food"
	case Entertainment:
		return "Entertainment"
	case Vehicle:
		return "Vehicle"
	case Extra:
		return "Extra"
	}
	return string(c)
}

// Registry holds the current balance of every money source.
//
// A Registry is a value: operations return a modified copy.
type Registry struct {
	balances map[MoneySource]Money
}

// NewRegistry returns a registry with every source at zero.
func NewRegistry() Registry {
	return Registry{balances: make(map[MoneySource]Money, len(sources))}
}

// Get returns the balance of s, zero if s was never set.
func (r Registry) Get(s MoneySource) Money { return r.balances[s] }

// With returns a copy of r where s has balance m.
func (r Registry) With(s MoneySource, m Money) Registry {
	c := Registry{balances: maps.Clone(r.balances)}
	if c.balances == nil {
		c.balances = make(map[MoneySource]Money, len(sources))
	}
	c.balances[s] = m
	return c
}

// Total returns the sum of all balances.
func (r Registry) Total() Money {
	var t Money
	for _, s := range sources {
		t = t.Add(r.Get(s))
	}
	return t
}

// Equal reports whether both registries hold the same balances.
func (r Registry) Equal(o Registry) bool {
	for _, s := range sources {
		if !r.Get(s).Equal(o.Get(s)) {
			return false
		}
	}
	return true
}

func (r Registry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, s := range sources {
		w.Append(string(s), r.Get(s))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads a source to amount object. Missing sources are zero,
// unknown keys are ignored.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var raw map[string]Money
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	reg := NewRegistry()
	for _, s := range sources {
		if v, ok := raw[string(s)]; ok {
			reg.balances[s] = v
		}
	}
	*r = reg
	return nil
}
