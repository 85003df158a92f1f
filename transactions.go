package fintrack

import (
	"errors"
	"fmt"
	"time"
)

// TxType identifies the kind of a transaction. Its values are persisted.
type TxType string

const (
	TypeExpense       TxType = "expense"
	TypeSavings       TxType = "savings"
	TypeMoneyGiven    TxType = "moneyGiven"
	TypeMoneyReceived TxType = "moneyReceived"
)

// TxTypes returns every transaction type in display order.
func TxTypes() []TxType {
	return []TxType{TypeExpense, TypeSavings, TypeMoneyGiven, TypeMoneyReceived}
}

// ParseTxType parses a transaction type name.
func ParseTxType(s string) (TxType, error) {
	for _, t := range TxTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Label is the human name of the type.
func (t TxType) Label() string {
	switch t {
	case TypeExpense:
		return "Expense"
	case TypeSavings:
		return "Savings"
	case TypeMoneyGiven:
		return "Money Given"
	case TypeMoneyReceived:
		return "Money Received"
	}
	return string(t)
}

// Transaction is one immutable record of the ledger. It is implemented by
// Expense, Savings, MoneyGiven and MoneyReceived only.
type Transaction interface {
	What() TxType          // What returns the kind of transaction.
	When() time.Time       // When returns the creation instant.
	Identifier() TxID      // Identifier returns the unique id.
	Value() Money          // Value returns the amount moved, always positive once valid.
	From() MoneySource     // From returns the money source affected.
	Memo() string          // Memo returns the optional description.
	Equal(Transaction) bool
	Validate() error
}

type baseTx struct {
	ID          TxID
	Type        TxType
	Date        time.Time
	Description string
}

func (t baseTx) What() TxType     { return t.Type }
func (t baseTx) When() time.Time  { return t.Date }
func (t baseTx) Identifier() TxID { return t.ID }
func (t baseTx) Memo() string     { return t.Description }

func (t baseTx) equal(o baseTx) bool {
	return t.ID == o.ID && t.Type == o.Type && t.Date.Equal(o.Date) && t.Description == o.Description
}

// flowTx is the part shared by every variant: an amount moved in or out of a source.
type flowTx struct {
	baseTx
	Amount Money
	Source MoneySource
}

func (t flowTx) Value() Money      { return t.Amount }
func (t flowTx) From() MoneySource { return t.Source }

func (t flowTx) equal(o flowTx) bool {
	return t.baseTx.equal(o.baseTx) && t.Amount.Equal(o.Amount) && t.Source == o.Source
}

func (t flowTx) validate() error {
	if !t.Amount.IsPositive() {
		return invalid("amount", fmt.Errorf("%w, got %s", ErrInvalidAmount, t.Amount.Plain()))
	}
	if !t.Source.Valid() {
		return invalid("source", fmt.Errorf("%w: %q", ErrUnknownSource, t.Source))
	}
	return nil
}

// newFlow keeps the millisecond precision transactions are stored with.
func newFlow(typ TxType, id TxID, at time.Time, amount Money, source MoneySource, desc string) flowTx {
	return flowTx{
		baseTx: baseTx{ID: id, Type: typ, Date: at.Truncate(time.Millisecond), Description: desc},
		Amount: amount,
		Source: source,
	}
}

// Expense is money spent from a source.
type Expense struct {
	flowTx
	Category Category
}

// NewExpense creates a new Expense transaction.
func NewExpense(id TxID, at time.Time, amount Money, source MoneySource, category Category, desc string) Expense {
	return Expense{flowTx: newFlow(TypeExpense, id, at, amount, source, desc), Category: category}
}

func (t Expense) Equal(other Transaction) bool {
	o, ok := other.(Expense)
	return ok && t.flowTx.equal(o.flowTx) && t.Category == o.Category
}

func (t Expense) Validate() error {
	if err := t.flowTx.validate(); err != nil {
		return err
	}
	if !t.Category.Valid() {
		return invalid("category", fmt.Errorf("%w: %q", ErrUnknownCategory, t.Category))
	}
	return nil
}

// Savings is money deposited into a source.
type Savings struct {
	flowTx
}

// NewSavings creates a new Savings transaction.
func NewSavings(id TxID, at time.Time, amount Money, source MoneySource, desc string) Savings {
	return Savings{flowTx: newFlow(TypeSavings, id, at, amount, source, desc)}
}

func (t Savings) Equal(other Transaction) bool {
	o, ok := other.(Savings)
	return ok && t.flowTx.equal(o.flowTx)
}

func (t Savings) Validate() error { return t.flowTx.validate() }

// MoneyGiven is money lent to a person, taken from a source.
type MoneyGiven struct {
	flowTx
	PersonID PersonID
}

// NewMoneyGiven creates a new MoneyGiven transaction.
func NewMoneyGiven(id TxID, at time.Time, person PersonID, amount Money, source MoneySource, desc string) MoneyGiven {
	return MoneyGiven{flowTx: newFlow(TypeMoneyGiven, id, at, amount, source, desc), PersonID: person}
}

func (t MoneyGiven) Equal(other Transaction) bool {
	o, ok := other.(MoneyGiven)
	return ok && t.flowTx.equal(o.flowTx) && t.PersonID == o.PersonID
}

func (t MoneyGiven) Validate() error { return validateLoan(t.flowTx, t.PersonID) }

// MoneyReceived is money paid back by a person, credited to a source.
type MoneyReceived struct {
	flowTx
	PersonID PersonID
}

// NewMoneyReceived creates a new MoneyReceived transaction.
func NewMoneyReceived(id TxID, at time.Time, person PersonID, amount Money, source MoneySource, desc string) MoneyReceived {
	return MoneyReceived{flowTx: newFlow(TypeMoneyReceived, id, at, amount, source, desc), PersonID: person}
}

func (t MoneyReceived) Equal(other Transaction) bool {
	o, ok := other.(MoneyReceived)
	return ok && t.flowTx.equal(o.flowTx) && t.PersonID == o.PersonID
}

func (t MoneyReceived) Validate() error { return validateLoan(t.flowTx, t.PersonID) }

func validateLoan(t flowTx, person PersonID) error {
	if err := t.validate(); err != nil {
		return err
	}
	if person == "" {
		return invalid("person", errors.New("person is missing"))
	}
	return nil
}

// Counterparty returns the person of a loan transaction.
func Counterparty(tx Transaction) (PersonID, bool) {
	switch v := tx.(type) {
	case MoneyGiven:
		return v.PersonID, true
	case MoneyReceived:
		return v.PersonID, true
	}
	return "", false
}

// CategoryOf returns the category of an expense.
func CategoryOf(tx Transaction) (Category, bool) {
	if e, ok := tx.(Expense); ok {
		return e.Category, true
	}
	return "", false
}
