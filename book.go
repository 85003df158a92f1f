package fintrack

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Book is the mutable tracker state. Every mutation validates its input
// first and leaves the book untouched on error.
//
// A Book is not safe for concurrent use.
type Book struct {
	state State
	ids   *IDGenerator
	now   func() time.Time
}

// NewBook wraps s. Future transaction ids are greater than any id in s.
func NewBook(s State) *Book {
	if s.Registry.balances == nil {
		s.Registry = NewRegistry()
	}
	return &Book{state: s, ids: NewIDGenerator(s.Ledger.MaxID()), now: Now}
}

// State returns a copy of the current state.
func (b *Book) State() State { return b.state.Clone() }

func (b *Book) Ledger() Ledger                  { return b.state.Ledger }
func (b *Book) Registry() Registry              { return b.state.Registry }
func (b *Book) People() []Person                { return slices.Clone(b.state.People) }
func (b *Book) Scheduled() []ScheduledDeposit   { return slices.Clone(b.state.Scheduled) }
func (b *Book) Aggregate() Aggregate            { return NewAggregate(b.state.Ledger, b.state.Registry) }
func (b *Book) PersonBalance(id PersonID) PersonBalance {
	return NewPersonBalance(b.state.Ledger, id)
}

// Monthly returns a copy of the monthly deposit config, nil if unset.
func (b *Book) Monthly() *MonthlyDepositConfig {
	if b.state.Monthly == nil {
		return nil
	}
	c := *b.state.Monthly
	return &c
}

// Person returns the person id, if known.
func (b *Book) Person(id PersonID) (Person, bool) {
	i := slices.IndexFunc(b.state.People, func(p Person) bool { return p.ID == id })
	if i < 0 {
		return Person{}, false
	}
	return b.state.People[i], true
}

// FindPerson looks a person up by id, or by case-insensitive name.
func (b *Book) FindPerson(key string) (Person, bool) {
	if p, ok := b.Person(PersonID(key)); ok {
		return p, true
	}
	for _, p := range b.state.People {
		if strings.EqualFold(p.Name, strings.TrimSpace(key)) {
			return p, true
		}
	}
	return Person{}, false
}

// Forecast projects the total balance on asOf.
func (b *Book) Forecast(asOf Date) Forecast {
	return ProjectFrom(DateOf(b.now()), b.state.Registry, asOf, b.state.Monthly, b.state.Scheduled)
}

// Consistent reports whether the registry equals a replay of the ledger.
// It only holds for ledgers where no debit was ever clamped.
func (b *Book) Consistent() bool { return b.state.Registry.Equal(Fold(b.state.Ledger)) }

// record validates tx, then applies it to the registry and the ledger.
func (b *Book) record(tx Transaction) (Transaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	b.state.Registry = ApplyEffect(b.state.Registry, tx, Apply)
	b.state.Ledger = b.state.Ledger.Append(tx)
	return tx, nil
}

// AddExpense records money spent.
func (b *Book) AddExpense(amount Money, source MoneySource, category Category, desc string) (Transaction, error) {
	return b.record(NewExpense(b.ids.Next(), b.now(), amount, source, category, desc))
}

// AddSavings records a deposit.
func (b *Book) AddSavings(amount Money, source MoneySource, desc string) (Transaction, error) {
	return b.record(NewSavings(b.ids.Next(), b.now(), amount, source, desc))
}

// GiveMoney records a loan to a known person.
func (b *Book) GiveMoney(person PersonID, amount Money, source MoneySource, desc string) (Transaction, error) {
	if _, ok := b.Person(person); !ok {
		return nil, invalid("person", fmt.Errorf("%w: %q", ErrUnknownPerson, person))
	}
	return b.record(NewMoneyGiven(b.ids.Next(), b.now(), person, amount, source, desc))
}

// ReceiveMoney records a repayment from a known person.
func (b *Book) ReceiveMoney(person PersonID, amount Money, source MoneySource, desc string) (Transaction, error) {
	if _, ok := b.Person(person); !ok {
		return nil, invalid("person", fmt.Errorf("%w: %q", ErrUnknownPerson, person))
	}
	return b.record(NewMoneyReceived(b.ids.Next(), b.now(), person, amount, source, desc))
}

// AddPerson registers a new counterparty.
func (b *Book) AddPerson(name string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, invalid("name", ErrBlankName)
	}
	p := Person{ID: NewPersonID(), Name: name}
	b.state.People = append(b.state.People, p)
	return p, nil
}

// DeleteTransaction reverses and removes transaction id. It returns the
// removed transaction, or false if there was none.
func (b *Book) DeleteTransaction(id TxID) (Transaction, bool) {
	tx, ok := b.state.Ledger.Find(id)
	if !ok {
		return nil, false
	}
	b.state.Registry = ApplyEffect(b.state.Registry, tx, Reverse)
	b.state.Ledger = b.state.Ledger.Remove(id)
	return tx, true
}

// AdjustBalance brings the balance of source up to target by recording a
// Savings of the difference. It records nothing when the balance already
// equals target, and refuses to lower a balance.
func (b *Book) AdjustBalance(source MoneySource, target Money) (Transaction, error) {
	if !source.Valid() {
		return nil, invalid("source", fmt.Errorf("%w: %q", ErrUnknownSource, source))
	}
	if target.IsNegative() {
		return nil, invalid("amount", ErrNegativeBalance)
	}
	current := b.state.Registry.Get(source)
	switch {
	case target.Equal(current):
		return nil, nil
	case target.LessThan(current):
		return nil, invalid("amount", fmt.Errorf("%w: %s is below %s", ErrDecrease, target, current))
	}
	desc := fmt.Sprintf("Adjustment: %s → %s", current.Plain(), target.Plain())
	return b.AddSavings(target.Sub(current), source, desc)
}

// ScheduleDeposit plans a one-off deposit on date.
func (b *Book) ScheduleDeposit(amount Money, source MoneySource, date Date, desc string) (ScheduledDeposit, error) {
	d := ScheduledDeposit{
		ID:            NewDepositID(),
		Amount:        amount,
		Source:        source,
		ScheduledDate: date,
		Description:   desc,
	}
	if err := d.Validate(); err != nil {
		return ScheduledDeposit{}, err
	}
	b.state.Scheduled = append(b.state.Scheduled, d)
	return d, nil
}

// SetDepositCompleted marks a scheduled deposit done, or pending again.
// It does not record any transaction.
func (b *Book) SetDepositCompleted(id DepositID, completed bool) error {
	i := slices.IndexFunc(b.state.Scheduled, func(d ScheduledDeposit) bool { return d.ID == id })
	if i < 0 {
		return invalid("deposit", fmt.Errorf("%w: %q", ErrUnknownDeposit, id))
	}
	b.state.Scheduled = slices.Clone(b.state.Scheduled)
	b.state.Scheduled[i].Completed = completed
	return nil
}

// ConfigureMonthly replaces the monthly deposit config.
func (b *Book) ConfigureMonthly(cfg MonthlyDepositConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	run := b.now().UTC()
	cfg.LastRun = &run
	b.state.Monthly = &cfg
	return nil
}

// Import replaces the ledger, the registry and the people with a backup.
// Scheduled deposits and the monthly config are kept.
func (b *Book) Import(bk Backup) {
	b.state.Ledger = bk.Transactions
	b.state.Registry = bk.Savings
	b.state.People = slices.Clone(bk.People)
	b.ids.Observe(bk.Transactions.MaxID())
}

// Backup returns the exportable part of the book.
func (b *Book) Backup() Backup {
	return Backup{
		Version:      BackupVersion,
		Transactions: b.state.Ledger,
		Savings:      b.state.Registry,
		People:       slices.Clone(b.state.People),
	}
}
