package fintrack

// Direction tells ApplyEffect whether a transaction is being recorded or undone.
type Direction int

const (
	Apply Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "apply"
}

// ApplyEffect returns the registry after recording (Apply) or undoing
// (Reverse) tx on its source.
//
// Debits clamp the balance at zero, credits never do, so reversing a
// clamped debit credits the full amount back:
//
//	balance 30, expense 50: Apply gives 0, Reverse of that gives 50.
//
// Reversing a MoneyReceived is the only clamped reversal.
func ApplyEffect(r Registry, tx Transaction, d Direction) Registry {
	src, amt := tx.From(), tx.Value()
	b := r.Get(src)
	var next Money
	switch tx.What() {
	case TypeExpense, TypeMoneyGiven:
		if d == Apply {
			next = b.Sub(amt).Floor()
		} else {
			next = b.Add(amt)
		}
	case TypeSavings:
		if d == Apply {
			next = b.Add(amt)
		} else {
			next = b.Sub(amt)
		}
	case TypeMoneyReceived:
		if d == Apply {
			next = b.Add(amt)
		} else {
			next = b.Sub(amt).Floor()
		}
	default:
		return r
	}
	return r.With(src, next)
}

// Fold replays the ledger, oldest first, onto an empty registry.
func Fold(l Ledger) Registry {
	r := NewRegistry()
	for tx := range l.Chronological() {
		r = ApplyEffect(r, tx, Apply)
	}
	return r
}

// CategoryTotal is the spending of one category.
type CategoryTotal struct {
	Category Category
	Amount   Money
	Count    int
	Percent  string // share of total expenses, e.g. "12.5"
}

// Average returns the mean expense of the category.
func (c CategoryTotal) Average() Money { return c.Amount.Div(c.Count) }

// Aggregate summarizes a ledger and its registry.
type Aggregate struct {
	Registry      Registry
	TotalBalance  Money
	TotalExpenses Money
	NetBalance    Money
	Loan          Money
	Breakdown     []CategoryTotal // one entry per category, in display order
	Counts        map[TxType]int
	ExpenseCount  int
}

// Category returns the total for c.
func (a Aggregate) Category(c Category) CategoryTotal {
	for _, ct := range a.Breakdown {
		if ct.Category == c {
			return ct
		}
	}
	return CategoryTotal{Category: c, Percent: "0"}
}

// AverageExpense returns the mean expense amount.
func (a Aggregate) AverageExpense() Money { return a.TotalExpenses.Div(a.ExpenseCount) }

// NewAggregate computes the totals of l, with balances taken from r.
func NewAggregate(l Ledger, r Registry) Aggregate {
	a := Aggregate{
		Registry:     r,
		TotalBalance: r.Total(),
		Loan:         r.Get(Loan),
		Counts:       make(map[TxType]int, 4),
	}
	byCat := make(map[Category]CategoryTotal, len(categories))
	for _, tx := range l.Transactions() {
		a.Counts[tx.What()]++
		c, ok := CategoryOf(tx)
		if !ok {
			continue
		}
		ct := byCat[c]
		ct.Amount = ct.Amount.Add(tx.Value())
		ct.Count++
		byCat[c] = ct
		a.TotalExpenses = a.TotalExpenses.Add(tx.Value())
		a.ExpenseCount++
	}
	a.NetBalance = a.TotalBalance.Sub(a.TotalExpenses)
	for _, c := range categories {
		ct := byCat[c]
		ct.Category = c
		ct.Percent = ct.Amount.Percent(a.TotalExpenses).String()
		a.Breakdown = append(a.Breakdown, ct)
	}
	return a
}

// PersonBalance nets the loans with one person.
type PersonBalance struct {
	Person   PersonID
	Given    Money
	Received Money
	Balance  Money // Given - Received; positive when the person owes the owner.
}

// OwesOwner reports whether the person still owes money to the owner.
func (p PersonBalance) OwesOwner() bool { return p.Balance.IsPositive() }

// Settled reports whether nothing is owed either way.
func (p PersonBalance) Settled() bool { return p.Balance.IsZero() }

// NewPersonBalance nets every loan transaction with person.
func NewPersonBalance(l Ledger, person PersonID) PersonBalance {
	pb := PersonBalance{Person: person}
	for _, tx := range l.Transactions(ForPerson(person)) {
		switch tx.What() {
		case TypeMoneyGiven:
			pb.Given = pb.Given.Add(tx.Value())
		case TypeMoneyReceived:
			pb.Received = pb.Received.Add(tx.Value())
		}
	}
	pb.Balance = pb.Given.Sub(pb.Received)
	return pb
}
