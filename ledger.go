package fintrack

import (
	"iter"
	"slices"
)

// Ledger is the list of all transactions, most recent first.
//
// A Ledger is a value: Append and Remove return a new Ledger and leave the
// receiver untouched. The zero value is an empty ledger.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates a ledger holding txs in the given order (most recent first).
func NewLedger(txs ...Transaction) Ledger {
	return Ledger{transactions: slices.Clone(txs)}
}

// Append returns a ledger with tx inserted at the head.
func (l Ledger) Append(tx Transaction) Ledger {
	txs := make([]Transaction, 0, len(l.transactions)+1)
	txs = append(txs, tx)
	txs = append(txs, l.transactions...)
	return Ledger{transactions: txs}
}

// Remove returns a ledger without the transaction id. Removing an unknown id
// returns an equal ledger.
func (l Ledger) Remove(id TxID) Ledger {
	i := l.index(id)
	if i < 0 {
		return l
	}
	return Ledger{transactions: slices.Delete(slices.Clone(l.transactions), i, i+1)}
}

// Find returns the transaction id, if any.
func (l Ledger) Find(id TxID) (Transaction, bool) {
	i := l.index(id)
	if i < 0 {
		return nil, false
	}
	return l.transactions[i], true
}

func (l Ledger) index(id TxID) int {
	return slices.IndexFunc(l.transactions, func(tx Transaction) bool { return tx.Identifier() == id })
}

// Len returns the number of transactions.
func (l Ledger) Len() int { return len(l.transactions) }

// MaxID returns the highest transaction id, zero for an empty ledger.
func (l Ledger) MaxID() TxID {
	var m TxID
	for _, tx := range l.transactions {
		m = max(m, tx.Identifier())
	}
	return m
}

// Transactions returns an iterator over the transactions, most recent first.
// With filters, a transaction is yielded if any of them accepts it.
func (l Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if len(filters) > 0 && !slices.ContainsFunc(filters, func(f func(Transaction) bool) bool { return f(tx) }) {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Chronological returns an iterator over the transactions, oldest first.
func (l Ledger) Chronological() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for i := len(l.transactions) - 1; i >= 0; i-- {
			if !yield(l.transactions[i]) {
				return
			}
		}
	}
}

// Equal reports whether both ledgers hold equal transactions in the same order.
func (l Ledger) Equal(o Ledger) bool {
	return slices.EqualFunc(l.transactions, o.transactions, func(a, b Transaction) bool { return a.Equal(b) })
}

// All accepts transactions accepted by every filter.
func All(filters ...func(Transaction) bool) func(Transaction) bool {
	return func(tx Transaction) bool {
		for _, f := range filters {
			if !f(tx) {
				return false
			}
		}
		return true
	}
}

// AcceptAll accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// OfType accepts transactions of type t.
func OfType(t TxType) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.What() == t }
}

// ForPerson accepts loans with person p.
func ForPerson(p PersonID) func(Transaction) bool {
	return func(tx Transaction) bool {
		id, ok := Counterparty(tx)
		return ok && id == p
	}
}

// FromSource accepts transactions on source s.
func FromSource(s MoneySource) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.From() == s }
}

// InRange accepts transactions created on a day within r.
func InRange(r Range) func(Transaction) bool {
	return func(tx Transaction) bool { return r.Contains(DateOf(tx.When())) }
}
