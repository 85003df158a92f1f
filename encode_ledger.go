package fintrack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// timestamp reads and writes an ISO-8601 instant with milliseconds in UTC.
type timestamp time.Time

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(TimestampFormat))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*t = timestamp(v)
	return nil
}

func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("type", t.Type)
	return w.MarshalJSON()
}

func (t flowTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Append("source", t.Source)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

// tail writes the fields every record ends with.
func (t baseTx) tail(w *jsonObjectWriter) {
	w.Optional("description", t.Description)
	w.Append("date", timestamp(t.Date))
}

func (t Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Append("category", t.Category)
	w.Append("source", t.Source)
	w.Append("amount", t.Amount)
	t.tail(&w)
	return w.MarshalJSON()
}

func (t Savings) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.flowTx)
	t.tail(&w)
	return w.MarshalJSON()
}

func (t MoneyGiven) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.flowTx)
	w.Append("personId", t.PersonID)
	t.tail(&w)
	return w.MarshalJSON()
}

func (t MoneyReceived) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.flowTx)
	w.Append("personId", t.PersonID)
	t.tail(&w)
	return w.MarshalJSON()
}

// txRecord has every field any transaction type may carry.
type txRecord struct {
	ID          TxID        `json:"id"`
	Type        TxType      `json:"type"`
	Category    Category    `json:"category"`
	Source      MoneySource `json:"source"`
	Amount      Money       `json:"amount"`
	PersonID    PersonID    `json:"personId"`
	Description string      `json:"description"`
	Date        timestamp   `json:"date"`
}

// DecodeTransaction decodes one JSON record, dispatching on its "type".
// The record is not validated.
func DecodeTransaction(data []byte) (Transaction, error) {
	var rec txRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	at := time.Time(rec.Date)
	switch rec.Type {
	case TypeExpense:
		return NewExpense(rec.ID, at, rec.Amount, rec.Source, rec.Category, rec.Description), nil
	case TypeSavings:
		return NewSavings(rec.ID, at, rec.Amount, rec.Source, rec.Description), nil
	case TypeMoneyGiven:
		return NewMoneyGiven(rec.ID, at, rec.PersonID, rec.Amount, rec.Source, rec.Description), nil
	case TypeMoneyReceived:
		return NewMoneyReceived(rec.ID, at, rec.PersonID, rec.Amount, rec.Source, rec.Description), nil
	default:
		return nil, fmt.Errorf("unknown transaction type %q in %s", rec.Type, bytes.TrimSpace(data))
	}
}

// MarshalJSON writes the ledger as an array, most recent first.
func (l Ledger) MarshalJSON() ([]byte, error) {
	if l.transactions == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.transactions)
}

// UnmarshalJSON reads an array of transaction records, most recent first.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	txs := make([]Transaction, 0, len(raws))
	for i, raw := range raws {
		tx, err := DecodeTransaction(raw)
		if err != nil {
			return fmt.Errorf("transaction #%d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	*l = Ledger{transactions: txs}
	return nil
}
