package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fintrack"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the transactions, most recent first. Debits are
// shown negative.
func HistoryMarkdown(title string, l fintrack.Ledger, people []fintrack.Person) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	if l.Len() == 0 {
		doc.PlainText("No transactions found.")
		return doc.String()
	}

	names := make(map[fintrack.PersonID]string, len(people))
	for _, p := range people {
		names[p.ID] = p.Name
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Type", "Detail", "Source", "Amount", "Description", "ID"},
		Rows:   [][]string{},
	}
	for _, tx := range l.Transactions() {
		table.Rows = append(table.Rows, []string{
			fintrack.DateOf(tx.When()).String(),
			tx.What().Label(),
			detail(tx, names),
			tx.From().Label(),
			signed(tx).SignedString(),
			orDash(tx.Memo()),
			tx.Identifier().String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// PeopleMarkdown renders the loan position with every person.
func PeopleMarkdown(people []*Person) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("People")

	if len(people) == 0 {
		doc.PlainText("No people yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Name", "Given", "Received", "Balance", "ID"},
		Rows:   [][]string{},
	}
	for _, p := range people {
		table.Rows = append(table.Rows, []string{
			p.Person.Name,
			p.Balance.Given.String(),
			p.Balance.Received.String(),
			p.Balance.Balance.String(),
			string(p.Person.ID),
		})
	}
	doc.Table(table)
	return doc.String()
}

func detail(tx fintrack.Transaction, names map[fintrack.PersonID]string) string {
	if c, ok := fintrack.CategoryOf(tx); ok {
		return c.Label()
	}
	if p, ok := fintrack.Counterparty(tx); ok {
		if name, ok := names[p]; ok {
			return name
		}
		return fmt.Sprintf("unknown (%s)", p)
	}
	return "-"
}

// signed returns the amount as it affects the source balance.
func signed(tx fintrack.Transaction) fintrack.Money {
	switch tx.What() {
	case fintrack.TypeExpense, fintrack.TypeMoneyGiven:
		return tx.Value().Neg()
	}
	return tx.Value()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
