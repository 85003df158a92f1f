package renderer

import "github.com/etnz/fintrack"

// Line is one labelled amount.
type Line struct {
	Label  string
	Amount fintrack.Money
}

// Summary is the view of an Aggregate.
type Summary struct {
	Balances     []Line
	Total        fintrack.Money
	Expenses     fintrack.Money
	ExpenseCount int
	Net          fintrack.Money
	Loan         fintrack.Money
	Categories   []fintrack.CategoryTotal
}

// NewSummary builds the view of a.
func NewSummary(a fintrack.Aggregate) *Summary {
	s := &Summary{
		Total:        a.TotalBalance,
		Expenses:     a.TotalExpenses,
		ExpenseCount: a.ExpenseCount,
		Net:          a.NetBalance,
		Loan:         a.Loan,
		Categories:   a.Breakdown,
	}
	for _, src := range fintrack.Sources() {
		s.Balances = append(s.Balances, Line{Label: src.Label(), Amount: a.Registry.Get(src)})
	}
	return s
}

// RenderSummary renders balances and the expense breakdown.
func RenderSummary(s *Summary) string {
	partials := map[string]string{
		"summary_balances":  "summary_balances.md",
		"summary_breakdown": "summary_breakdown.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}
