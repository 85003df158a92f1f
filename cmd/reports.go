package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display balances and expenses by category" }
func (*summaryCmd) Usage() string {
	return `fin summary

  Displays the balance of every money source, the total expenses and their
  breakdown by category.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderSummary(renderer.NewSummary(a.book.Aggregate())))
		return subcommands.ExitSuccess
	})
}

type historyCmd struct {
	typ    string
	person string
	source string
	from   string
	to     string
	head   int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list transactions, most recent first" }
func (*historyCmd) Usage() string {
	return `fin history [-t <type>] [-p <person>] [-s <source>] [-from <date>] [-to <date>] [-head <n>]

  Lists transactions, most recent first. Filters are combined.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "", "Transaction type: expense, savings, moneyGiven or moneyReceived")
	f.StringVar(&c.person, "p", "", "Only loans with this person, by name or id")
	f.StringVar(&c.source, "s", "", "Only transactions on this money source")
	f.StringVar(&c.from, "from", "", "Only transactions on or after this date")
	f.StringVar(&c.to, "to", "", "Only transactions on or before this date")
	f.IntVar(&c.head, "head", 0, "Show only the N most recent transactions")
}

func (c *historyCmd) filters(b *fintrack.Book) ([]func(fintrack.Transaction) bool, error) {
	var filters []func(fintrack.Transaction) bool
	if c.typ != "" {
		t, err := fintrack.ParseTxType(c.typ)
		if err != nil {
			return nil, err
		}
		filters = append(filters, fintrack.OfType(t))
	}
	if c.person != "" {
		p, ok := b.FindPerson(c.person)
		if !ok {
			return nil, fmt.Errorf("%w: %q", fintrack.ErrUnknownPerson, c.person)
		}
		filters = append(filters, fintrack.ForPerson(p.ID))
	}
	if c.source != "" {
		s, err := fintrack.ParseSource(c.source)
		if err != nil {
			return nil, err
		}
		filters = append(filters, fintrack.FromSource(s))
	}
	if c.from != "" || c.to != "" {
		r := fintrack.Range{From: fintrack.NewDate(1, 1, 1), To: fintrack.Today()}
		var err error
		if c.from != "" {
			if r.From, err = fintrack.ParseDate(c.from); err != nil {
				return nil, err
			}
		}
		if c.to != "" {
			if r.To, err = fintrack.ParseDate(c.to); err != nil {
				return nil, err
			}
		}
		filters = append(filters, fintrack.InRange(r))
	}
	return filters, nil
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		filters, err := c.filters(a.book)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		var txs []fintrack.Transaction
		for _, tx := range a.book.Ledger().Transactions(fintrack.All(filters...)) {
			if c.head > 0 && len(txs) == c.head {
				break
			}
			txs = append(txs, tx)
		}
		printMarkdown(renderer.HistoryMarkdown("History", fintrack.NewLedger(txs...), a.book.People()))
		return subcommands.ExitSuccess
	})
}

type forecastCmd struct {
	date string
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "project the total balance on a date" }
func (*forecastCmd) Usage() string {
	return `fin forecast [-d <date>]

  Projects the total balance on a date, adding the pending scheduled deposits
  and the monthly deposits due until then. A date in the past shows the
  current balance.
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "+1m", "Date of the projection. See 'fin topic dates' for supported formats.")
}

func (c *forecastCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := fintrack.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderForecast(&renderer.Forecast{
			Forecast: a.book.Forecast(on),
			Monthly:  a.book.Monthly(),
			Pending:  fintrack.Pending(a.book.Scheduled()),
		}))
		return subcommands.ExitSuccess
	})
}
