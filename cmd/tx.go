package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/internal/notify"
	"github.com/google/subcommands"
)

// flowFlags are the flags shared by every money movement.
type flowFlags struct {
	amount string
	source string
	memo   string
}

func (c *flowFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount, a positive decimal number")
	f.StringVar(&c.source, "s", "", "Money source: mobile, cash, card or loan")
	f.StringVar(&c.memo, "m", "", "An optional description")
}

func (c *flowFlags) parse() (fintrack.Money, fintrack.MoneySource, error) {
	if c.amount == "" {
		return fintrack.Money{}, "", fmt.Errorf("missing amount (-a)")
	}
	amount, err := fintrack.ParseMoney(c.amount)
	if err != nil {
		return fintrack.Money{}, "", err
	}
	source, err := fintrack.ParseSource(c.source)
	if err != nil {
		return fintrack.Money{}, "", err
	}
	return amount, source, nil
}

// record commits tx and prints a confirmation with the new source balance.
func record(ctx context.Context, a *app, tx fintrack.Transaction, err error) subcommands.ExitStatus {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := a.commit(ctx, notify.TxEvent(notify.OpAdd, tx, fintrack.Now())); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Recorded %s #%s: %s (%s)\n", strings.ToLower(tx.What().Label()), tx.Identifier(), tx.Value(), tx.From().Label())
	fmt.Fprintf(stdout, "%s balance: %s\n", tx.From().Label(), a.book.Registry().Get(tx.From()))
	return subcommands.ExitSuccess
}

// --- Expense Command ---

type expenseCmd struct {
	flowFlags
	category string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record money spent" }
func (*expenseCmd) Usage() string {
	return `fin expense -a <amount> -s <source> -c <category> [-m <memo>]

  Records an expense. The amount is debited from the source, whose balance
  never goes below zero.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	c.flowFlags.SetFlags(f)
	f.StringVar(&c.category, "c", "", "Category: food, entertainment, vehicle or extra")
}

func (c *expenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, source, err := c.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	category, err := fintrack.ParseCategory(c.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		tx, err := a.book.AddExpense(amount, source, category, c.memo)
		return record(ctx, a, tx, err)
	})
}

// --- Save Command ---

type saveCmd struct{ flowFlags }

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "record a deposit into a money source" }
func (*saveCmd) Usage() string {
	return `fin save -a <amount> -s <source> [-m <memo>]

  Records savings. The amount is credited to the source.
`
}

func (c *saveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, source, err := c.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		tx, err := a.book.AddSavings(amount, source, c.memo)
		return record(ctx, a, tx, err)
	})
}

// --- Give and Receive Commands ---

type loanCmd struct {
	flowFlags
	person string
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	c.flowFlags.SetFlags(f)
	f.StringVar(&c.person, "p", "", "Person, by name or id")
}

func (c *loanCmd) run(ctx context.Context, add func(a *app, p fintrack.PersonID, amount fintrack.Money, source fintrack.MoneySource) (fintrack.Transaction, error)) subcommands.ExitStatus {
	amount, source, err := c.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		p, ok := a.book.FindPerson(c.person)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: %v: %q\n", fintrack.ErrUnknownPerson, c.person)
			return subcommands.ExitFailure
		}
		tx, err := add(a, p.ID, amount, source)
		return recordLoan(ctx, a, tx, err, p)
	})
}

func recordLoan(ctx context.Context, a *app, tx fintrack.Transaction, err error, p fintrack.Person) subcommands.ExitStatus {
	if status := record(ctx, a, tx, err); status != subcommands.ExitSuccess {
		return status
	}
	pb := a.book.PersonBalance(p.ID)
	switch {
	case pb.OwesOwner():
		fmt.Fprintf(stdout, "%s owes you %s\n", p.Name, pb.Balance)
	case pb.Settled():
		fmt.Fprintf(stdout, "%s is settled\n", p.Name)
	default:
		fmt.Fprintf(stdout, "You owe %s %s\n", p.Name, pb.Balance.Neg())
	}
	return subcommands.ExitSuccess
}

type giveCmd struct{ loanCmd }

func (*giveCmd) Name() string     { return "give" }
func (*giveCmd) Synopsis() string { return "record money lent to a person" }
func (*giveCmd) Usage() string {
	return `fin give -p <person> -a <amount> -s <source> [-m <memo>]

  Records money given to a known person. The amount is debited from the source.
`
}

func (c *giveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(a *app, p fintrack.PersonID, amount fintrack.Money, source fintrack.MoneySource) (fintrack.Transaction, error) {
		return a.book.GiveMoney(p, amount, source, c.memo)
	})
}

type receiveCmd struct{ loanCmd }

func (*receiveCmd) Name() string     { return "receive" }
func (*receiveCmd) Synopsis() string { return "record money paid back by a person" }
func (*receiveCmd) Usage() string {
	return `fin receive -p <person> -a <amount> -s <source> [-m <memo>]

  Records money received from a known person. The amount is credited to the source.
`
}

func (c *receiveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, func(a *app, p fintrack.PersonID, amount fintrack.Money, source fintrack.MoneySource) (fintrack.Transaction, error) {
		return a.book.ReceiveMoney(p, amount, source, c.memo)
	})
}

// --- Remove Command ---

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a transaction and reverse its effect" }
func (*rmCmd) Usage() string {
	return `fin rm <id>...

  Deletes transactions by id. Their effect on the source balance is reversed.
  Unknown ids are ignored.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	var ids []fintrack.TxID
	for _, arg := range f.Args() {
		id, err := fintrack.ParseTxID(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		ids = append(ids, id)
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		var events []notify.Event
		for _, id := range ids {
			tx, ok := a.book.DeleteTransaction(id)
			if !ok {
				fmt.Fprintf(stdout, "No transaction #%s\n", id)
				continue
			}
			events = append(events, notify.TxEvent(notify.OpDelete, tx, fintrack.Now()))
			fmt.Fprintf(stdout, "Deleted %s #%s: %s (%s)\n", strings.ToLower(tx.What().Label()), id, tx.Value(), tx.From().Label())
		}
		if len(events) == 0 {
			return subcommands.ExitSuccess
		}
		return a.commit(ctx, events...)
	})
}

// --- Adjust Command ---

type adjustCmd struct {
	source string
	target string
}

func (*adjustCmd) Name() string     { return "adjust" }
func (*adjustCmd) Synopsis() string { return "raise a source balance to a counted amount" }
func (*adjustCmd) Usage() string {
	return `fin adjust -s <source> -a <balance>

  Brings the balance of a source up to the given amount by recording savings
  of the difference. Balances cannot be lowered this way.
`
}

func (c *adjustCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "s", "", "Money source: mobile, cash, card or loan")
	f.StringVar(&c.target, "a", "", "The new balance")
}

func (c *adjustCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	source, err := fintrack.ParseSource(c.source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	target, err := fintrack.ParseMoney(c.target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		tx, err := a.book.AdjustBalance(source, target)
		if err == nil && tx == nil {
			fmt.Fprintf(stdout, "%s balance is already %s\n", source.Label(), target)
			return subcommands.ExitSuccess
		}
		return record(ctx, a, tx, err)
	})
}
