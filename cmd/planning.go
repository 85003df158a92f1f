package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/internal/notify"
	"github.com/google/subcommands"
)

// --- Schedule Command ---

type scheduleCmd struct {
	flowFlags
	date string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "plan a one-off deposit" }
func (*scheduleCmd) Usage() string {
	return `fin schedule -d <date> -a <amount> -s <source> [-m <memo>]

  Plans a deposit on a date. Scheduled deposits only count in forecasts: no
  transaction is recorded. Use 'fin complete' once it happened.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	c.flowFlags.SetFlags(f)
	f.StringVar(&c.date, "d", "", "Scheduled date. See 'fin topic dates' for supported formats.")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, source, err := c.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.date == "" {
		fmt.Fprintln(os.Stderr, "Error: missing date (-d)")
		return subcommands.ExitUsageError
	}
	on, err := fintrack.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		d, err := a.book.ScheduleDeposit(amount, source, on, c.memo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if status := a.commit(ctx, notify.Event{Op: notify.OpSchedule, Amount: &d.Amount, Source: string(d.Source), At: fintrack.Now().UTC()}); status != subcommands.ExitSuccess {
			return status
		}
		fmt.Fprintf(stdout, "Scheduled %s to %s on %s\n", d.Amount, d.Source.Label(), d.ScheduledDate)
		return subcommands.ExitSuccess
	})
}

// --- Complete Command ---

type completeCmd struct {
	undo bool
}

func (*completeCmd) Name() string     { return "complete" }
func (*completeCmd) Synopsis() string { return "mark a scheduled deposit as done" }
func (*completeCmd) Usage() string {
	return `fin complete [-undo] <id>

  Marks a scheduled deposit as completed, so that forecasts ignore it. It does
  not record the deposit: use 'fin save' for that.
`
}

func (c *completeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.undo, "undo", false, "Mark the deposit as pending again")
}

func (c *completeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := fintrack.DepositID(f.Arg(0))
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		if err := a.book.SetDepositCompleted(id, !c.undo); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if status := a.commit(ctx, notify.Event{Op: notify.OpComplete, At: fintrack.Now().UTC()}); status != subcommands.ExitSuccess {
			return status
		}
		if c.undo {
			fmt.Fprintf(stdout, "Deposit %s is pending\n", id)
		} else {
			fmt.Fprintf(stdout, "Deposit %s is completed\n", id)
		}
		return subcommands.ExitSuccess
	})
}

// --- Monthly Command ---

type monthlyCmd struct {
	amount  string
	source  string
	day     int
	disable bool
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "configure the recurring monthly deposit" }
func (*monthlyCmd) Usage() string {
	return `fin monthly [-a <amount> -s <source> -day <1-28>] [-disable]

  Configures a deposit expected every month on a given day. It only counts in
  forecasts. Without flags, shows the current configuration.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Monthly amount")
	f.StringVar(&c.source, "s", "", "Money source: mobile, cash, card or loan")
	f.IntVar(&c.day, "day", 1, "Day of the month, between 1 and 28")
	f.BoolVar(&c.disable, "disable", false, "Disable the monthly deposit")
}

func (c *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		current := a.book.Monthly()
		if c.amount == "" && !c.disable {
			if current == nil || !current.Enabled {
				fmt.Fprintln(stdout, "No monthly deposit")
				return subcommands.ExitSuccess
			}
			fmt.Fprintf(stdout, "%s to %s on day %d of every month\n", current.Amount, current.Source.Label(), current.DayOfMonth)
			return subcommands.ExitSuccess
		}

		var cfg fintrack.MonthlyDepositConfig
		if c.disable {
			if current == nil {
				fmt.Fprintln(stdout, "No monthly deposit")
				return subcommands.ExitSuccess
			}
			cfg = *current
			cfg.Enabled = false
		} else {
			amount, err := fintrack.ParseMoney(c.amount)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitUsageError
			}
			cfg = fintrack.MonthlyDepositConfig{Enabled: true, Amount: amount, Source: fintrack.MoneySource(c.source), DayOfMonth: c.day}
		}
		if err := a.book.ConfigureMonthly(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if status := a.commit(ctx, notify.Event{Op: notify.OpMonthly, At: fintrack.Now().UTC()}); status != subcommands.ExitSuccess {
			return status
		}
		if cfg.Enabled {
			fmt.Fprintf(stdout, "Monthly deposit: %s to %s on day %d\n", cfg.Amount, cfg.Source.Label(), cfg.DayOfMonth)
		} else {
			fmt.Fprintln(stdout, "Monthly deposit disabled")
		}
		return subcommands.ExitSuccess
	})
}
