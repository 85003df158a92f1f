package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/internal/notify"
	"github.com/google/subcommands"
)

// --- Export Command ---

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a JSON backup" }
func (*exportCmd) Usage() string {
	return `fin export [-o <file>]

  Writes the transactions, the balances and the people to a JSON backup file.
  Use "-o -" to write to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to expense-tracker-backup-<date>.json")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		name := c.output
		if name == "" {
			name = fintrack.BackupFilename(fintrack.Today())
		}
		return writeOutput(name, func(w io.Writer) error {
			return fintrack.ExportJSON(w, a.book.Backup(), fintrack.Now())
		})
	})
}

// --- Import Command ---

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "restore a JSON backup" }
func (*importCmd) Usage() string {
	return `fin import <file>

  Replaces the transactions, the balances and the people with the content of
  a backup file. Scheduled and monthly deposits are kept.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	backup, err := fintrack.ImportJSON(file)
	if err != nil {
		// Import errors are meant for the user as is.
		if errors.Is(err, fintrack.ErrParseJSON) || errors.Is(err, fintrack.ErrImportFormat) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		a.book.Import(backup)
		if status := a.commit(ctx, notify.Event{Op: notify.OpImport, At: fintrack.Now().UTC()}); status != subcommands.ExitSuccess {
			return status
		}
		fmt.Fprintf(stdout, "Imported %d transactions and %d people\n", backup.Transactions.Len(), len(backup.People))
		return subcommands.ExitSuccess
	})
}

// --- CSV Command ---

type csvCmd struct {
	output string
}

func (*csvCmd) Name() string     { return "csv" }
func (*csvCmd) Synopsis() string { return "export transactions as CSV" }
func (*csvCmd) Usage() string {
	return `fin csv [-o <file>]

  Writes every transaction, most recent first, as CSV.
  Use "-o -" to write to the standard output.
`
}

func (c *csvCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to expense-tracker-<date>.csv")
}

func (c *csvCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		name := c.output
		if name == "" {
			name = fintrack.CSVFilename(fintrack.Today())
		}
		return writeOutput(name, func(w io.Writer) error {
			return fintrack.ExportCSV(w, a.book.Ledger(), fintrack.USDate)
		})
	})
}

// writeOutput creates name, or uses stdout for "-", and writes with write.
func writeOutput(name string, write func(io.Writer) error) subcommands.ExitStatus {
	if name == "-" {
		if err := write(stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	file, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	if err := write(file); err != nil {
		file.Close()
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Wrote %s\n", name)
	return subcommands.ExitSuccess
}
