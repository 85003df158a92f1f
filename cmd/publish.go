package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type reportTask struct {
	Report string
	Period fintrack.Range
	Name   string // file name, without extension
}

type publishCmd struct {
	outputDir      string
	frontMatterTpl string
	html           bool
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "write every report to a directory" }
func (*publishCmd) Usage() string {
	return `fin publish [-o <dir>] [-frontmatter <file>] [-html]

  Writes the summary, the people, the forecast for next month and one history
  per month since the first transaction, in a directory tree.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "reports", "Root directory for the generated reports")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "Path to a Go template file for the report front matter")
	f.BoolVar(&c.html, "html", false, "Write HTML instead of markdown")
}

// monthlyPeriods returns the months from the one of first to the one of last.
func monthlyPeriods(first, last fintrack.Date) []fintrack.Range {
	var ranges []fintrack.Range
	for from := fintrack.NewDate(first.Year(), first.Month(), 1); !from.After(last); from = from.AddMonth(1) {
		ranges = append(ranges, fintrack.Range{From: from, To: from.AddMonth(1).Add(-1)})
	}
	return ranges
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var frontMatterTpl *template.Template
	if c.frontMatterTpl != "" {
		var err error
		frontMatterTpl, err = template.ParseFiles(c.frontMatterTpl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse front matter template: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		today := fintrack.Today()
		tasks := []reportTask{
			{Report: "summary", Period: fintrack.Range{From: today, To: today}, Name: "summary"},
			{Report: "people", Period: fintrack.Range{From: today, To: today}, Name: "people"},
			{Report: "forecast", Period: fintrack.Range{From: today, To: today.AddMonth(1)}, Name: "forecast"},
		}
		for tx := range a.book.Ledger().Chronological() {
			for _, r := range monthlyPeriods(fintrack.DateOf(tx.When()), today) {
				tasks = append(tasks, reportTask{Report: "history", Period: r, Name: filepath.Join("history", r.From.Format("2006-01"))})
			}
			break
		}

		for _, task := range tasks {
			md := c.render(a.book, task)
			if frontMatterTpl != nil {
				var fm bytes.Buffer
				if err := frontMatterTpl.Execute(&fm, task); err != nil {
					fmt.Fprintf(os.Stderr, "failed to render front matter for %s: %v\n", task.Name, err)
					continue
				}
				md = fm.String() + "\n" + md
			}

			ext := ".md"
			if c.html {
				html, err := renderer.ToHTML(md)
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to convert %s: %v\n", task.Name, err)
					return subcommands.ExitFailure
				}
				md, ext = html, ".html"
			}

			fullPath := filepath.Join(c.outputDir, task.Name+ext)
			if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				fmt.Fprintf(os.Stderr, "failed to create output directory for file %s: %v\n", fullPath, err)
				return subcommands.ExitFailure
			}
			if err := os.WriteFile(fullPath, []byte(md), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write file %s: %v\n", fullPath, err)
				return subcommands.ExitFailure
			}
			a.log.Info().Str("report", task.Report).Str("file", fullPath).Msg("report generated")
		}
		fmt.Fprintf(stdout, "Published %d reports in %s\n", len(tasks), c.outputDir)
		return subcommands.ExitSuccess
	})
}

func (c *publishCmd) render(b *fintrack.Book, task reportTask) string {
	switch task.Report {
	case "summary":
		return renderer.RenderSummary(renderer.NewSummary(b.Aggregate()))
	case "people":
		var rows []*renderer.Person
		for _, p := range b.People() {
			rows = append(rows, &renderer.Person{Person: p, Balance: b.PersonBalance(p.ID)})
		}
		return renderer.PeopleMarkdown(rows)
	case "forecast":
		return renderer.RenderForecast(&renderer.Forecast{
			Forecast: b.Forecast(task.Period.To),
			Monthly:  b.Monthly(),
			Pending:  fintrack.Pending(b.Scheduled()),
		})
	}
	var txs []fintrack.Transaction
	for _, tx := range b.Ledger().Transactions(fintrack.InRange(task.Period)) {
		txs = append(txs, tx)
	}
	title := "History of " + strings.TrimSpace(task.Period.From.Format("January 2006"))
	return renderer.HistoryMarkdown(title, fintrack.NewLedger(txs...), b.People())
}
