package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/internal/notify"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type personCmd struct{}

func (*personCmd) Name() string     { return "person" }
func (*personCmd) Synopsis() string { return "register a person you lend money to" }
func (*personCmd) Usage() string {
	return `fin person <name>

  Registers a new person. Give and receive commands refer to people by name or id.
`
}

func (*personCmd) SetFlags(*flag.FlagSet) {}

func (c *personCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		if _, ok := a.book.FindPerson(name); ok {
			fmt.Fprintf(os.Stderr, "Warning: a person named %q already exists\n", name)
		}
		p, err := a.book.AddPerson(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if status := a.commit(ctx, notify.Event{Op: notify.OpPerson, At: fintrack.Now().UTC()}); status != subcommands.ExitSuccess {
			return status
		}
		fmt.Fprintf(stdout, "Added %s\n", p.Name)
		return subcommands.ExitSuccess
	})
}

type peopleCmd struct{}

func (*peopleCmd) Name() string     { return "people" }
func (*peopleCmd) Synopsis() string { return "show what people owe you" }
func (*peopleCmd) Usage() string {
	return `fin people [<person>]

  Lists every person with the money given and received. With a name or an
  id, shows the balance with that person only.
`
}

func (*peopleCmd) SetFlags(*flag.FlagSet) {}

func (c *peopleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key := strings.Join(f.Args(), " ")
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		if key != "" {
			p, ok := a.book.FindPerson(key)
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: %v: %q\n", fintrack.ErrUnknownPerson, key)
				return subcommands.ExitFailure
			}
			printMarkdown(renderer.RenderPerson(&renderer.Person{Person: p, Balance: a.book.PersonBalance(p.ID)}))
			return subcommands.ExitSuccess
		}
		var rows []*renderer.Person
		for _, p := range a.book.People() {
			rows = append(rows, &renderer.Person{Person: p, Balance: a.book.PersonBalance(p.ID)})
		}
		printMarkdown(renderer.PeopleMarkdown(rows))
		return subcommands.ExitSuccess
	})
}
