package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fintrack/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// AssistCmd is the subcommand for the AI assistant.
type AssistCmd struct {
	model string
}

func (*AssistCmd) Name() string     { return "assist" }
func (*AssistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*AssistCmd) Usage() string {
	return `fin assist [-model <name>] [<question>]

  Starts an interactive session with the AI assistant. It reads the tracker
  but never changes it. Requires GEMINI_API_KEY (or GOOGLE_API_KEY).
`
}

func (c *AssistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "", "Gemini model. Defaults to the configured model.")
}

func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		model := c.model
		if model == "" {
			model = a.cfg.Assist.Model
		}

		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}

		bookkeeper := agent.NewBookkeeper(model, a.book)
		assistant := agent.New(stdout, os.Stdin, model, bookkeeper)
		if err := assistant.Run(ctx, client, prompts...); err != nil {
			fmt.Fprintln(os.Stderr, "Agent failed:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
