package cmd

import (
	"flag"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the commands registered in c for shell completion.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		root.Sub[sub.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  argPredictor(sub.Name()),
		}
	})
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		flags[f.Name] = flagPredictor(f.Name)
	})
	return flags
}

func flagPredictor(name string) complete.Predictor {
	switch name {
	case "s":
		var names []string
		for _, s := range fintrack.Sources() {
			names = append(names, string(s))
		}
		return predict.Set(names)
	case "c":
		var names []string
		for _, c := range fintrack.Categories() {
			names = append(names, string(c))
		}
		return predict.Set(names)
	case "t":
		var names []string
		for _, t := range fintrack.TxTypes() {
			names = append(names, string(t))
		}
		return predict.Set(names)
	case "store":
		return predict.Set{"memory", "dir", "sqlite"}
	case "log-level":
		return predict.Set{"debug", "info", "warn", "error", "disabled"}
	case "config":
		return predict.Files("*.toml")
	case "o", "store-path":
		return predict.Files("*")
	case "undo", "disable":
		return predict.Nothing
	}
	return predict.Something
}

func argPredictor(command string) complete.Predictor {
	switch command {
	case "import":
		return predict.Files("*.json")
	case "topic":
		topics, err := docs.GetAllTopics()
		if err != nil {
			return predict.Nothing
		}
		return predict.Set(topics)
	}
	return predict.Nothing
}
