package cmd

import (
	"flag"
	"slices"
	"testing"

	"github.com/google/subcommands"
)

func TestCompletion(t *testing.T) {
	cdr := subcommands.NewCommander(flag.NewFlagSet("fin", flag.ContinueOnError), "fin")
	Register(cdr)
	c := Completion(cdr)

	tests := []struct {
		command, flag string
		want          string
	}{
		{"expense", "c", "food"},
		{"expense", "s", "mobile"},
		{"history", "t", "moneyReceived"},
		{"monthly", "s", "loan"},
	}
	for _, tt := range tests {
		sub, ok := c.Sub[tt.command]
		if !ok {
			t.Errorf("Completion() has no %q command", tt.command)
			continue
		}
		p, ok := sub.Flags[tt.flag]
		if !ok {
			t.Errorf("Completion() of %q has no -%s flag", tt.command, tt.flag)
			continue
		}
		if got := p.Predict(""); !slices.Contains(got, tt.want) {
			t.Errorf("%s -%s predicts %v, want %q among them", tt.command, tt.flag, got, tt.want)
		}
	}

	if got := c.Sub["topic"].Args.Predict(""); !slices.Contains(got, "dates") {
		t.Errorf("topic predicts %v, want dates among them", got)
	}
}
