package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/fintrack"
	"google.golang.org/genai"
)

func testBook(t *testing.T) *fintrack.Book {
	t.Helper()
	b := fintrack.NewBook(fintrack.NewState())
	p, err := b.AddPerson("Nadia")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddSavings(fintrack.M(500), fintrack.Card, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddExpense(fintrack.M(120), fintrack.Card, fintrack.Entertainment, "cinema"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.GiveMoney(p.ID, fintrack.M(80), fintrack.Card, ""); err != nil {
		t.Fatal(err)
	}
	return b
}

func call(t *testing.T, lib Library, name string, args map[string]any) map[string]any {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if resp.ID != "1" || resp.Name != name {
		t.Errorf("%s response is %s/%s, want 1/%s", name, resp.ID, resp.Name, name)
	}
	return resp.Response
}

func TestBookkeeper(t *testing.T) {
	b := testBook(t)
	lib := NewLibrary(bookkeeping(b))

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"summary", nil, "Entertainment"},
		{"history", map[string]any{"type": "expense"}, "cinema"},
		{"history", map[string]any{"limit": float64(1)}, "Nadia"},
		{"person_balance", map[string]any{"person": "nadia"}, "Nadia owes you " + fintrack.M(80).String()},
		{"forecast", map[string]any{"date": "2000-01-01"}, fintrack.M(300).String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := call(t, lib, tt.name, tt.args)
			out, _ := got["output"].(string)
			if !strings.Contains(out, tt.want) {
				t.Errorf("%s(%v) = %v, want output containing %q", tt.name, tt.args, got, tt.want)
			}
		})
	}
}

func TestBookkeeper_Errors(t *testing.T) {
	lib := NewLibrary(bookkeeping(testBook(t)))

	tests := []struct {
		name string
		args map[string]any
	}{
		{"person_balance", map[string]any{"person": "nobody"}},
		{"forecast", map[string]any{"date": "someday"}},
		{"forecast", map[string]any{"date": 42}},
		{"history", map[string]any{"type": "transfer"}},
		{"unknown", nil},
	}
	for _, tt := range tests {
		got := call(t, lib, tt.name, tt.args)
		if _, ok := got["error"].(string); !ok {
			t.Errorf("%s(%v) = %v, want an error", tt.name, tt.args, got)
		}
	}
}

func TestParseDate_Default(t *testing.T) {
	got, err := parseDate(map[string]any{})
	if err != nil {
		t.Fatalf("parseDate() error = %v", err)
	}
	if got != fintrack.Today() {
		t.Errorf("parseDate() = %v, want today", got)
	}
}

func TestFacilitator_DeclaresExperts(t *testing.T) {
	b := testBook(t)
	f := newFacilitator("model", NewBookkeeper("model", b))
	decls := f.Config.Tools[0].FunctionDeclarations
	if len(decls) != 1 || decls[0].Name != "Bookkeeper" {
		t.Fatalf("facilitator declares %v, want the Bookkeeper", decls)
	}
	if got := decls[0].Parameters.Required; len(got) != 1 || got[0] != "question" {
		t.Errorf("Bookkeeper parameters = %v, want question", got)
	}
}
