package agent

import (
	"context"
	"fmt"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/docs"
	"github.com/etnz/fintrack/renderer"
	"google.golang.org/genai"
)

// NewBookkeeper returns the expert reading b. b must not be modified while
// the expert is in use.
func NewBookkeeper(model string, b *fintrack.Book) *Expert {
	lib := bookkeeping(b)
	return &Expert{
		Name: "Bookkeeper",
		Description: `The Bookkeeper reads the user's expense tracker: balances of every money source,
		expenses by category, money lent to people and the forecast of future balances.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You keep the user's expense tracker. Money sits in four sources: mobile banking, cash, card and loan.
				Expenses are classified as food, entertainment, vehicle or extra.
				The user lends money to people and gets it back.

				Use the available tools to answer with exact figures:
				  - summary for balances and expenses by category
				  - history for individual transactions
				  - person_balance for what a person owes
				  - forecast for the balance expected on a date
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func bookkeeping(b *fintrack.Book) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "summary",
				Description: "Returns the balance of every money source, the total expenses and their breakdown by category.",
				Response:    markdownResponse("A markdown report with a balance table and a category table."),
			},
			Func: func(context.Context, map[string]any) (string, error) {
				return renderer.RenderSummary(renderer.NewSummary(b.Aggregate())), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "history",
				Description: "Lists transactions, most recent first.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"type": {
							Type:        genai.TypeString,
							Description: "Only transactions of this type.",
							Enum:        []string{"expense", "savings", "moneyGiven", "moneyReceived"},
						},
						"limit": {
							Type:        genai.TypeInteger,
							Description: "Maximum number of transactions. All by default.",
						},
					},
				},
				Response: markdownResponse("A markdown table of transactions."),
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				filter := fintrack.AcceptAll
				if s, ok := args["type"].(string); ok && s != "" {
					t, err := fintrack.ParseTxType(s)
					if err != nil {
						return "", err
					}
					filter = fintrack.OfType(t)
				}
				limit := 0
				// JSON numbers decode as float64.
				if n, ok := args["limit"].(float64); ok {
					limit = int(n)
				}
				var txs []fintrack.Transaction
				for _, tx := range b.Ledger().Transactions(filter) {
					if limit > 0 && len(txs) == limit {
						break
					}
					txs = append(txs, tx)
				}
				return renderer.HistoryMarkdown("History", fintrack.NewLedger(txs...), b.People()), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "person_balance",
				Description: "Returns the money given to and received from a person, and what remains owed.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"person": {
							Type:        genai.TypeString,
							Description: "The person's name, case insensitive, or id.",
						},
					},
					Required: []string{"person"},
				},
				Response: markdownResponse("A markdown report of the loans with the person."),
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				key, _ := args["person"].(string)
				p, ok := b.FindPerson(key)
				if !ok {
					var names []string
					for _, p := range b.People() {
						names = append(names, p.Name)
					}
					return "", fmt.Errorf("%w %q, known people are %q", fintrack.ErrUnknownPerson, key, names)
				}
				return renderer.RenderPerson(&renderer.Person{Person: p, Balance: b.PersonBalance(p.ID)}), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "forecast",
				Description: "Projects the total balance on a date from the scheduled and monthly deposits.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date": {
							Type: genai.TypeString,
							Description: `The date of the projection. Today is the default.
							Otherwise it uses a flexible date format based on YYYY-MM-DD:

							` + must(docs.GetTopic("dates")),
						},
					},
				},
				Response: markdownResponse("A markdown report of the projection and its components."),
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				on, err := parseDate(args)
				if err != nil {
					return "", err
				}
				return renderer.RenderForecast(&renderer.Forecast{
					Forecast: b.Forecast(on),
					Monthly:  b.Monthly(),
					Pending:  fintrack.Pending(b.Scheduled()),
				}), nil
			},
		},
	}
}

func markdownResponse(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func parseDate(args map[string]any) (fintrack.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return fintrack.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return fintrack.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}
	date, err := fintrack.ParseDate(sdate)
	if err != nil {
		return fintrack.Today(), fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the date format\n\n%s", sdate, must(docs.GetTopic("dates")))
	}
	return date, nil
}
