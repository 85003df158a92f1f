package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/fintrack"
	"github.com/rs/zerolog"
)

func testState(t *testing.T) (fintrack.State, fintrack.Person) {
	t.Helper()
	b := fintrack.NewBook(fintrack.NewState())
	p, err := b.AddPerson("Rahim")
	if err != nil {
		t.Fatal(err)
	}
	steps := []func() (fintrack.Transaction, error){
		func() (fintrack.Transaction, error) { return b.AddSavings(fintrack.M(1000), fintrack.Cash, "salary") },
		func() (fintrack.Transaction, error) {
			return b.AddExpense(fintrack.M(200), fintrack.Cash, fintrack.Food, "groceries")
		},
		func() (fintrack.Transaction, error) { return b.GiveMoney(p.ID, fintrack.M(100), fintrack.Cash, "") },
		func() (fintrack.Transaction, error) { return b.ReceiveMoney(p.ID, fintrack.M(40), fintrack.Cash, "") },
	}
	for _, step := range steps {
		if _, err := step(); err != nil {
			t.Fatal(err)
		}
	}
	return b.State(), p
}

func newTestServer(t *testing.T, load Loader) *httptest.Server {
	t.Helper()
	s, err := New(context.Background(), load, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestServer_Views(t *testing.T) {
	st, p := testState(t)
	ts := newTestServer(t, func(context.Context) (fintrack.State, error) { return st, nil })

	t.Run("health", func(t *testing.T) {
		var got map[string]string
		if code := get(t, ts.URL+"/health", &got); code != http.StatusOK || got["status"] != "ok" {
			t.Errorf("GET /health = %d %v, want 200 ok", code, got)
		}
	})

	t.Run("summary", func(t *testing.T) {
		var got struct {
			Savings       map[string]float64 `json:"savings"`
			TotalBalance  float64            `json:"totalBalance"`
			TotalExpenses float64            `json:"totalExpenses"`
			NetBalance    float64            `json:"netBalance"`
			Categories    []struct {
				Category string `json:"category"`
				Percent  string `json:"percent"`
			} `json:"categories"`
		}
		get(t, ts.URL+"/api/summary", &got)
		if got.Savings["cash"] != 740 {
			t.Errorf("savings.cash = %v, want 740", got.Savings["cash"])
		}
		if got.TotalBalance != 740 || got.TotalExpenses != 200 || got.NetBalance != 540 {
			t.Errorf("totals = %v/%v/%v, want 740/200/540", got.TotalBalance, got.TotalExpenses, got.NetBalance)
		}
		if len(got.Categories) != 4 || got.Categories[0].Category != "food" || got.Categories[0].Percent != "100" {
			t.Errorf("categories = %+v", got.Categories)
		}
	})

	t.Run("transactions", func(t *testing.T) {
		tests := []struct {
			query string
			want  int
		}{
			{"", 4},
			{"?type=expense", 1},
			{"?type=moneyGiven", 1},
		}
		for _, tt := range tests {
			var got []map[string]any
			get(t, ts.URL+"/api/transactions"+tt.query, &got)
			if len(got) != tt.want {
				t.Errorf("GET /api/transactions%s returned %d transactions, want %d", tt.query, len(got), tt.want)
			}
		}
		if code := get(t, ts.URL+"/api/transactions?type=bogus", nil); code != http.StatusBadRequest {
			t.Errorf("GET ?type=bogus = %d, want 400", code)
		}
	})

	t.Run("people", func(t *testing.T) {
		var got []struct {
			ID      string  `json:"id"`
			Name    string  `json:"name"`
			Balance float64 `json:"balance"`
		}
		get(t, ts.URL+"/api/people", &got)
		if len(got) != 1 || got[0].Name != "Rahim" || got[0].Balance != 60 {
			t.Errorf("GET /api/people = %+v, want Rahim owing 60", got)
		}
	})

	t.Run("person", func(t *testing.T) {
		var got struct {
			Given    float64 `json:"given"`
			Received float64 `json:"received"`
		}
		if code := get(t, ts.URL+"/api/people/"+string(p.ID), &got); code != http.StatusOK {
			t.Fatalf("GET person = %d, want 200", code)
		}
		if got.Given != 100 || got.Received != 40 {
			t.Errorf("person = %+v, want given 100 received 40", got)
		}
		if code := get(t, ts.URL+"/api/people/nobody", nil); code != http.StatusNotFound {
			t.Errorf("GET unknown person = %d, want 404", code)
		}
	})

	t.Run("forecast", func(t *testing.T) {
		var got struct {
			Date   string  `json:"date"`
			Amount float64 `json:"amount"`
		}
		get(t, ts.URL+"/api/forecast?date=2000-01-01", &got)
		if got.Date != "2000-01-01" || got.Amount != 740 {
			t.Errorf("past forecast = %+v, want the current 740", got)
		}
		if code := get(t, ts.URL+"/api/forecast?date=not-a-date", nil); code != http.StatusBadRequest {
			t.Errorf("GET bad date = %d, want 400", code)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/metrics")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		for _, want := range []string{`fintrack_balance{source="cash"} 740`, "fintrack_transactions 4", "fintrack_expenses_total 200"} {
			if !strings.Contains(string(body), want) {
				t.Errorf("GET /metrics misses %q", want)
			}
		}
	})
}

func TestServer_Reload(t *testing.T) {
	st, _ := testState(t)
	calls := 0
	ts := newTestServer(t, func(context.Context) (fintrack.State, error) {
		calls++
		if calls == 1 {
			return fintrack.NewState(), nil
		}
		return st, nil
	})

	var before []any
	get(t, ts.URL+"/api/transactions", &before)
	if len(before) != 0 {
		t.Fatalf("initial snapshot has %d transactions, want 0", len(before))
	}

	resp, err := http.Post(ts.URL+"/api/reload", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/reload = %d, want 200", resp.StatusCode)
	}

	var after []any
	get(t, ts.URL+"/api/transactions", &after)
	if len(after) != 4 {
		t.Errorf("reloaded snapshot has %d transactions, want 4", len(after))
	}
}

func TestNew_LoadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(context.Background(), func(context.Context) (fintrack.State, error) {
		return fintrack.State{}, boom
	}, zerolog.Nop())
	if !errors.Is(err, boom) {
		t.Errorf("New() error = %v, want %v", err, boom)
	}
}

func TestServer_Report(t *testing.T) {
	st, _ := testState(t)
	ts := newTestServer(t, func(context.Context) (fintrack.State, error) { return st, nil })

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("GET / Content-Type = %q, want text/html", ct)
	}
	for _, want := range []string{"<h1>Summary</h1>", "<h1>Forecast for", "<table>"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("GET / misses %q", want)
		}
	}
}
