// Package server exposes a read-only view of the tracker over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Loader returns a fresh state, typically store.Gateway.Load.
type Loader func(ctx context.Context) (fintrack.State, error)

// Server serves a snapshot of the state, refreshed on demand.
type Server struct {
	load    Loader
	log     zerolog.Logger
	metrics *metrics

	mu   sync.RWMutex
	book *fintrack.Book
}

// New loads the initial snapshot.
func New(ctx context.Context, load Loader, log zerolog.Logger) (*Server, error) {
	s := &Server{load: load, log: log, metrics: newMetrics()}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the snapshot with a freshly loaded state.
func (s *Server) Reload(ctx context.Context) error {
	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	b := fintrack.NewBook(st)
	s.mu.Lock()
	s.book = b
	s.mu.Unlock()
	s.metrics.observe(b)
	s.log.Info().Int("transactions", st.Ledger.Len()).Msg("snapshot loaded")
	return nil
}

func (s *Server) snapshot() *fintrack.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleReport)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/transactions", s.handleTransactions)
		r.Get("/people", s.handlePeople)
		r.Get("/people/{id}", s.handlePerson)
		r.Get("/forecast", s.handleForecast)
		r.Post("/reload", s.handleReload)
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

type categoryJSON struct {
	Category fintrack.Category `json:"category"`
	Amount   fintrack.Money    `json:"amount"`
	Count    int               `json:"count"`
	Percent  string            `json:"percent"`
}

type summaryJSON struct {
	Savings       fintrack.Registry       `json:"savings"`
	TotalBalance  fintrack.Money          `json:"totalBalance"`
	TotalExpenses fintrack.Money          `json:"totalExpenses"`
	NetBalance    fintrack.Money          `json:"netBalance"`
	Loan          fintrack.Money          `json:"loan"`
	Categories    []categoryJSON          `json:"categories"`
	Counts        map[fintrack.TxType]int `json:"counts"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	a := s.snapshot().Aggregate()
	out := summaryJSON{
		Savings:       a.Registry,
		TotalBalance:  a.TotalBalance,
		TotalExpenses: a.TotalExpenses,
		NetBalance:    a.NetBalance,
		Loan:          a.Loan,
		Counts:        a.Counts,
	}
	for _, c := range a.Breakdown {
		out.Categories = append(out.Categories, categoryJSON{c.Category, c.Amount, c.Count, c.Percent})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	l := s.snapshot().Ledger()
	if q := r.URL.Query().Get("type"); q != "" {
		typ, err := fintrack.ParseTxType(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var txs []fintrack.Transaction
		for _, tx := range l.Transactions(fintrack.OfType(typ)) {
			txs = append(txs, tx)
		}
		l = fintrack.NewLedger(txs...)
	}
	writeJSON(w, http.StatusOK, l)
}

type personJSON struct {
	fintrack.Person
	Given    fintrack.Money `json:"given"`
	Received fintrack.Money `json:"received"`
	Balance  fintrack.Money `json:"balance"`
}

func (s *Server) personJSON(b *fintrack.Book, p fintrack.Person) personJSON {
	pb := b.PersonBalance(p.ID)
	return personJSON{Person: p, Given: pb.Given, Received: pb.Received, Balance: pb.Balance}
}

func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	b := s.snapshot()
	out := []personJSON{}
	for _, p := range b.People() {
		out = append(out, s.personJSON(b, p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	b := s.snapshot()
	p, ok := b.FindPerson(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, fintrack.ErrUnknownPerson.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.personJSON(b, p))
}

type forecastJSON struct {
	Date           fintrack.Date  `json:"date"`
	Amount         fintrack.Money `json:"amount"`
	CurrentBalance fintrack.Money `json:"currentBalance"`
	Scheduled      fintrack.Money `json:"scheduled"`
	ScheduledCount int            `json:"scheduledCount"`
	Monthly        fintrack.Money `json:"monthly"`
	MonthlyCount   int            `json:"monthlyCount"`
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	date := fintrack.Today()
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := fintrack.ParseDate(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		date = d
	}
	f := s.snapshot().Forecast(date)
	writeJSON(w, http.StatusOK, forecastJSON{
		Date:           f.Date,
		Amount:         f.Amount,
		CurrentBalance: f.Breakdown.CurrentBalance,
		Scheduled:      f.Breakdown.Scheduled,
		ScheduledCount: f.Breakdown.ScheduledCount,
		Monthly:        f.Breakdown.Monthly,
		MonthlyCount:   f.Breakdown.MonthlyCount,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("reload failed")
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, "reload failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"transactions": s.snapshot().Ledger().Len()})
}

// handleReport renders the summary and the forecast for next month as HTML.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	b := s.snapshot()
	md := renderer.RenderSummary(renderer.NewSummary(b.Aggregate())) + "\n" +
		renderer.RenderForecast(&renderer.Forecast{
			Forecast: b.Forecast(fintrack.Today().AddMonth(1)),
			Monthly:  b.Monthly(),
			Pending:  fintrack.Pending(b.Scheduled()),
		})
	body, err := renderer.ToHTML(md)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>fintrack</title></head><body>\n%s</body></html>\n", body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
