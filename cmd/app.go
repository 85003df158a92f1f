// Package cmd implements the fin command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/internal/config"
	"github.com/etnz/fintrack/internal/logger"
	"github.com/etnz/fintrack/internal/notify"
	"github.com/etnz/fintrack/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&expenseCmd{}, "transactions")
	c.Register(&saveCmd{}, "transactions")
	c.Register(&giveCmd{}, "transactions")
	c.Register(&receiveCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")
	c.Register(&adjustCmd{}, "transactions")

	c.Register(&personCmd{}, "people")
	c.Register(&peopleCmd{}, "people")

	c.Register(&historyCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&forecastCmd{}, "reports")

	c.Register(&scheduleCmd{}, "planning")
	c.Register(&completeCmd{}, "planning")
	c.Register(&monthlyCmd{}, "planning")

	c.Register(&exportCmd{}, "backup")
	c.Register(&importCmd{}, "backup")
	c.Register(&csvCmd{}, "backup")
	c.Register(&publishCmd{}, "backup")

	c.Register(&serveCmd{}, "tools")
	c.Register(&AssistCmd{}, "tools")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configPath = flag.String("config", config.DefaultPath(), "Path to the TOML configuration file")
	storeKind  = flag.String("store", "", "Storage backend: memory, dir or sqlite. Overrides the configuration.")
	storePath  = flag.String("store-path", "", "Path of the storage backend. Overrides the configuration.")
	currency   = flag.String("currency", "", "ISO code of the display currency. Overrides the configuration.")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error). Overrides the configuration.")
)

// stdout receives reports, so that tests can capture them.
var stdout io.Writer = os.Stdout

// newPublisher connects the change notifications.
var newPublisher = notify.New

// loadConfig layers the command-line flags over the configuration.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, err
	}
	if *storeKind != "" {
		cfg.Store.Kind = *storeKind
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	return cfg, cfg.Validate()
}

// app is the state shared by commands during one invocation.
type app struct {
	cfg  config.Config
	log  zerolog.Logger
	kv   store.KV
	gw   *store.Gateway
	pub  notify.Publisher
	book *fintrack.Book
}

// openApp loads the configuration and the book.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := fintrack.SetDisplayCurrency(cfg.Currency); err != nil {
		return nil, err
	}
	log := logger.New(os.Stderr, cfg.Log.Level)

	kv, err := store.Open(cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	gw := store.NewGateway(kv, log)
	state, err := gw.Load(ctx)
	if err != nil {
		kv.Close()
		return nil, err
	}

	pub, err := newPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
	if err != nil {
		log.Warn().Err(err).Msg("notifications disabled")
		pub = notify.Nop{}
	}

	return &app{
		cfg:  cfg,
		log:  log,
		kv:   kv,
		gw:   gw,
		pub:  pub,
		book: fintrack.NewBook(state),
	}, nil
}

// Close releases the backend and the publisher.
func (a *app) Close() {
	if err := a.pub.Close(); err != nil {
		a.log.Debug().Err(err).Msg("closing publisher")
	}
	if err := a.kv.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing store")
	}
}

// commit saves the whole book, then publishes events. A failed save is
// reported but the in-memory book is kept as is.
func (a *app) commit(ctx context.Context, events ...notify.Event) subcommands.ExitStatus {
	if err := a.gw.Save(ctx, a.book.State()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving data: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, e := range events {
		if err := a.pub.Publish(ctx, e); err != nil {
			a.log.Warn().Err(err).Str("op", e.Op).Msg("could not publish change")
		}
	}
	return subcommands.ExitSuccess
}

// withApp opens the app, runs f and closes the app.
func withApp(ctx context.Context, f func(ctx context.Context, a *app) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	return f(logger.WithContext(ctx, a.log), a)
}
