package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/fintrack/internal/logger"
	"github.com/etnz/fintrack/internal/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve a read-only JSON API and metrics" }
func (*serveCmd) Usage() string {
	return `fin serve [-addr <host:port>]

  Serves the summary, the transactions, the people and the forecast as JSON,
  with Prometheus metrics on /metrics. POST /api/reload rereads the store.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to the configured server address.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		addr := c.addr
		if addr == "" {
			addr = a.cfg.Server.Addr
		}
		srv, err := server.New(ctx, a.gw.Load, logger.NewJSON(os.Stderr, a.cfg.Log.Level))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}

		httpServer := &http.Server{
			Addr:              addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errc := make(chan error, 1)
		go func() { errc <- httpServer.ListenAndServe() }()
		a.log.Info().Str("addr", addr).Msg("serving")
		fmt.Fprintf(stdout, "Serving on http://%s\n", addr)

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				a.log.Warn().Err(err).Msg("shutdown")
			}
		}
		return subcommands.ExitSuccess
	})
}
