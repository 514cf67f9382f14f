// Command dnssniff runs the passive DNS interpreter as a transparent
// forwarding proxy in front of a real upstream resolver: it relays every
// query and response it sees, feeding both directions through the
// interpreter so a real client/resolver exchange drives the analyzer
// exactly as the original wire traffic would.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnsglass/passivedns/internal/collector"
	"github.com/dnsglass/passivedns/internal/config"
	"github.com/dnsglass/passivedns/internal/events"
	"github.com/dnsglass/passivedns/internal/logging"
	"github.com/dnsglass/passivedns/internal/statusapi"
	"github.com/dnsglass/passivedns/internal/store"
)

func main() {
	var (
		listenAddr   = flag.String("listen", "127.0.0.1:5300", "Address to accept client traffic on")
		upstreamAddr = flag.String("upstream", "127.0.0.1:53", "Real resolver to relay traffic to")
		noTCP        = flag.Bool("no-tcp", false, "Disable the TCP relay")
		maxQueries   = flag.Uint64("max-queries", 0, "Override the QDCount sanity limit (0 keeps the default)")
		storePath    = flag.String("store", "", "Path to a SQLite file logging events (disabled if empty)")
		statusAddr   = flag.String("status-host", "127.0.0.1", "Status API bind host")
		statusPort   = flag.Int("status-port", 0, "Status API bind port (0 disables the status API)")
		jsonLogs     = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug        = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg := config.Config{MaxQueries: *maxQueries}
	cfg.StatusAPI = config.StatusAPIConfig{Enabled: *statusPort > 0, Host: *statusAddr, Port: *statusPort}
	cfg.Store = config.StoreConfig{Enabled: *storePath != "", Path: *storePath}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logLevel := "INFO"
	if *debug {
		logLevel = "DEBUG"
	}
	format := "text"
	if *jsonLogs {
		format = "json"
	}
	logger := logging.Configure(logging.Config{
		Level:            logLevel,
		Structured:       *jsonLogs,
		StructuredFormat: format,
		IncludePID:       true,
	})

	sinks := events.Fanout{}

	if cfg.Store.Enabled {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
		sinks = append(sinks, st)
		logger.Info("event store enabled", "path", cfg.Store.Path)
	}

	var statusSrv *statusapi.Server
	if cfg.StatusAPI.Enabled {
		statusSrv = statusapi.New(cfg.StatusAPI, logger)
		sinks = append(sinks, statusapi.NewEventSink(statusSrv.Recorder))
		go func() {
			if err := statusSrv.ListenAndServe(); err != nil {
				logger.Error("status api exited", "err", err)
			}
		}()
		logger.Info("status api listening", "addr", statusSrv.Addr())
	}

	c := &collector.Collector{
		Logger:   logger,
		Config:   cfg,
		Sink:     sinks,
		Upstream: *upstreamAddr,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("dnssniff starting",
		"listen", *listenAddr,
		"upstream", *upstreamAddr,
		"tcp", !*noTCP,
	)

	errCh := make(chan error, 2)
	go func() { errCh <- c.RunUDP(ctx, *listenAddr) }()
	if !*noTCP {
		go func() { errCh <- c.RunTCP(ctx, *listenAddr) }()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "collector exited with error: %v\n", err)
		}
	}

	c.Wait()
	if statusSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = statusSrv.Shutdown(shutdownCtx)
	}
}
