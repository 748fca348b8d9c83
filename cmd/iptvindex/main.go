// Command iptvindex serves the read-only channel query API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/voyagen/iptvindex/internal/config"
	"github.com/voyagen/iptvindex/internal/logging"
	"github.com/voyagen/iptvindex/internal/server"
	"github.com/voyagen/iptvindex/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Optional config file path (YAML); else use environment")
	port := flag.String("port", "", "Listen port (overrides SERVER_PORT)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "iptvindex: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled.
func run(ctx context.Context, configPath, port string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if port != "" {
		cfg.ServerPort = port
	}

	log := logging.New("query", cfg.LogLevel, cfg.LogFormat)

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer st.Close()

	if err := server.New(st, cfg, log).ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info("stopped")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
