// Command parse-m3u parses an IPTV playlist once and publishes the channel
// dataset the query service reads.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/voyagen/iptvindex/internal/config"
	"github.com/voyagen/iptvindex/internal/logging"
	"github.com/voyagen/iptvindex/internal/service"
	"github.com/voyagen/iptvindex/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Optional config file path (YAML); else use environment")
	in := flag.String("in", "", "Playlist path or http(s) URL (default iptv.m3u)")
	out := flag.String("out", "", "Write the dataset to this JSON file (forces the file store)")
	storeKind := flag.String("store", "", "Dataset store: file, redis or postgres")
	flag.Parse()

	if err := run(*configPath, *in, *out, *storeKind); err != nil {
		fmt.Fprintf(os.Stderr, "parse-m3u: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, in, out, storeKind string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if in != "" {
		cfg.PlaylistPath = in
	}
	if storeKind != "" {
		cfg.Store = strings.ToLower(storeKind)
	}
	if out != "" {
		cfg.Store = config.StoreFile
		cfg.DataFile = out
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logging.New("parser", cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer st.Close()

	log.WithField("playlist", cfg.PlaylistPath).Debug("parsing playlist")
	n, err := service.Ingest(ctx, st, cfg.PlaylistPath, cfg.UserAgent, cfg.Timeout)
	if err != nil {
		return err
	}

	fmt.Printf("Parsed %d channels and saved to %s\n", n, st)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
