package service

import (
	"context"
	"fmt"
	"time"

	"github.com/voyagen/iptvindex/internal/fetcher"
	"github.com/voyagen/iptvindex/internal/metrics"
	"github.com/voyagen/iptvindex/internal/store"
)

// Ingest parses the playlist at location (a file path or http(s) URL) and
// publishes the full channel sequence to s, replacing any previous dataset.
// Nothing is published when loading or parsing fails.
func Ingest(ctx context.Context, s store.Store, location string, userAgent string, timeout time.Duration) (channelCount int, err error) {
	if location == "" {
		return 0, fmt.Errorf("playlist location is required")
	}

	channels, err := fetcher.Load(ctx, location, userAgent, timeout)
	if err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("ingest cancelled: %w", err)
	}

	if err := s.Publish(ctx, channels); err != nil {
		return 0, fmt.Errorf("publish: %w", err)
	}
	metrics.SetDatasetChannels(len(channels))
	return len(channels), nil
}
