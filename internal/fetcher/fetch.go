package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/voyagen/iptvindex/internal/models"
)

// Load parses the playlist at location, which is either a local path or an
// http(s) URL.
func Load(ctx context.Context, location string, userAgent string, timeout time.Duration) ([]models.Channel, error) {
	if isRemote(location) {
		return FetchM3U(ctx, location, userAgent, timeout)
	}
	return ParseFile(location)
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// FetchM3U fetches the M3U playlist from url and parses it.
// userAgent is optional.
func FetchM3U(ctx context.Context, url string, userAgent string, timeout time.Duration) ([]models.Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("NewRequest: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return ParseM3U(resp.Body)
}
