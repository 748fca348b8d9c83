package store

import (
	"context"
	"errors"

	"github.com/voyagen/iptvindex/internal/models"
)

var (
	// ErrNotFound is returned when a channel position is outside the dataset.
	ErrNotFound = errors.New("not found")
	// ErrNotPublished is returned by Load when no dataset has been published yet.
	ErrNotPublished = errors.New("channel dataset has not been published")
)

// Store holds the published channel dataset. The dataset is always written
// and read as a whole ordered sequence; a channel's id is its position.
type Store interface {
	// Load returns the full channel sequence in published order.
	Load(ctx context.Context) ([]models.Channel, error)
	// Publish atomically replaces the dataset with channels.
	Publish(ctx context.Context, channels []models.Channel) error
	// Close releases any connections held by the store.
	Close() error
	// String describes where the dataset lives, for operator messages.
	String() string
}

// ChannelFilter holds optional filters for listing channels.
// Empty fields are not applied.
type ChannelFilter struct {
	Category string // case-insensitive exact match
	Country  string // case-insensitive exact match
	Language string // case-insensitive exact match
	Search   string // case-insensitive substring match on channel name
}
