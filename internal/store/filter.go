package store

import (
	"slices"
	"strings"

	"github.com/voyagen/iptvindex/internal/models"
)

// FilterChannels returns the channels matching every non-empty field of f,
// in their original order. The input slice is not modified.
func FilterChannels(channels []models.Channel, f ChannelFilter) []models.Channel {
	search := strings.ToLower(f.Search)
	out := make([]models.Channel, 0, len(channels))
	for _, ch := range channels {
		if f.Category != "" && !strings.EqualFold(ch.Category, f.Category) {
			continue
		}
		if f.Country != "" && !strings.EqualFold(ch.Country, f.Country) {
			continue
		}
		if f.Language != "" && !strings.EqualFold(ch.Language, f.Language) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(ch.Name), search) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// ChannelAt returns the channel at position id.
func ChannelAt(channels []models.Channel, id int) (models.Channel, error) {
	if id < 0 || id >= len(channels) {
		return models.Channel{}, ErrNotFound
	}
	return channels[id], nil
}

// Categories returns the sorted distinct non-empty categories.
func Categories(channels []models.Channel) []string {
	return distinct(channels, func(ch models.Channel) string { return ch.Category })
}

// Countries returns the sorted distinct non-empty country codes.
func Countries(channels []models.Channel) []string {
	return distinct(channels, func(ch models.Channel) string { return ch.Country })
}

// Languages returns the sorted distinct non-empty languages.
func Languages(channels []models.Channel) []string {
	return distinct(channels, func(ch models.Channel) string { return ch.Language })
}

func distinct(channels []models.Channel, field func(models.Channel) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, ch := range channels {
		v := field(ch)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
