package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/voyagen/iptvindex/internal/models"
)

func names(channels []models.Channel) []string {
	out := []string{}
	for _, ch := range channels {
		out = append(out, ch.Name)
	}
	return out
}

func TestFilterChannels(t *testing.T) {
	channels := sampleChannels()
	tests := []struct {
		name   string
		filter ChannelFilter
		want   []string
	}{
		{"no filter", ChannelFilter{}, names(channels)},
		{"category case-insensitive", ChannelFilter{Category: "news"}, []string{"BBC World News", "CNN English", "TVE Spanish News"}},
		{"category exact not substring", ChannelFilter{Category: "New"}, []string{}},
		{"country", ChannelFilter{Country: "us"}, []string{"CNN English"}},
		{"language", ChannelFilter{Language: "SPANISH"}, []string{"TVE Spanish News"}},
		{"search substring", ChannelFilter{Search: "news"}, []string{"BBC World News", "TVE Spanish News"}},
		{"search non-ascii", ChannelFilter{Search: "télé"}, []string{"Télé Française French"}},
		{"combined", ChannelFilter{Category: "News", Search: "english"}, []string{"CNN English"}},
		{"no match", ChannelFilter{Country: "DE"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(FilterChannels(channels, tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterChannels_CommutativeAndIdempotent(t *testing.T) {
	channels := sampleChannels()
	byCategory := ChannelFilter{Category: "News"}
	byCountry := ChannelFilter{Country: "UK"}

	a := FilterChannels(FilterChannels(channels, byCategory), byCountry)
	b := FilterChannels(FilterChannels(channels, byCountry), byCategory)
	both := FilterChannels(channels, ChannelFilter{Category: "News", Country: "UK"})
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, both) {
		t.Errorf("filter order changed the result: %v / %v / %v", names(a), names(b), names(both))
	}

	once := FilterChannels(channels, byCategory)
	twice := FilterChannels(once, byCategory)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter is not idempotent: %v vs %v", names(once), names(twice))
	}
}

func TestFilterChannels_DoesNotAliasInput(t *testing.T) {
	channels := sampleChannels()
	out := FilterChannels(channels, ChannelFilter{})
	out[0].Name = "changed"
	if channels[0].Name == "changed" {
		t.Error("FilterChannels must not share the input backing array")
	}
}

func TestDistinctValues(t *testing.T) {
	channels := sampleChannels()
	channels = append(channels, models.Channel{Name: "Blank", URL: "u", Category: ""})

	if got, want := Categories(channels), []string{"Kids", "News", "Other"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
	if got, want := Countries(channels), []string{"ES", "FR", "UK", "US"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Countries = %v, want %v", got, want)
	}
	if got, want := Languages(channels), []string{"English", "French", "Spanish"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Languages = %v, want %v", got, want)
	}
	if got := Countries(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestChannelAt(t *testing.T) {
	channels := sampleChannels()

	ch, err := ChannelAt(channels, 3)
	if err != nil {
		t.Fatalf("ChannelAt(3): %v", err)
	}
	if ch != channels[3] {
		t.Errorf("got %+v", ch)
	}
	for _, id := range []int{-1, len(channels), 99999} {
		if _, err := ChannelAt(channels, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("ChannelAt(%d): expected ErrNotFound, got %v", id, err)
		}
	}
}
