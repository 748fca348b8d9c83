package fetcher

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/voyagen/iptvindex/internal/models"
)

// liveMarker opens a metadata line for a live (unknown duration) stream.
const liveMarker = "#EXTINF:-1"

var (
	reTvgID   = regexp.MustCompile(`tvg-id="([^"]*)"`)
	reTvgLogo = regexp.MustCompile(`tvg-logo="([^"]*)"`)
	reGroup   = regexp.MustCompile(`group-title="([^"]*)"`)
)

// ErrInvalidEncoding is returned when the playlist is not valid UTF-8.
var ErrInvalidEncoding = errors.New("playlist is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFile opens the playlist at path and parses it.
func ParseFile(path string) ([]models.Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}
	return ParseM3U(bytes.NewReader(data))
}

// ParseM3U reads an M3U playlist from r and returns one channel per live
// entry, in source order. An entry is a "#EXTINF:-1 ...,Name" line directly
// followed by a non-empty address line; anything else is skipped silently.
func ParseM3U(r io.Reader) ([]models.Channel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ReadAll: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	channels := []models.Channel{}
	var pending *entryHeader
	// The playlist is already in memory, so lines of any length are fine.
	for raw := range bytes.Lines(data) {
		raw = bytes.TrimSuffix(raw, []byte("\n"))
		raw = bytes.TrimSuffix(raw, []byte("\r"))
		line := strings.TrimLeft(string(raw), " \t")

		if strings.HasPrefix(line, "#EXTINF:") {
			// A header that is directly followed by another header has no
			// address line and is dropped.
			pending = parseHeader(line)
			continue
		}
		if pending == nil {
			continue
		}
		h := pending
		pending = nil

		url := strings.TrimSpace(line)
		if url == "" || h.name == "" {
			continue
		}
		channels = append(channels, h.channel(url))
	}
	return channels, nil
}

// entryHeader is the parsed metadata line of a live entry.
type entryHeader struct {
	attrs string
	name  string
}

// parseHeader returns nil unless line is a well-formed live entry header.
func parseHeader(line string) *entryHeader {
	if !strings.HasPrefix(line, liveMarker) {
		return nil
	}
	rest := line[len(liveMarker):]
	// "-10" or "-1.5" are other durations, not the live marker.
	if rest != "" && rest[0] != ',' && rest[0] != ' ' && rest[0] != '\t' {
		return nil
	}
	i := topLevelComma(rest)
	if i < 0 {
		return nil
	}
	return &entryHeader{
		attrs: rest[:i],
		name:  strings.TrimSpace(rest[i+1:]),
	}
}

// topLevelComma returns the index of the first comma outside a
// double-quoted attribute value, or -1.
func topLevelComma(s string) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				return i
			}
		}
	}
	return -1
}

func (h *entryHeader) channel(url string) models.Channel {
	tvgID := matchFirst(reTvgID, h.attrs)
	category, ok := lookup(reGroup, h.attrs)
	if !ok {
		category = models.DefaultCategory
	}
	return models.Channel{
		Name:     h.name,
		URL:      url,
		TvgID:    tvgID,
		TvgLogo:  matchFirst(reTvgLogo, h.attrs),
		Category: category,
		Country:  countryFromTvgID(tvgID),
		Language: languageFromName(h.name),
	}
}

func matchFirst(re *regexp.Regexp, s string) string {
	v, _ := lookup(re, s)
	return v
}

// lookup reports the first captured value and whether the key was present
// at all; a present key may still carry an empty value.
func lookup(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// countryFromTvgID takes the suffix after the last dot of a tvg-id
// (e.g. "BBCOne.uk@HD" -> "UK"). Only two-letter results are accepted.
func countryFromTvgID(tvgID string) string {
	i := strings.LastIndex(tvgID, ".")
	if i < 0 {
		return ""
	}
	code := tvgID[i+1:]
	if j := strings.Index(code, "@"); j >= 0 {
		code = code[:j]
	}
	code = strings.ToUpper(code)
	if len(code) != 2 || !isUpperASCII(code[0]) || !isUpperASCII(code[1]) {
		return ""
	}
	return code
}

func isUpperASCII(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// languageFromName is a literal substring test, not language detection.
func languageFromName(name string) string {
	for _, lang := range models.Languages {
		if strings.Contains(name, lang) {
			return lang
		}
	}
	return ""
}
