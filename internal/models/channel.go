package models

// Language labels derived from channel names, in match priority order.
const (
	LanguageEnglish = "English"
	LanguageSpanish = "Spanish"
	LanguageFrench  = "French"
)

// DefaultCategory is used when an entry carries no group-title attribute.
const DefaultCategory = "Other"

// Languages lists the recognised language labels in match priority order.
var Languages = []string{LanguageEnglish, LanguageSpanish, LanguageFrench}

// Channel represents a single live stream entry from an M3U playlist.
// Empty strings mean unknown; every key is always serialised.
type Channel struct {
	Name     string `json:"name" db:"name"`
	URL      string `json:"url" db:"url"`
	TvgID    string `json:"tvg_id" db:"tvg_id"`
	TvgLogo  string `json:"tvg_logo" db:"tvg_logo"`
	Category string `json:"category" db:"category"`
	Country  string `json:"country" db:"country"`
	Language string `json:"language" db:"language"`
}
