package page

import (
	"encoding/json"
	"time"
)

// PageContent is a singleton-per-key record in the page_contents table:
// one JSON payload per page_type, at most one active row each.
type PageContent struct {
	ID        int64           `db:"id" json:"id"`
	PageType  string          `db:"page_type" json:"page_type"`
	Content   json.RawMessage `db:"content" json:"content"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Page names editable from the admin panel. This allow-list is distinct
// from the table allow-list; anything else is a ForbiddenPage.
var allowedPages = map[string]bool{
	"hero":       true,
	"aboutUs":    true,
	"popup":      true,
	"indexPopup": true,
	"support":    true,
	"guide":      true,
}

// Allowed reports whether name may be saved.
func Allowed(name string) bool {
	return allowedPages[name]
}

// StorageKey maps an admin-facing page name to its page_type column value.
// The hero section has always been stored under "main".
func StorageKey(name string) string {
	if name == "hero" {
		return "main"
	}
	return name
}

// PopupPayload is the decoded payload under page_type "popup" or
// "indexPopup".
type PopupPayload struct {
	Enabled   bool              `json:"enabled"`
	Type      string            `json:"type"` // "text" or "image"
	Content   map[string]string `json:"content,omitempty"`
	ImageURL  string            `json:"imageUrl,omitempty"`
	StartDate string            `json:"startDate,omitempty"` // ISO timestamp or empty
	EndDate   string            `json:"endDate,omitempty"`
}

// HeroPayload is the decoded payload under page_type "main".
type HeroPayload struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// DecodePopup parses the popup payload out of a page_contents row.
func (p PageContent) DecodePopup() (PopupPayload, error) {
	var out PopupPayload
	err := json.Unmarshal(p.Content, &out)
	return out, err
}

// DecodeHero parses the hero payload out of a page_contents row.
func (p PageContent) DecodeHero() (HeroPayload, error) {
	var out HeroPayload
	err := json.Unmarshal(p.Content, &out)
	return out, err
}
