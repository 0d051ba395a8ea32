package article

import (
	"time"

	"github.com/coinpass/be-content-platform/pkg/sanitize"
)

// Position range for the pinned-article slots.
const (
	MinPosition = 1
	MaxPosition = 6
)

// PinnedArticle is one of the six fixed slots in the pinned_articles table,
// keyed by position. At most one row per position.
type PinnedArticle struct {
	ID          int64     `db:"id" json:"id"`
	Position    int       `db:"position" json:"position"`
	Badge       string    `db:"badge" json:"badge"`
	Category    string    `db:"category" json:"category"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	FooterText  string    `db:"footer_text" json:"footer_text"`
	CTAText     string    `db:"cta_text" json:"cta_text"`
	CTALink     string    `db:"cta_link" json:"cta_link"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

var Schema = sanitize.FieldSchema{
	"badge":       sanitize.KindText,
	"category":    sanitize.KindText,
	"title":       sanitize.KindText,
	"description": sanitize.KindAdminText,
	"footer_text": sanitize.KindText,
	"cta_text":    sanitize.KindText,
	"cta_link":    sanitize.KindURL,
}

// ValidPosition reports whether pos is one of the six slots.
func ValidPosition(pos int) bool {
	return pos >= MinPosition && pos <= MaxPosition
}

func (a PinnedArticle) Columns() map[string]interface{} {
	return map[string]interface{}{
		"position":    a.Position,
		"badge":       a.Badge,
		"category":    a.Category,
		"title":       a.Title,
		"description": a.Description,
		"footer_text": a.FooterText,
		"cta_text":    a.CTAText,
		"cta_link":    a.CTALink,
		"is_active":   a.IsActive,
	}
}
