package banner

import (
	"time"

	"github.com/coinpass/be-content-platform/pkg/sanitize"
)

// Banner is a per-page promotional strip in the banners table, keyed by
// page name.
type Banner struct {
	ID        int64     `db:"id" json:"id"`
	Page      string    `db:"page" json:"page"`
	Enabled   bool      `db:"enabled" json:"enabled"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

var Schema = sanitize.FieldSchema{
	"page":      sanitize.KindText,
	"image_url": sanitize.KindURL,
	"content":   sanitize.KindAdminText,
}

func (b Banner) Columns() map[string]interface{} {
	return map[string]interface{}{
		"page":      b.Page,
		"enabled":   b.Enabled,
		"image_url": b.ImageURL,
		"content":   b.Content,
	}
}
