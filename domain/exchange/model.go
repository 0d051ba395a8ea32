package exchange

import (
	"time"

	"github.com/coinpass/be-content-platform/pkg/sanitize"
)

// Exchange represents a partner card in the exchange_exchanges table.
// Negative ids are client placeholders that never reach the store.
type Exchange struct {
	ID              int64     `db:"id" json:"id"`
	NameKo          string    `db:"name_ko" json:"name_ko"`
	LogoImageURL    string    `db:"logoimageurl" json:"logoimageurl"`
	Benefit1TagKo   string    `db:"benefit1_tag_ko" json:"benefit1_tag_ko"`
	Benefit1ValueKo string    `db:"benefit1_value_ko" json:"benefit1_value_ko"`
	Benefit2TagKo   string    `db:"benefit2_tag_ko" json:"benefit2_tag_ko"`
	Benefit2ValueKo string    `db:"benefit2_value_ko" json:"benefit2_value_ko"`
	Benefit3TagKo   string    `db:"benefit3_tag_ko" json:"benefit3_tag_ko"`
	Benefit3ValueKo string    `db:"benefit3_value_ko" json:"benefit3_value_ko"`
	Benefit4TagKo   string    `db:"benefit4_tag_ko" json:"benefit4_tag_ko"`
	Benefit4ValueKo string    `db:"benefit4_value_ko" json:"benefit4_value_ko"`
	Link            string    `db:"link" json:"link"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Schema selects the validation path per field before any save.
var Schema = sanitize.FieldSchema{
	"name_ko":           sanitize.KindText,
	"logoimageurl":      sanitize.KindURL,
	"benefit1_tag_ko":   sanitize.KindText,
	"benefit1_value_ko": sanitize.KindText,
	"benefit2_tag_ko":   sanitize.KindText,
	"benefit2_value_ko": sanitize.KindText,
	"benefit3_tag_ko":   sanitize.KindText,
	"benefit3_value_ko": sanitize.KindText,
	"benefit4_tag_ko":   sanitize.KindText,
	"benefit4_value_ko": sanitize.KindText,
	"link":              sanitize.KindURL,
}

// IsPlaceholder reports whether the row only exists in the admin mirror.
func (e Exchange) IsPlaceholder() bool {
	return e.ID < 0
}

// Columns returns the writable column values for a save.
func (e Exchange) Columns() map[string]interface{} {
	return map[string]interface{}{
		"name_ko":           e.NameKo,
		"logoimageurl":      e.LogoImageURL,
		"benefit1_tag_ko":   e.Benefit1TagKo,
		"benefit1_value_ko": e.Benefit1ValueKo,
		"benefit2_tag_ko":   e.Benefit2TagKo,
		"benefit2_value_ko": e.Benefit2ValueKo,
		"benefit3_tag_ko":   e.Benefit3TagKo,
		"benefit3_value_ko": e.Benefit3ValueKo,
		"benefit4_tag_ko":   e.Benefit4TagKo,
		"benefit4_value_ko": e.Benefit4ValueKo,
		"link":              e.Link,
	}
}

// Benefit is one (tag, value) pair for rendering.
type Benefit struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Benefits returns the non-empty benefit pairs in order.
func (e Exchange) Benefits() []Benefit {
	pairs := []Benefit{
		{e.Benefit1TagKo, e.Benefit1ValueKo},
		{e.Benefit2TagKo, e.Benefit2ValueKo},
		{e.Benefit3TagKo, e.Benefit3ValueKo},
		{e.Benefit4TagKo, e.Benefit4ValueKo},
	}
	out := pairs[:0]
	for _, p := range pairs {
		if p.Tag != "" || p.Value != "" {
			out = append(out, p)
		}
	}
	return out
}
