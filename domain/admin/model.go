package admin

import (
	"encoding/json"

	"github.com/coinpass/be-content-platform/domain/article"
	"github.com/coinpass/be-content-platform/domain/banner"
	"github.com/coinpass/be-content-platform/domain/exchange"
	"github.com/coinpass/be-content-platform/domain/faq"
)

// MirrorResponse is the full dashboard snapshot: every table's rows plus
// its load state.
type MirrorResponse struct {
	States    map[string]TableState   `json:"states"`
	Exchanges []exchange.Exchange     `json:"exchanges"`
	FAQs      []faq.FAQ               `json:"faqs"`
	Articles  []article.PinnedArticle `json:"pinned_articles"`
}

// SavePageRequest carries one page payload keyed by its public name.
type SavePageRequest struct {
	Page    string          `json:"page"`
	Content json.RawMessage `json:"content"`
}

// SaveArticlesRequest carries the full slot set for a save-all.
type SaveArticlesRequest struct {
	Articles []article.PinnedArticle `json:"articles"`
}

// SaveBannerRequest wraps a banner row.
type SaveBannerRequest struct {
	Banner banner.Banner `json:"banner"`
}

// PageResponse returns one stored page row by its public name.
type PageResponse struct {
	Page    string          `json:"page"`
	Content json.RawMessage `json:"content"`
}
