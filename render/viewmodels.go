// Package render turns stored content rows into view models and HTML
// fragments for the public pages. View-model construction is pure so it can
// be tested without a template engine.
package render

import (
	"html"
	"html/template"
	"strings"

	"github.com/coinpass/be-content-platform/domain/article"
	"github.com/coinpass/be-content-platform/domain/banner"
	"github.com/coinpass/be-content-platform/domain/exchange"
	"github.com/coinpass/be-content-platform/domain/faq"
	"github.com/coinpass/be-content-platform/domain/page"
	"github.com/coinpass/be-content-platform/pkg/sanitize"
)

// Text fields were entity-escaped when the row was saved, so view models
// carry them as template.HTML. Letting html/template escape them again
// would show the entities to the visitor ("P&G" becoming "P&amp;G").

// BenefitPair is one (tag, value) benefit line on a card.
type BenefitPair struct {
	Tag   template.HTML
	Value template.HTML
}

// ExchangeCard is one partner card on the exchange grid.
type ExchangeCard struct {
	ID       int64
	Name     template.HTML
	LogoURL  string
	Initials string // shown when LogoURL is absent or invalid
	Link     string
	Benefits []BenefitPair
}

// NewExchangeCard builds the card view for one row. The logo URL is
// validated again at render; when absent or invalid the card falls back to
// the first letters of the name, and the referral link falls back to "#"
// so the anchor stays inert.
func NewExchangeCard(row exchange.Exchange) ExchangeCard {
	logoURL := ""
	if sanitize.ValidURL(row.LogoImageURL) {
		logoURL = strings.TrimSpace(row.LogoImageURL)
	}
	benefits := make([]BenefitPair, 0, 4)
	for _, b := range row.Benefits() {
		benefits = append(benefits, BenefitPair{
			Tag:   template.HTML(b.Tag),
			Value: template.HTML(b.Value),
		})
	}
	return ExchangeCard{
		ID:       row.ID,
		Name:     template.HTML(row.NameKo),
		LogoURL:  logoURL,
		Initials: initials(html.UnescapeString(row.NameKo)),
		Link:     sanitize.SafeURL(row.Link),
		Benefits: benefits,
	}
}

// initials takes up to the first three letters, uppercased.
func initials(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// FAQItem is one expandable question on the FAQ section.
type FAQItem struct {
	ID       int64
	Question template.HTML
	Answer   template.HTML
}

// NewFAQItems maps stored rows to the accordion view.
func NewFAQItems(rows []faq.FAQ) []FAQItem {
	out := make([]FAQItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, FAQItem{
			ID:       r.ID,
			Question: template.HTML(r.QuestionKo),
			Answer:   template.HTML(r.AnswerKo),
		})
	}
	return out
}

// HeroView drives the typing headline. Phrases are the title split on
// newlines, blank lines dropped.
type HeroView struct {
	Phrases  []template.HTML
	Subtitle template.HTML
}

// NewHeroView builds the hero view from the stored payload.
func NewHeroView(p page.HeroPayload) HeroView {
	var phrases []template.HTML
	for _, line := range splitPhrases(p.Title) {
		phrases = append(phrases, template.HTML(line))
	}
	return HeroView{Phrases: phrases, Subtitle: template.HTML(p.Subtitle)}
}

// TypingPhrases returns the hero phrases as plain text for the typing
// schedule, where the client inserts each frame as a text node.
func TypingPhrases(p page.HeroPayload) []string {
	return splitPhrases(html.UnescapeString(p.Title))
}

func splitPhrases(title string) []string {
	var out []string
	for _, line := range strings.Split(title, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ArticleCard is one pinned-article slot on the landing page.
type ArticleCard struct {
	Position    int
	Badge       template.HTML
	Category    template.HTML
	Title       template.HTML
	Description template.HTML
	FooterText  template.HTML
	CTAText     template.HTML
	CTALink     string
}

// NewArticleCards maps active slots to cards in position order. Callers
// pass rows already filtered and ordered by the store.
func NewArticleCards(rows []article.PinnedArticle) []ArticleCard {
	out := make([]ArticleCard, 0, len(rows))
	for _, r := range rows {
		out = append(out, ArticleCard{
			Position:    r.Position,
			Badge:       template.HTML(r.Badge),
			Category:    template.HTML(r.Category),
			Title:       template.HTML(r.Title),
			Description: template.HTML(r.Description),
			FooterText:  template.HTML(r.FooterText),
			CTAText:     template.HTML(r.CTAText),
			CTALink:     sanitize.SafeURL(r.CTALink),
		})
	}
	return out
}

// BannerView is the per-page promotional strip. Hidden banners render
// nothing rather than an empty frame.
type BannerView struct {
	Show     bool
	ImageURL string
	Content  template.HTML
}

// NewBannerView builds the strip view for one page. An image URL that
// fails validation is dropped so the strip degrades to its text content.
func NewBannerView(row banner.Banner) BannerView {
	if !row.Enabled {
		return BannerView{}
	}
	imageURL := ""
	if sanitize.ValidURL(row.ImageURL) {
		imageURL = strings.TrimSpace(row.ImageURL)
	}
	return BannerView{Show: true, ImageURL: imageURL, Content: template.HTML(row.Content)}
}
