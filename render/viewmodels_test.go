package render

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpass/be-content-platform/domain/article"
	"github.com/coinpass/be-content-platform/domain/banner"
	"github.com/coinpass/be-content-platform/domain/exchange"
	"github.com/coinpass/be-content-platform/domain/faq"
	"github.com/coinpass/be-content-platform/domain/page"
	"github.com/coinpass/be-content-platform/pkg/sanitize"
)

func TestNewExchangeCard(t *testing.T) {
	t.Run("logo url passes through", func(t *testing.T) {
		card := NewExchangeCard(exchange.Exchange{
			ID:           1,
			NameKo:       "Binance",
			LogoImageURL: "https://cdn.example.com/binance.png",
			Link:         "https://example.com/ref",
		})
		assert.Equal(t, "https://cdn.example.com/binance.png", card.LogoURL)
		assert.Equal(t, "https://example.com/ref", card.Link)
	})

	t.Run("missing logo falls back to initials", func(t *testing.T) {
		card := NewExchangeCard(exchange.Exchange{NameKo: "bitget"})
		assert.Empty(t, card.LogoURL)
		assert.Equal(t, "BIT", card.Initials)
	})

	t.Run("short names keep all letters", func(t *testing.T) {
		card := NewExchangeCard(exchange.Exchange{NameKo: "ok"})
		assert.Equal(t, "OK", card.Initials)
	})

	t.Run("empty link falls back to inert anchor", func(t *testing.T) {
		card := NewExchangeCard(exchange.Exchange{NameKo: "MEXC"})
		assert.Equal(t, "#", card.Link)
	})

	t.Run("only non-empty benefit pairs survive", func(t *testing.T) {
		card := NewExchangeCard(exchange.Exchange{
			NameKo:          "Flipster",
			Benefit1TagKo:   "수수료",
			Benefit1ValueKo: "50%",
		})
		require.Len(t, card.Benefits, 1)
		assert.Equal(t, "수수료", string(card.Benefits[0].Tag))
	})

	t.Run("invalid logo url falls back to initials", func(t *testing.T) {
		card := NewExchangeCard(exchange.Exchange{
			NameKo:       "bitget",
			LogoImageURL: "javascript:alert(1)",
		})
		assert.Empty(t, card.LogoURL)
		assert.Equal(t, "BIT", card.Initials)
	})

	t.Run("initials come from the unescaped name", func(t *testing.T) {
		saved, err := sanitize.Text("P&G", sanitize.DefaultMaxLen)
		require.NoError(t, err)

		card := NewExchangeCard(exchange.Exchange{NameKo: saved})
		assert.Equal(t, "P&G", card.Initials)
	})
}

func TestNewHeroView(t *testing.T) {
	v := NewHeroView(page.HeroPayload{Title: "first\n\n  second  \n", Subtitle: "sub"})
	assert.Equal(t, []template.HTML{"first", "second"}, v.Phrases)
	assert.Equal(t, "sub", string(v.Subtitle))
}

// The typing schedule carries plain text frames, so stored entities are
// decoded before the phrases reach the animator.
func TestTypingPhrasesDecodeStoredEntities(t *testing.T) {
	saved, err := sanitize.Text("P&G\nGo <fast>", sanitize.DefaultMaxLen)
	require.NoError(t, err)

	phrases := TypingPhrases(page.HeroPayload{Title: saved})
	assert.Equal(t, []string{"P&G", "Go <fast>"}, phrases)
}

func TestNewBannerView(t *testing.T) {
	assert.False(t, NewBannerView(banner.Banner{Enabled: false, Content: "x"}).Show)

	v := NewBannerView(banner.Banner{Enabled: true, ImageURL: "https://cdn.example.com/b.png"})
	assert.True(t, v.Show)
	assert.Equal(t, "https://cdn.example.com/b.png", v.ImageURL)

	v = NewBannerView(banner.Banner{Enabled: true, ImageURL: "javascript:alert(1)", Content: "강조"})
	assert.True(t, v.Show)
	assert.Empty(t, v.ImageURL)
	assert.Equal(t, "강조", string(v.Content))
}

// Markup typed into an admin field is escaped at save time and must come
// out of the renderer as literal text, not as elements.
func TestEscapedMarkupRendersAsLiteral(t *testing.T) {
	saved, err := sanitize.Text("<b>Q</b>", sanitize.DefaultMaxLen)
	require.NoError(t, err)

	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	items := NewFAQItems([]faq.FAQ{{ID: 1, QuestionKo: saved, AnswerKo: "answer"}})
	require.NoError(t, r.FAQList(&buf, items))

	out := buf.String()
	assert.Contains(t, out, "&lt;b&gt;Q&lt;/b&gt;")
	assert.NotContains(t, out, "<b>Q</b>")
}

// A name with an ampersand must survive save and render unchanged: escaped
// once when stored, emitted as-is by the renderer.
func TestEscapedFieldsRenderOnce(t *testing.T) {
	saved, err := sanitize.Text("P&G", sanitize.DefaultMaxLen)
	require.NoError(t, err)

	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	cards := []ExchangeCard{NewExchangeCard(exchange.Exchange{ID: 1, NameKo: saved})}
	require.NoError(t, r.ExchangeGrid(&buf, cards))

	out := buf.String()
	assert.Contains(t, out, `<h3 class="exchange-name">P&amp;G</h3>`)
	assert.NotContains(t, out, "&amp;amp;")
	assert.Contains(t, out, `exchange-logo-fallback">P&amp;G</span>`)
}

// A stored logo URL that fails validation renders the initials badge, not
// a broken img element.
func TestBrokenLogoRendersInitialsBadge(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	cards := []ExchangeCard{NewExchangeCard(exchange.Exchange{
		ID:           1,
		NameKo:       "bitget",
		LogoImageURL: "javascript:alert(1)",
	})}
	require.NoError(t, r.ExchangeGrid(&buf, cards))

	out := buf.String()
	assert.Contains(t, out, `exchange-logo-fallback">BIT</span>`)
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "ZgotmplZ")
}

func TestRendererFragments(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	t.Run("exchange grid", func(t *testing.T) {
		var buf bytes.Buffer
		cards := []ExchangeCard{NewExchangeCard(exchange.Exchange{ID: 1, NameKo: "OKX"})}
		require.NoError(t, r.ExchangeGrid(&buf, cards))
		assert.Contains(t, buf.String(), "OKX")
		assert.Contains(t, buf.String(), `href="#"`)
	})

	t.Run("hidden banner renders nothing visible", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Banner(&buf, BannerView{}))
		assert.NotContains(t, buf.String(), "page-banner")
	})

	t.Run("gated popup renders nothing visible", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Popup(&buf, PopupView{}))
		assert.NotContains(t, buf.String(), "popup-overlay")
	})

	t.Run("hero embeds all phrases", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Hero(&buf, HeroView{Phrases: []template.HTML{"one", "two"}}))
		out := buf.String()
		assert.Contains(t, out, "one")
		assert.Contains(t, out, "two")
	})

	t.Run("articles render in given order", func(t *testing.T) {
		var buf bytes.Buffer
		cards := NewArticleCards([]article.PinnedArticle{
			{Position: 1, Title: "first"},
			{Position: 2, Title: "second"},
		})
		require.NoError(t, r.Articles(&buf, cards))
		out := buf.String()
		assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
	})
}
