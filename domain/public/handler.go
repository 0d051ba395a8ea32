// Package public serves the rendered HTML fragments for the visitor-facing
// pages. Reads degrade to empty sections, so the page always comes up even
// when the store is down.
package public

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/coinpass/be-content-platform/domain/article"
	"github.com/coinpass/be-content-platform/domain/banner"
	"github.com/coinpass/be-content-platform/domain/exchange"
	"github.com/coinpass/be-content-platform/domain/faq"
	"github.com/coinpass/be-content-platform/domain/page"
	"github.com/coinpass/be-content-platform/render"
	"github.com/coinpass/be-content-platform/store"
)

// popupHideCookie remembers a dismissal for a day.
const popupHideCookie = "popup_hidden_until"

// Handler assembles fragments from the store and the renderer.
type Handler struct {
	Store    *store.Adapter
	Renderer *render.Renderer
}

func NewHandler(s *store.Adapter, r *render.Renderer) *Handler {
	return &Handler{Store: s, Renderer: r}
}

// ExchangesHandler writes the partner card grid.
func (h *Handler) ExchangesHandler(c echo.Context) error {
	rows := []exchange.Exchange{}
	h.Store.SelectOrEmpty(c.Request().Context(), &rows, store.TableExchanges, store.QueryOpts{OrderBy: "id"})

	cards := make([]render.ExchangeCard, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, render.NewExchangeCard(r))
	}
	return h.fragment(c, func() error {
		return h.Renderer.ExchangeGrid(c.Response(), cards)
	})
}

// FAQsHandler writes the FAQ accordion.
func (h *Handler) FAQsHandler(c echo.Context) error {
	rows := []faq.FAQ{}
	h.Store.SelectOrEmpty(c.Request().Context(), &rows, store.TableFAQs, store.QueryOpts{OrderBy: "id"})
	return h.fragment(c, func() error {
		return h.Renderer.FAQList(c.Response(), render.NewFAQItems(rows))
	})
}

// HeroHandler writes the typing headline. A missing row degrades to an
// empty hero.
func (h *Handler) HeroHandler(c echo.Context) error {
	var row page.PageContent
	var payload page.HeroPayload
	err := h.Store.SelectOne(c.Request().Context(), &row, store.TablePageContents, store.QueryOpts{
		Filters: map[string]interface{}{"page_type": page.StorageKey("hero")},
	})
	if err == nil {
		payload, _ = row.DecodeHero()
	}
	return h.fragment(c, func() error {
		return h.Renderer.Hero(c.Response(), render.NewHeroView(payload))
	})
}

// TypingHandler returns the precomputed frame schedule for the typing
// headline as JSON. A missing hero row yields an empty schedule.
func (h *Handler) TypingHandler(c echo.Context) error {
	var row page.PageContent
	var payload page.HeroPayload
	err := h.Store.SelectOne(c.Request().Context(), &row, store.TablePageContents, store.QueryOpts{
		Filters: map[string]interface{}{"page_type": page.StorageKey("hero")},
	})
	if err == nil {
		payload, _ = row.DecodeHero()
	}
	steps := render.TypingSequence(render.TypingPhrases(payload))
	if steps == nil {
		steps = []render.TypingStep{}
	}
	return c.JSON(http.StatusOK, steps)
}

// ArticlesHandler writes the active pinned-article cards.
func (h *Handler) ArticlesHandler(c echo.Context) error {
	rows := []article.PinnedArticle{}
	h.Store.SelectOrEmpty(c.Request().Context(), &rows, store.TablePinnedArticles, store.QueryOpts{
		Filters: map[string]interface{}{"is_active": true},
		OrderBy: "position",
		Limit:   article.MaxPosition,
	})
	return h.fragment(c, func() error {
		return h.Renderer.Articles(c.Response(), render.NewArticleCards(rows))
	})
}

// BannerHandler writes the strip for one page. Missing or disabled rows
// render nothing, with a 200.
func (h *Handler) BannerHandler(c echo.Context) error {
	var row banner.Banner
	err := h.Store.SelectOne(c.Request().Context(), &row, store.TableBanners, store.QueryOpts{
		Filters: map[string]interface{}{"page": c.Param("page")},
	})
	view := render.BannerView{}
	if err == nil {
		view = render.NewBannerView(row)
	}
	return h.fragment(c, func() error {
		return h.Renderer.Banner(c.Response(), view)
	})
}

// PopupHandler writes the popup for one page, honoring the hide cookie.
// Any failure along the way renders no popup, never an error page.
func (h *Handler) PopupHandler(c echo.Context) error {
	name := c.Param("name")
	if name != "popup" && name != "indexPopup" {
		return h.fragment(c, func() error {
			return h.Renderer.Popup(c.Response(), render.PopupView{})
		})
	}

	var payload page.PopupPayload
	var row page.PageContent
	err := h.Store.SelectOne(c.Request().Context(), &row, store.TablePageContents, store.QueryOpts{
		Filters: map[string]interface{}{"page_type": page.StorageKey(name)},
	})
	if err == nil {
		payload, _ = row.DecodePopup()
	}

	view := render.NewPopupView(payload, time.Now(), hiddenUntil(c))
	return h.fragment(c, func() error {
		return h.Renderer.Popup(c.Response(), view)
	})
}

// IndexHandler assembles the whole landing page in one response. Sections
// load in parallel and a failed section renders empty, so the page always
// comes up.
func (h *Handler) IndexHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		exchanges []exchange.Exchange
		faqs      []faq.FAQ
		articles  []article.PinnedArticle
		hero      page.HeroPayload
		popup     page.PopupPayload
		strip     banner.Banner
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.Store.SelectOrEmpty(gctx, &exchanges, store.TableExchanges, store.QueryOpts{OrderBy: "id"})
		return nil
	})
	g.Go(func() error {
		h.Store.SelectOrEmpty(gctx, &faqs, store.TableFAQs, store.QueryOpts{OrderBy: "id"})
		return nil
	})
	g.Go(func() error {
		h.Store.SelectOrEmpty(gctx, &articles, store.TablePinnedArticles, store.QueryOpts{
			Filters: map[string]interface{}{"is_active": true},
			OrderBy: "position",
			Limit:   article.MaxPosition,
		})
		return nil
	})
	g.Go(func() error {
		var row page.PageContent
		if err := h.Store.SelectOne(gctx, &row, store.TablePageContents, store.QueryOpts{
			Filters: map[string]interface{}{"page_type": page.StorageKey("hero")},
		}); err == nil {
			hero, _ = row.DecodeHero()
		}
		return nil
	})
	g.Go(func() error {
		var row page.PageContent
		if err := h.Store.SelectOne(gctx, &row, store.TablePageContents, store.QueryOpts{
			Filters: map[string]interface{}{"page_type": page.StorageKey("indexPopup")},
		}); err == nil {
			popup, _ = row.DecodePopup()
		}
		return nil
	})
	g.Go(func() error {
		var row banner.Banner
		if err := h.Store.SelectOne(gctx, &row, store.TableBanners, store.QueryOpts{
			Filters: map[string]interface{}{"page": "index"},
		}); err == nil {
			strip = row
		}
		return nil
	})
	g.Wait()

	cards := make([]render.ExchangeCard, 0, len(exchanges))
	for _, r := range exchanges {
		cards = append(cards, render.NewExchangeCard(r))
	}

	return h.fragment(c, func() error {
		w := c.Response()
		if err := h.Renderer.Hero(w, render.NewHeroView(hero)); err != nil {
			return err
		}
		if err := h.Renderer.Banner(w, render.NewBannerView(strip)); err != nil {
			return err
		}
		if err := h.Renderer.ExchangeGrid(w, cards); err != nil {
			return err
		}
		if err := h.Renderer.Articles(w, render.NewArticleCards(articles)); err != nil {
			return err
		}
		if err := h.Renderer.FAQList(w, render.NewFAQItems(faqs)); err != nil {
			return err
		}
		return h.Renderer.Popup(w, render.NewPopupView(popup, time.Now(), hiddenUntil(c)))
	})
}

// DismissPopupHandler sets the 24 hour hide cookie.
func (h *Handler) DismissPopupHandler(c echo.Context) error {
	until := render.HideUntil(time.Now())
	c.SetCookie(&http.Cookie{
		Name:     popupHideCookie,
		Value:    until.UTC().Format(time.RFC3339),
		Expires:  until,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

// hiddenUntil reads the dismissal cookie, zero when absent or unparseable.
func hiddenUntil(c echo.Context) time.Time {
	cookie, err := c.Cookie(popupHideCookie)
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, cookie.Value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// fragment sets the content type and runs the template write.
func (h *Handler) fragment(c echo.Context, write func() error) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return write()
}
