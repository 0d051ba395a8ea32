// Package admin owns the edit pipeline behind the admin dashboard. A
// Controller keeps an in-memory mirror of every content table so the
// dashboard works against local state and only touches the store on save.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coinpass/be-content-platform/domain/article"
	"github.com/coinpass/be-content-platform/domain/banner"
	"github.com/coinpass/be-content-platform/domain/exchange"
	"github.com/coinpass/be-content-platform/domain/faq"
	"github.com/coinpass/be-content-platform/domain/page"
	"github.com/coinpass/be-content-platform/pkg/logger"
	"github.com/coinpass/be-content-platform/pkg/sanitize"
	"github.com/coinpass/be-content-platform/store"
)

// Store is the slice of the storage adapter the controller needs. Defined
// here so tests can swap in a fake.
type Store interface {
	Select(ctx context.Context, dest interface{}, table string, opts store.QueryOpts) error
	Insert(ctx context.Context, table string, cols map[string]interface{}) (int64, error)
	Update(ctx context.Context, table string, id int64, patch map[string]interface{}) error
	Delete(ctx context.Context, table string, id int64) error
	UpsertByKey(ctx context.Context, table, keyCol string, keyVal interface{}, cols map[string]interface{}) error
}

// TableState tracks where a table is in its load/edit cycle.
type TableState string

const (
	StateIdle    TableState = "idle"
	StateLoading TableState = "loading"
	StateLoaded  TableState = "loaded"
	StateEditing TableState = "editing"
	StateSaving  TableState = "saving"
	StateError   TableState = "error"
)

var (
	// ErrForbiddenPage is returned for a page name outside the allow-list.
	ErrForbiddenPage = errors.New("page not allowed")
	// ErrNotInMirror is returned when a save or delete names an id the
	// mirror has never seen.
	ErrNotInMirror = errors.New("row not present in mirror")
)

// Controller mirrors the content tables in memory and pushes edits to the
// store. All exported methods are safe for concurrent use.
type Controller struct {
	store Store
	log   logger.Logger

	mu        sync.Mutex
	states    map[string]TableState
	exchanges []exchange.Exchange
	faqs      []faq.FAQ
	pages     map[string]page.PageContent
	articles  []article.PinnedArticle
	banners   map[string]banner.Banner

	nextPlaceholder int64
	now             func() time.Time
}

// NewController creates a controller with an empty mirror. Nothing is read
// until LoadAll.
func NewController(st Store, log logger.Logger) *Controller {
	return &Controller{
		store: st,
		log:   log.WithComponent("admin"),
		states: map[string]TableState{
			store.TableExchanges:      StateIdle,
			store.TableFAQs:           StateIdle,
			store.TablePageContents:   StateIdle,
			store.TablePinnedArticles: StateIdle,
			store.TableBanners:        StateIdle,
		},
		pages:   map[string]page.PageContent{},
		banners: map[string]banner.Banner{},
		now:     time.Now,
	}
}

// LoadAll refreshes the whole mirror. Tables load in parallel and a failed
// table degrades to empty with its state set to error, so one unreachable
// table does not block editing the others.
func (ctl *Controller) LoadAll(ctx context.Context) {
	ctl.mu.Lock()
	for t := range ctl.states {
		ctl.states[t] = StateLoading
	}
	ctl.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var rows []exchange.Exchange
		err := ctl.store.Select(gctx, &rows, store.TableExchanges, store.QueryOpts{OrderBy: "id"})
		ctl.finishLoad(store.TableExchanges, err, func() { ctl.exchanges = rows })
		return nil
	})
	g.Go(func() error {
		var rows []faq.FAQ
		err := ctl.store.Select(gctx, &rows, store.TableFAQs, store.QueryOpts{OrderBy: "id"})
		ctl.finishLoad(store.TableFAQs, err, func() { ctl.faqs = rows })
		return nil
	})
	g.Go(func() error {
		var rows []page.PageContent
		err := ctl.store.Select(gctx, &rows, store.TablePageContents, store.QueryOpts{OrderBy: "page_type"})
		ctl.finishLoad(store.TablePageContents, err, func() {
			ctl.pages = make(map[string]page.PageContent, len(rows))
			for _, r := range rows {
				ctl.pages[r.PageType] = r
			}
		})
		return nil
	})
	g.Go(func() error {
		var rows []article.PinnedArticle
		err := ctl.store.Select(gctx, &rows, store.TablePinnedArticles, store.QueryOpts{OrderBy: "position"})
		ctl.finishLoad(store.TablePinnedArticles, err, func() { ctl.articles = rows })
		return nil
	})
	g.Go(func() error {
		var rows []banner.Banner
		err := ctl.store.Select(gctx, &rows, store.TableBanners, store.QueryOpts{OrderBy: "page"})
		ctl.finishLoad(store.TableBanners, err, func() {
			ctl.banners = make(map[string]banner.Banner, len(rows))
			for _, r := range rows {
				ctl.banners[r.Page] = r
			}
		})
		return nil
	})

	g.Wait()
}

func (ctl *Controller) finishLoad(table string, err error, commit func()) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if err != nil {
		ctl.log.Error("Mirror load failed, table degrades to empty", err, logger.Table(table))
		ctl.states[table] = StateError
		return
	}
	commit()
	ctl.states[table] = StateLoaded
}

// States returns a snapshot of every table's state.
func (ctl *Controller) States() map[string]TableState {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	out := make(map[string]TableState, len(ctl.states))
	for t, s := range ctl.states {
		out[t] = s
	}
	return out
}

func (ctl *Controller) setState(table string, s TableState) {
	ctl.mu.Lock()
	ctl.states[table] = s
	ctl.mu.Unlock()
}

// placeholderID mints a unique negative id for a row that exists only in
// the mirror. Derived from the clock so ids do not collide across restarts
// of the dashboard session.
func (ctl *Controller) placeholderID() int64 {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	id := -ctl.now().UnixMilli()
	if id >= ctl.nextPlaceholder {
		id = ctl.nextPlaceholder - 1
	}
	ctl.nextPlaceholder = id
	return id
}

// Exchanges returns a copy of the mirrored exchange rows.
func (ctl *Controller) Exchanges() []exchange.Exchange {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	out := make([]exchange.Exchange, len(ctl.exchanges))
	copy(out, ctl.exchanges)
	return out
}

// FAQs returns a copy of the mirrored FAQ rows.
func (ctl *Controller) FAQs() []faq.FAQ {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	out := make([]faq.FAQ, len(ctl.faqs))
	copy(out, ctl.faqs)
	return out
}

// Articles returns a copy of the mirrored pinned-article rows.
func (ctl *Controller) Articles() []article.PinnedArticle {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	out := make([]article.PinnedArticle, len(ctl.articles))
	copy(out, ctl.articles)
	return out
}

// Page returns the mirrored content row for a storage key, if loaded.
func (ctl *Controller) Page(pageType string) (page.PageContent, bool) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	p, ok := ctl.pages[pageType]
	return p, ok
}

// Banner returns the mirrored banner for a page, if loaded.
func (ctl *Controller) Banner(pageName string) (banner.Banner, bool) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	b, ok := ctl.banners[pageName]
	return b, ok
}

// CreateExchangePlaceholder appends an empty exchange row to the mirror.
// Nothing is written to the store until the row is saved.
func (ctl *Controller) CreateExchangePlaceholder() exchange.Exchange {
	row := exchange.Exchange{ID: ctl.placeholderID()}
	ctl.mu.Lock()
	ctl.exchanges = append(ctl.exchanges, row)
	ctl.states[store.TableExchanges] = StateEditing
	ctl.mu.Unlock()
	return row
}

// CreateFAQPlaceholder appends an empty FAQ row to the mirror.
func (ctl *Controller) CreateFAQPlaceholder() faq.FAQ {
	row := faq.FAQ{ID: ctl.placeholderID()}
	ctl.mu.Lock()
	ctl.faqs = append(ctl.faqs, row)
	ctl.states[store.TableFAQs] = StateEditing
	ctl.mu.Unlock()
	return row
}

// SaveExchange sanitizes and persists one exchange row. A placeholder id
// becomes an insert followed by a reload of the table so the mirror picks
// up the server-assigned id; an existing id becomes an in-place update.
func (ctl *Controller) SaveExchange(ctx context.Context, row exchange.Exchange) (exchange.Exchange, error) {
	cols, err := sanitize.Row(row.Columns(), exchange.Schema)
	if err != nil {
		return exchange.Exchange{}, err
	}

	ctl.setState(store.TableExchanges, StateSaving)

	if row.IsPlaceholder() {
		id, err := ctl.store.Insert(ctx, store.TableExchanges, cols)
		if err != nil {
			ctl.setState(store.TableExchanges, StateError)
			return exchange.Exchange{}, fmt.Errorf("save exchange: %w", err)
		}
		ctl.reloadExchanges(ctx)
		saved := row
		saved.ID = id
		applySanitized(cols, func(name string, v string) { setExchangeField(&saved, name, v) })
		return saved, nil
	}

	if err := ctl.store.Update(ctx, store.TableExchanges, row.ID, cols); err != nil {
		ctl.setState(store.TableExchanges, StateError)
		return exchange.Exchange{}, fmt.Errorf("save exchange: %w", err)
	}

	saved := row
	applySanitized(cols, func(name string, v string) { setExchangeField(&saved, name, v) })

	ctl.mu.Lock()
	for i := range ctl.exchanges {
		if ctl.exchanges[i].ID == row.ID {
			ctl.exchanges[i] = saved
			break
		}
	}
	ctl.states[store.TableExchanges] = StateLoaded
	ctl.mu.Unlock()
	return saved, nil
}

// reloadExchanges refreshes the exchange mirror after an insert so the
// consumed placeholder is replaced by the stored row.
func (ctl *Controller) reloadExchanges(ctx context.Context) {
	var rows []exchange.Exchange
	if err := ctl.store.Select(ctx, &rows, store.TableExchanges, store.QueryOpts{OrderBy: "id"}); err != nil {
		ctl.log.Error("Reload after insert failed, mirror keeps stale rows", err, logger.Table(store.TableExchanges))
		ctl.setState(store.TableExchanges, StateError)
		return
	}
	ctl.mu.Lock()
	ctl.exchanges = rows
	ctl.states[store.TableExchanges] = StateLoaded
	ctl.mu.Unlock()
}

// SaveFAQ mirrors SaveExchange for the FAQ table.
func (ctl *Controller) SaveFAQ(ctx context.Context, row faq.FAQ) (faq.FAQ, error) {
	cols, err := sanitize.Row(row.Columns(), faq.Schema)
	if err != nil {
		return faq.FAQ{}, err
	}

	ctl.setState(store.TableFAQs, StateSaving)

	if row.IsPlaceholder() {
		id, err := ctl.store.Insert(ctx, store.TableFAQs, cols)
		if err != nil {
			ctl.setState(store.TableFAQs, StateError)
			return faq.FAQ{}, fmt.Errorf("save faq: %w", err)
		}
		var rows []faq.FAQ
		if err := ctl.store.Select(ctx, &rows, store.TableFAQs, store.QueryOpts{OrderBy: "id"}); err != nil {
			ctl.log.Error("Reload after insert failed, mirror keeps stale rows", err, logger.Table(store.TableFAQs))
			ctl.setState(store.TableFAQs, StateError)
		} else {
			ctl.mu.Lock()
			ctl.faqs = rows
			ctl.states[store.TableFAQs] = StateLoaded
			ctl.mu.Unlock()
		}
		saved := row
		saved.ID = id
		saved.QuestionKo = cols["question_ko"].(string)
		saved.AnswerKo = cols["answer_ko"].(string)
		return saved, nil
	}

	if err := ctl.store.Update(ctx, store.TableFAQs, row.ID, cols); err != nil {
		ctl.setState(store.TableFAQs, StateError)
		return faq.FAQ{}, fmt.Errorf("save faq: %w", err)
	}

	saved := row
	saved.QuestionKo = cols["question_ko"].(string)
	saved.AnswerKo = cols["answer_ko"].(string)

	ctl.mu.Lock()
	for i := range ctl.faqs {
		if ctl.faqs[i].ID == row.ID {
			ctl.faqs[i] = saved
			break
		}
	}
	ctl.states[store.TableFAQs] = StateLoaded
	ctl.mu.Unlock()
	return saved, nil
}

// DeleteExchange removes a row. Placeholder ids are dropped from the
// mirror without any store call.
func (ctl *Controller) DeleteExchange(ctx context.Context, id int64) error {
	if id < 0 {
		removed := false
		ctl.mu.Lock()
		for i := range ctl.exchanges {
			if ctl.exchanges[i].ID == id {
				ctl.exchanges = append(ctl.exchanges[:i], ctl.exchanges[i+1:]...)
				removed = true
				break
			}
		}
		ctl.mu.Unlock()
		if !removed {
			return ErrNotInMirror
		}
		return nil
	}

	if err := ctl.store.Delete(ctx, store.TableExchanges, id); err != nil {
		return fmt.Errorf("delete exchange: %w", err)
	}
	ctl.mu.Lock()
	for i := range ctl.exchanges {
		if ctl.exchanges[i].ID == id {
			ctl.exchanges = append(ctl.exchanges[:i], ctl.exchanges[i+1:]...)
			break
		}
	}
	ctl.mu.Unlock()
	return nil
}

// DeleteFAQ mirrors DeleteExchange for the FAQ table.
func (ctl *Controller) DeleteFAQ(ctx context.Context, id int64) error {
	if id < 0 {
		removed := false
		ctl.mu.Lock()
		for i := range ctl.faqs {
			if ctl.faqs[i].ID == id {
				ctl.faqs = append(ctl.faqs[:i], ctl.faqs[i+1:]...)
				removed = true
				break
			}
		}
		ctl.mu.Unlock()
		if !removed {
			return ErrNotInMirror
		}
		return nil
	}

	if err := ctl.store.Delete(ctx, store.TableFAQs, id); err != nil {
		return fmt.Errorf("delete faq: %w", err)
	}
	ctl.mu.Lock()
	for i := range ctl.faqs {
		if ctl.faqs[i].ID == id {
			ctl.faqs = append(ctl.faqs[:i], ctl.faqs[i+1:]...)
			break
		}
	}
	ctl.mu.Unlock()
	return nil
}

// SaveSinglePage sanitizes a page payload and upserts it keyed by
// page_type, so retries cannot create duplicate rows. The public page name
// is checked against the allow-list before anything else.
func (ctl *Controller) SaveSinglePage(ctx context.Context, pageName string, payload json.RawMessage) error {
	if !page.Allowed(pageName) {
		return ErrForbiddenPage
	}

	var decoded interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return fmt.Errorf("decode page payload: %w", err)
	}
	clean, err := sanitize.Payload(decoded)
	if err != nil {
		return err
	}
	content, err := json.Marshal(clean)
	if err != nil {
		return fmt.Errorf("encode page payload: %w", err)
	}

	key := page.StorageKey(pageName)
	ctl.setState(store.TablePageContents, StateSaving)
	err = ctl.store.UpsertByKey(ctx, store.TablePageContents, "page_type", key, map[string]interface{}{
		"page_type": key,
		"content":   string(content),
	})
	if err != nil {
		ctl.setState(store.TablePageContents, StateError)
		return fmt.Errorf("save page %s: %w", pageName, err)
	}

	ctl.mu.Lock()
	p := ctl.pages[key]
	p.PageType = key
	p.Content = content
	ctl.pages[key] = p
	ctl.states[store.TablePageContents] = StateLoaded
	ctl.mu.Unlock()
	return nil
}

// SavePinnedArticle sanitizes and upserts one slot keyed by position.
func (ctl *Controller) SavePinnedArticle(ctx context.Context, row article.PinnedArticle) error {
	if !article.ValidPosition(row.Position) {
		return fmt.Errorf("position %d out of range %d..%d", row.Position, article.MinPosition, article.MaxPosition)
	}
	cols, err := sanitize.Row(row.Columns(), article.Schema)
	if err != nil {
		return err
	}

	ctl.setState(store.TablePinnedArticles, StateSaving)
	if err := ctl.store.UpsertByKey(ctx, store.TablePinnedArticles, "position", row.Position, cols); err != nil {
		ctl.setState(store.TablePinnedArticles, StateError)
		return fmt.Errorf("save pinned article %d: %w", row.Position, err)
	}

	ctl.mu.Lock()
	replaced := false
	for i := range ctl.articles {
		if ctl.articles[i].Position == row.Position {
			ctl.articles[i] = row
			replaced = true
			break
		}
	}
	if !replaced {
		ctl.articles = append(ctl.articles, row)
	}
	ctl.states[store.TablePinnedArticles] = StateLoaded
	ctl.mu.Unlock()
	return nil
}

// SaveAllPinnedArticles saves the slots in order and stops at the first
// failure, reporting which position failed.
func (ctl *Controller) SaveAllPinnedArticles(ctx context.Context, rows []article.PinnedArticle) error {
	for _, row := range rows {
		if err := ctl.SavePinnedArticle(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// SaveBanner sanitizes and upserts the banner for one page.
func (ctl *Controller) SaveBanner(ctx context.Context, row banner.Banner) error {
	cols, err := sanitize.Row(row.Columns(), banner.Schema)
	if err != nil {
		return err
	}

	ctl.setState(store.TableBanners, StateSaving)
	if err := ctl.store.UpsertByKey(ctx, store.TableBanners, "page", row.Page, cols); err != nil {
		ctl.setState(store.TableBanners, StateError)
		return fmt.Errorf("save banner %s: %w", row.Page, err)
	}

	ctl.mu.Lock()
	if clean, ok := cols["page"].(string); ok {
		row.Page = clean
	}
	ctl.banners[row.Page] = row
	ctl.states[store.TableBanners] = StateLoaded
	ctl.mu.Unlock()
	return nil
}

// applySanitized walks the sanitized column map and hands each string value
// back to the entity setter.
func applySanitized(cols map[string]interface{}, set func(name string, v string)) {
	for name, v := range cols {
		if s, ok := v.(string); ok {
			set(name, s)
		}
	}
}

func setExchangeField(e *exchange.Exchange, name, v string) {
	switch name {
	case "name_ko":
		e.NameKo = v
	case "logoimageurl":
		e.LogoImageURL = v
	case "benefit1_tag_ko":
		e.Benefit1TagKo = v
	case "benefit1_value_ko":
		e.Benefit1ValueKo = v
	case "benefit2_tag_ko":
		e.Benefit2TagKo = v
	case "benefit2_value_ko":
		e.Benefit2ValueKo = v
	case "benefit3_tag_ko":
		e.Benefit3TagKo = v
	case "benefit3_value_ko":
		e.Benefit3ValueKo = v
	case "benefit4_tag_ko":
		e.Benefit4TagKo = v
	case "benefit4_value_ko":
		e.Benefit4ValueKo = v
	case "link":
		e.Link = v
	}
}
