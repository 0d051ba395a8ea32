package admin

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpass/be-content-platform/domain/article"
	"github.com/coinpass/be-content-platform/domain/banner"
	"github.com/coinpass/be-content-platform/domain/exchange"
	"github.com/coinpass/be-content-platform/domain/faq"
	"github.com/coinpass/be-content-platform/pkg/logger"
	"github.com/coinpass/be-content-platform/store"
)

// fakeStore is an in-memory double for the storage adapter. It records
// every call so tests can assert on exactly which operations ran.
type fakeStore struct {
	mu    sync.Mutex
	calls []string

	exchanges []exchange.Exchange
	faqs      []faq.FAQ
	upserts   map[string][]map[string]interface{}

	nextID  int64
	failOn  string
	failErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		upserts: map[string][]map[string]interface{}{},
		nextID:  100,
	}
}

func (f *fakeStore) record(op, table string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op+":"+table)
	if f.failOn == op {
		return f.failErr
	}
	return nil
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeStore) Select(ctx context.Context, dest interface{}, table string, opts store.QueryOpts) error {
	if err := f.record("select", table); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	switch d := dest.(type) {
	case *[]exchange.Exchange:
		*d = append([]exchange.Exchange{}, f.exchanges...)
	case *[]faq.FAQ:
		*d = append([]faq.FAQ{}, f.faqs...)
	}
	return nil
}

func (f *fakeStore) Insert(ctx context.Context, table string, cols map[string]interface{}) (int64, error) {
	if err := f.record("insert", table); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	switch table {
	case store.TableExchanges:
		row := exchange.Exchange{ID: id}
		for name, v := range cols {
			if s, ok := v.(string); ok {
				setExchangeField(&row, name, s)
			}
		}
		f.exchanges = append(f.exchanges, row)
	case store.TableFAQs:
		row := faq.FAQ{ID: id}
		if q, ok := cols["question_ko"].(string); ok {
			row.QuestionKo = q
		}
		if a, ok := cols["answer_ko"].(string); ok {
			row.AnswerKo = a
		}
		f.faqs = append(f.faqs, row)
	}
	return id, nil
}

func (f *fakeStore) Update(ctx context.Context, table string, id int64, patch map[string]interface{}) error {
	return f.record("update", table)
}

func (f *fakeStore) Delete(ctx context.Context, table string, id int64) error {
	return f.record("delete", table)
}

func (f *fakeStore) UpsertByKey(ctx context.Context, table, keyCol string, keyVal interface{}, cols map[string]interface{}) error {
	if err := f.record("upsert", table); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts[table] = append(f.upserts[table], cols)
	return nil
}

func newTestController(fs *fakeStore) *Controller {
	ctl := NewController(fs, logger.Get())
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctl.now = func() time.Time { return fixed }
	return ctl
}

func TestPlaceholderRoundTrip(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	row := ctl.CreateExchangePlaceholder()
	assert.Negative(t, row.ID)
	assert.Equal(t, 0, fs.callCount(), "placeholder creation must not touch the store")

	row.NameKo = "Binance"
	row.Link = "https://example.com/ref"
	saved, err := ctl.SaveExchange(context.Background(), row)
	require.NoError(t, err)

	assert.Positive(t, saved.ID)
	assert.Equal(t, "Binance", saved.NameKo)
	assert.Equal(t, "https://example.com/ref", saved.Link)

	mirror := ctl.Exchanges()
	require.Len(t, mirror, 1)
	assert.Equal(t, saved.ID, mirror[0].ID)
	for _, r := range mirror {
		assert.GreaterOrEqual(t, r.ID, int64(0), "no placeholder survives a successful save")
	}
}

func TestPlaceholderIDsAreUnique(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	a := ctl.CreateExchangePlaceholder()
	b := ctl.CreateFAQPlaceholder()
	c := ctl.CreateExchangePlaceholder()

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, b.ID, c.ID)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestDeletePlaceholderSkipsStore(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	row := ctl.CreateFAQPlaceholder()
	require.NoError(t, ctl.DeleteFAQ(context.Background(), row.ID))

	assert.Empty(t, ctl.FAQs())
	assert.Equal(t, 0, fs.callCount(), "placeholder delete must not touch the store")
}

func TestDeleteUnknownPlaceholder(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	err := ctl.DeleteExchange(context.Background(), -42)
	assert.ErrorIs(t, err, ErrNotInMirror)
	assert.Equal(t, 0, fs.callCount())
}

func TestSaveRejectsBadInputBeforeStore(t *testing.T) {
	tests := []struct {
		name string
		row  exchange.Exchange
	}{
		{
			name: "oversized field",
			row:  exchange.Exchange{ID: -1, NameKo: strings.Repeat("a", 1001)},
		},
		{
			name: "javascript link",
			row:  exchange.Exchange{ID: -1, Link: "javascript:alert(1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeStore()
			ctl := newTestController(fs)

			_, err := ctl.SaveExchange(context.Background(), tt.row)
			require.Error(t, err)
			assert.Equal(t, 0, fs.callCount(), "validation failure must not reach the store")
		})
	}
}

func TestSaveEscapesBeforePersist(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	row := ctl.CreateFAQPlaceholder()
	row.QuestionKo = "<b>Q</b>"
	row.AnswerKo = "plain"

	saved, err := ctl.SaveFAQ(context.Background(), row)
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;Q&lt;/b&gt;", saved.QuestionKo)
}

func TestUpdateExistingRowStaysInPlace(t *testing.T) {
	fs := newFakeStore()
	fs.exchanges = []exchange.Exchange{{ID: 7, NameKo: "Bybit"}}
	ctl := newTestController(fs)
	ctl.LoadAll(context.Background())

	row := ctl.Exchanges()[0]
	row.NameKo = "OKX"
	saved, err := ctl.SaveExchange(context.Background(), row)
	require.NoError(t, err)

	assert.Equal(t, int64(7), saved.ID)
	assert.Equal(t, "OKX", ctl.Exchanges()[0].NameKo)
	assert.Contains(t, fs.calls, "update:"+store.TableExchanges)
	assert.NotContains(t, fs.calls, "insert:"+store.TableExchanges)
}

func TestLoadAllDegradesPerTable(t *testing.T) {
	fs := newFakeStore()
	fs.exchanges = []exchange.Exchange{{ID: 1, NameKo: "Bitget"}}
	fs.failOn = "select"
	fs.failErr = errors.New("connection refused")
	ctl := newTestController(fs)

	ctl.LoadAll(context.Background())

	states := ctl.States()
	for table, state := range states {
		assert.Equal(t, StateError, state, table)
	}
	assert.Empty(t, ctl.Exchanges())
}

func TestSaveSinglePageUpsertsByKey(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	payload := json.RawMessage(`{"title":"Hello","cta_link":"https://example.com"}`)
	require.NoError(t, ctl.SaveSinglePage(context.Background(), "hero", payload))
	require.NoError(t, ctl.SaveSinglePage(context.Background(), "hero", payload))

	ups := fs.upserts[store.TablePageContents]
	require.Len(t, ups, 2, "retries upsert, never insert")
	assert.Equal(t, "main", ups[0]["page_type"], "hero is stored under the legacy key")

	stored, ok := ctl.Page("main")
	require.True(t, ok)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(stored.Content, &decoded))
	assert.Equal(t, "Hello", decoded["title"])
}

func TestSaveSinglePageRejectsUnknownPage(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	err := ctl.SaveSinglePage(context.Background(), "secrets", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrForbiddenPage)
	assert.Equal(t, 0, fs.callCount())
}

func TestSaveSinglePageSanitizesPayload(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	payload := json.RawMessage(`{"content":{"ko":"<script>x</script>"},"imageUrl":"javascript:alert(1)"}`)
	err := ctl.SaveSinglePage(context.Background(), "popup", payload)
	require.Error(t, err)
	assert.Equal(t, 0, fs.callCount())
}

func TestSaveAllPinnedArticlesStopsAtFirstFailure(t *testing.T) {
	fs := newFakeStore()
	fs.failOn = "upsert"
	fs.failErr = errors.New("deadlock")
	ctl := newTestController(fs)

	rows := []article.PinnedArticle{
		{Position: 1, Title: "one"},
		{Position: 2, Title: "two"},
		{Position: 3, Title: "three"},
	}
	err := ctl.SaveAllPinnedArticles(context.Background(), rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pinned article 1")
	assert.Equal(t, 1, fs.callCount(), "stops after the first failed slot")
}

func TestSavePinnedArticleRejectsBadPosition(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	for _, pos := range []int{0, 7, -1} {
		err := ctl.SavePinnedArticle(context.Background(), article.PinnedArticle{Position: pos})
		require.Error(t, err, pos)
	}
	assert.Equal(t, 0, fs.callCount())
}

func TestSaveBannerUpsertsByPage(t *testing.T) {
	fs := newFakeStore()
	ctl := newTestController(fs)

	row := banner.Banner{Page: "index", Enabled: true, ImageURL: "https://cdn.example.com/b.png"}
	require.NoError(t, ctl.SaveBanner(context.Background(), row))

	got, ok := ctl.Banner("index")
	require.True(t, ok)
	assert.True(t, got.Enabled)
	require.Len(t, fs.upserts[store.TableBanners], 1)
}
