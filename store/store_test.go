package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpass/be-content-platform/pkg/logger"
)

func TestBuildSelect(t *testing.T) {
	t.Parallel()

	t.Run("bare select", func(t *testing.T) {
		t.Parallel()
		query, args, err := buildSelect(TableExchanges, QueryOpts{})
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM `exchange_exchanges`", query)
		assert.Empty(t, args)
	})

	t.Run("filters sorted and parameterized", func(t *testing.T) {
		t.Parallel()
		query, args, err := buildSelect(TableBanners, QueryOpts{
			Filters: map[string]interface{}{"page": "compare", "enabled": true},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM `banners` WHERE `enabled` = ? AND `page` = ?", query)
		assert.Equal(t, []interface{}{true, "compare"}, args)
	})

	t.Run("order and limit", func(t *testing.T) {
		t.Parallel()
		query, _, err := buildSelect(TablePinnedArticles, QueryOpts{
			OrderBy: "position",
			Limit:   6,
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM `pinned_articles` ORDER BY `position` LIMIT 6", query)
	})

	t.Run("descending order", func(t *testing.T) {
		t.Parallel()
		query, _, err := buildSelect(TableFAQs, QueryOpts{OrderBy: "id", Desc: true})
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM `exchange_faqs` ORDER BY `id` DESC", query)
	})

	t.Run("unknown table rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := buildSelect("admin_users", QueryOpts{})
		assert.ErrorIs(t, err, ErrForbiddenTable)
	})

	t.Run("unknown filter column rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := buildSelect(TableExchanges, QueryOpts{
			Filters: map[string]interface{}{"name_ko; DROP TABLE users": "x"},
		})
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})

	t.Run("unknown order column rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := buildSelect(TableExchanges, QueryOpts{OrderBy: "evil"})
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})
}

func TestCheckColumns(t *testing.T) {
	t.Parallel()

	t.Run("valid columns sorted", func(t *testing.T) {
		t.Parallel()
		names, args, err := checkColumns(TableFAQs, map[string]interface{}{
			"question_ko": "Q",
			"answer_ko":   "A",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"answer_ko", "question_ko"}, names)
		assert.Equal(t, []interface{}{"A", "Q"}, args)
	})

	t.Run("forbidden table", func(t *testing.T) {
		t.Parallel()
		_, _, err := checkColumns("admin_users", map[string]interface{}{"email": "x"})
		assert.ErrorIs(t, err, ErrForbiddenTable)
	})

	t.Run("server-managed column rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := checkColumns(TableExchanges, map[string]interface{}{"id": int64(1)})
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})
}

// Mutations outside the allow-list must fail before any SQL runs; the nil
// DB would panic if a query were attempted.
func TestWritesFailBeforeNetwork(t *testing.T) {
	t.Parallel()

	a := New(nil, logger.Get())
	ctx := context.Background()

	_, err := a.Insert(ctx, "admin_users", map[string]interface{}{"email": "x"})
	assert.ErrorIs(t, err, ErrForbiddenTable)

	err = a.Update(ctx, "login_logs", 1, map[string]interface{}{"success": true})
	assert.ErrorIs(t, err, ErrForbiddenTable)

	err = a.Delete(ctx, "admin_users", 1)
	assert.ErrorIs(t, err, ErrForbiddenTable)

	err = a.UpsertByKey(ctx, "admin_users", "email", "x", nil)
	assert.ErrorIs(t, err, ErrForbiddenTable)
}

func TestUpsertKeyValidation(t *testing.T) {
	t.Parallel()

	a := New(nil, logger.Get())
	err := a.UpsertByKey(context.Background(), TablePageContents, "id", 1, map[string]interface{}{
		"content": "{}",
	})
	assert.ErrorIs(t, err, ErrBadUpsertKey)
}
