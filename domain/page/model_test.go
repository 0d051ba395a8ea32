package page

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	for _, name := range []string{"hero", "aboutUs", "popup", "indexPopup", "support", "guide"} {
		assert.True(t, Allowed(name), name)
	}
	for _, name := range []string{"", "main", "admin", "Hero", "users"} {
		assert.False(t, Allowed(name), name)
	}
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "main", StorageKey("hero"))
	assert.Equal(t, "popup", StorageKey("popup"))
	assert.Equal(t, "aboutUs", StorageKey("aboutUs"))
}

func TestDecodePopup(t *testing.T) {
	row := PageContent{Content: json.RawMessage(`{
		"enabled": true,
		"type": "text",
		"content": {"ko": "공지"},
		"startDate": "2025-06-01"
	}`)}

	p, err := row.DecodePopup()
	require.NoError(t, err)
	assert.True(t, p.Enabled)
	assert.Equal(t, "text", p.Type)
	assert.Equal(t, "공지", p.Content["ko"])
	assert.Equal(t, "2025-06-01", p.StartDate)
}

func TestDecodeHero(t *testing.T) {
	row := PageContent{Content: json.RawMessage(`{"title":"a\nb","subtitle":"s"}`)}
	h, err := row.DecodeHero()
	require.NoError(t, err)
	assert.Equal(t, "a\nb", h.Title)
	assert.Equal(t, "s", h.Subtitle)
}
