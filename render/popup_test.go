package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coinpass/be-content-platform/domain/page"
)

func TestShouldShowPopup(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		payload     page.PopupPayload
		hiddenUntil time.Time
		want        bool
	}{
		{
			name:    "disabled never shows",
			payload: page.PopupPayload{Enabled: false},
			want:    false,
		},
		{
			name:    "enabled with no schedule shows",
			payload: page.PopupPayload{Enabled: true},
			want:    true,
		},
		{
			name:        "hidden by a fresh dismissal",
			payload:     page.PopupPayload{Enabled: true},
			hiddenUntil: now.Add(2 * time.Hour),
			want:        false,
		},
		{
			name:        "dismissal expired",
			payload:     page.PopupPayload{Enabled: true},
			hiddenUntil: now.Add(-time.Minute),
			want:        true,
		},
		{
			name:    "before start date",
			payload: page.PopupPayload{Enabled: true, StartDate: "2025-07-01"},
			want:    false,
		},
		{
			name:    "after end date",
			payload: page.PopupPayload{Enabled: true, EndDate: "2025-06-14"},
			want:    false,
		},
		{
			name:    "on the end date itself",
			payload: page.PopupPayload{Enabled: true, EndDate: "2025-06-15"},
			want:    true,
		},
		{
			name: "inside RFC3339 window",
			payload: page.PopupPayload{
				Enabled:   true,
				StartDate: "2025-06-15T09:00:00Z",
				EndDate:   "2025-06-15T11:00:00Z",
			},
			want: true,
		},
		{
			name:    "garbage dates are ignored",
			payload: page.PopupPayload{Enabled: true, StartDate: "soon", EndDate: "later"},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldShowPopup(tt.payload, now, tt.hiddenUntil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPopupView(t *testing.T) {
	now := time.Now()

	t.Run("text popup resolves korean content", func(t *testing.T) {
		p := page.PopupPayload{
			Enabled: true,
			Type:    "text",
			Content: map[string]string{"ko": "공지"},
		}
		v := NewPopupView(p, now, time.Time{})
		assert.True(t, v.Show)
		assert.Equal(t, "공지", string(v.Text))
	})

	t.Run("image popup carries the url", func(t *testing.T) {
		p := page.PopupPayload{Enabled: true, Type: "image", ImageURL: "https://cdn.example.com/p.png"}
		v := NewPopupView(p, now, time.Time{})
		assert.True(t, v.Show)
		assert.Equal(t, "https://cdn.example.com/p.png", v.ImageURL)
		assert.Empty(t, v.Text)
	})

	t.Run("gated popup renders nothing", func(t *testing.T) {
		v := NewPopupView(page.PopupPayload{Enabled: false}, now, time.Time{})
		assert.False(t, v.Show)
	})

	t.Run("image popup with invalid url degrades to text", func(t *testing.T) {
		p := page.PopupPayload{
			Enabled:  true,
			Type:     "image",
			ImageURL: "javascript:alert(1)",
			Content:  map[string]string{"ko": "공지"},
		}
		v := NewPopupView(p, now, time.Time{})
		assert.True(t, v.Show)
		assert.Equal(t, "text", v.Type)
		assert.Empty(t, v.ImageURL)
		assert.Equal(t, "공지", string(v.Text))
	})

	t.Run("unknown type falls back to text", func(t *testing.T) {
		p := page.PopupPayload{Enabled: true, Type: "", Content: map[string]string{"ko": "x"}}
		v := NewPopupView(p, now, time.Time{})
		assert.Equal(t, "text", v.Type)
	})
}

func TestHideUntil(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(24*time.Hour), HideUntil(now))
}
