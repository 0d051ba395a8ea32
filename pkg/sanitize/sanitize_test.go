package sanitize

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		maxLen  int
		want    string
		wantErr error
	}{
		{
			name:   "plain text passes through",
			input:  "Binance",
			maxLen: 100,
			want:   "Binance",
		},
		{
			name:   "surrounding whitespace trimmed",
			input:  "  fee discount  ",
			maxLen: 100,
			want:   "fee discount",
		},
		{
			name:   "script tags escaped",
			input:  `<script>alert("x")</script>`,
			maxLen: 100,
			want:   "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;",
		},
		{
			name:   "all five entities escaped",
			input:  `&<>"'`,
			maxLen: 100,
			want:   "&amp;&lt;&gt;&#34;&#39;",
		},
		{
			name:    "over limit rejected",
			input:   strings.Repeat("a", 101),
			maxLen:  100,
			wantErr: ErrInputTooLong,
		},
		{
			name:   "exactly at limit accepted",
			input:  strings.Repeat("a", 100),
			maxLen: 100,
			want:   strings.Repeat("a", 100),
		},
		{
			name:    "zero maxLen uses default",
			input:   strings.Repeat("b", DefaultMaxLen+1),
			maxLen:  0,
			wantErr: ErrInputTooLong,
		},
		{
			name:   "multibyte runes counted as characters",
			input:  strings.Repeat("가", 10),
			maxLen: 10,
			want:   strings.Repeat("가", 10),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Text(tc.input, tc.maxLen)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, "<")
			assert.NotContains(t, got, ">")
		})
	}
}

func TestValidURL(t *testing.T) {
	t.Parallel()

	valid := []string{
		"http://example.com",
		"https://example.com/path?q=1",
		"https://cdn.example.com/logo.png",
		"  https://example.com  ",
	}
	for _, u := range valid {
		assert.True(t, ValidURL(u), "expected valid: %q", u)
	}

	invalid := []string{
		"",
		"javascript:alert(1)",
		"ftp://example.com/file",
		"//evil.com",
		"example.com",
		"ht tp://broken",
		"https://",
		"data:text/html,<script>alert(1)</script>",
	}
	for _, u := range invalid {
		assert.False(t, ValidURL(u), "expected invalid: %q", u)
	}
}

func TestSafeURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://example.com", SafeURL("https://example.com"))
	assert.Equal(t, "#", SafeURL("javascript:alert(1)"))
	assert.Equal(t, "#", SafeURL(""))
}

func TestRichHTML(t *testing.T) {
	t.Parallel()

	got := RichHTML(`<p>hello <strong>world</strong></p><script>alert(1)</script>`)
	assert.Contains(t, got, "<strong>world</strong>")
	assert.NotContains(t, got, "<script>")

	got = RichHTML(`<img src="https://example.com/a.png" onerror="alert(1)">`)
	assert.NotContains(t, got, "onerror")
}

func TestRow(t *testing.T) {
	t.Parallel()

	schema := FieldSchema{
		"name_ko":      KindText,
		"logoimageurl": KindURL,
		"link":         KindURL,
	}

	t.Run("sanitizes per field kind", func(t *testing.T) {
		t.Parallel()
		out, err := Row(map[string]interface{}{
			"name_ko":      "<b>Binance</b>",
			"logoimageurl": "https://cdn.example.com/binance.png",
			"link":         "https://accounts.binance.com/register",
			"id":           int64(3),
		}, schema)
		require.NoError(t, err)
		assert.Equal(t, "&lt;b&gt;Binance&lt;/b&gt;", out["name_ko"])
		assert.Equal(t, "https://cdn.example.com/binance.png", out["logoimageurl"])
		assert.Equal(t, int64(3), out["id"])
	})

	t.Run("invalid url names the field", func(t *testing.T) {
		t.Parallel()
		_, err := Row(map[string]interface{}{
			"link": "javascript:alert(1)",
		}, schema)
		require.Error(t, err)
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "link", fe.Field)
		assert.ErrorIs(t, err, ErrInvalidURL)
	})

	t.Run("input map untouched", func(t *testing.T) {
		t.Parallel()
		in := map[string]interface{}{"name_ko": "<x>"}
		_, err := Row(in, schema)
		require.NoError(t, err)
		assert.Equal(t, "<x>", in["name_ko"])
	})
}

func TestPayload(t *testing.T) {
	t.Parallel()

	t.Run("nested strings escaped and url keys validated", func(t *testing.T) {
		t.Parallel()
		out, err := Payload(map[string]interface{}{
			"enabled": true,
			"type":    "image",
			"content": map[string]interface{}{"ko": "<b>안내</b>"},
			"imageUrl": "https://cdn.example.com/popup.png",
		})
		require.NoError(t, err)

		m := out.(map[string]interface{})
		assert.Equal(t, true, m["enabled"])
		assert.Equal(t, "https://cdn.example.com/popup.png", m["imageUrl"])
		content := m["content"].(map[string]interface{})
		assert.Equal(t, "&lt;b&gt;안내&lt;/b&gt;", content["ko"])
	})

	t.Run("invalid nested url rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Payload(map[string]interface{}{
			"imageUrl": "javascript:void(0)",
		})
		require.ErrorIs(t, err, ErrInvalidURL)
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "imageUrl", fe.Field)
	})

	t.Run("arrays walked", func(t *testing.T) {
		t.Parallel()
		out, err := Payload([]interface{}{"<i>a</i>", "b"})
		require.NoError(t, err)
		arr := out.([]interface{})
		assert.Equal(t, "&lt;i&gt;a&lt;/i&gt;", arr[0])
		assert.Equal(t, "b", arr[1])
	})
}
