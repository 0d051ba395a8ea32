// Package sanitize validates and escapes every admin-authored string before
// it reaches the store or a rendered page.
package sanitize

import (
	"errors"
	"html"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Length limits. Callers override per field.
const (
	DefaultMaxLen = 1000
	AdminTextMax  = 2000
	RichTextMax   = 5000
)

var (
	// ErrInputTooLong is returned when input exceeds the allowed length.
	ErrInputTooLong = errors.New("input too long")
	// ErrInvalidURL is returned when a URL field fails scheme validation.
	ErrInvalidURL = errors.New("invalid url")
)

// Text trims the input, enforces maxLen and entity-encodes & < > " '.
// maxLen <= 0 falls back to DefaultMaxLen.
func Text(input string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	if utf8.RuneCountInString(input) > maxLen {
		return "", ErrInputTooLong
	}
	return html.EscapeString(strings.TrimSpace(input)), nil
}

// ValidURL reports whether raw parses and carries an http or https scheme.
// Scheme-relative URLs ("//evil.com") and everything else are rejected.
func ValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// URL validates raw as a navigable URL. Empty input stays empty so callers
// can fall back to their own placeholder.
func URL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !ValidURL(raw) {
		return "", ErrInvalidURL
	}
	return raw, nil
}

// SafeURL returns raw when it passes validation and "#" otherwise. Used on
// the render path where a broken link degrades instead of failing the page.
func SafeURL(raw string) string {
	if ValidURL(raw) {
		return strings.TrimSpace(raw)
	}
	return "#"
}

var richPolicy = richHTMLPolicy()

// RichHTML sanitizes rich text editor output. Formatting survives, scripts
// and event handlers do not.
func RichHTML(input string) string {
	return richPolicy.Sanitize(input)
}

// richHTMLPolicy builds the bluemonday policy for rich page content.
func richHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").OnElements("p", "span", "div", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li")

	p.AllowElements("ul", "ol", "li")
	p.AllowElements("strong", "em", "u", "s", "sub", "sup", "blockquote", "pre", "code")

	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")

	return p
}
