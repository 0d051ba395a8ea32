package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/coinpass/be-content-platform/domain/page"
	"github.com/coinpass/be-content-platform/pkg/sanitize"
)

// HideDuration is how long a dismissed popup stays hidden for a visitor.
const HideDuration = 24 * time.Hour

// PopupView is the decoded, display-ready popup.
type PopupView struct {
	Show     bool
	Type     string // "text" or "image"
	Text     template.HTML
	ImageURL string
}

// ShouldShowPopup is the pure display gate: the popup shows only when it is
// enabled, the schedule window (if any) contains now, and the visitor's
// hide-until mark (zero when never dismissed) has passed.
func ShouldShowPopup(p page.PopupPayload, now, hiddenUntil time.Time) bool {
	if !p.Enabled {
		return false
	}
	if !hiddenUntil.IsZero() && now.Before(hiddenUntil) {
		return false
	}
	if start, ok := parseScheduleTime(p.StartDate, false); ok && now.Before(start) {
		return false
	}
	if end, ok := parseScheduleTime(p.EndDate, true); ok && now.After(end) {
		return false
	}
	return true
}

// parseScheduleTime accepts an RFC 3339 timestamp or a bare date. A bare
// end date means "through the end of that day".
func parseScheduleTime(s string, endOfDay bool) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}

// NewPopupView builds the display view, resolving the text for image-less
// popups from the Korean content map. An image popup whose URL fails
// validation degrades to its text content instead of a broken image.
func NewPopupView(p page.PopupPayload, now, hiddenUntil time.Time) PopupView {
	if !ShouldShowPopup(p, now, hiddenUntil) {
		return PopupView{}
	}
	view := PopupView{Show: true}
	if p.Type == "image" && sanitize.ValidURL(p.ImageURL) {
		view.Type = "image"
		view.ImageURL = strings.TrimSpace(p.ImageURL)
		return view
	}
	view.Type = "text"
	view.Text = template.HTML(p.Content["ko"])
	return view
}

// HideUntil returns the moment a dismissal made now should expire.
func HideUntil(now time.Time) time.Time {
	return now.Add(HideDuration)
}
