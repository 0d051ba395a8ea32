package article

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/store"
)

// Handler serves the public read-only pinned-article endpoints.
type Handler struct {
	Store *store.Adapter
}

func NewHandler(s *store.Adapter) *Handler {
	return &Handler{Store: s}
}

// ListActiveHandler returns the active pinned slots ordered by position.
func (h *Handler) ListActiveHandler(c echo.Context) error {
	rows := []PinnedArticle{}
	h.Store.SelectOrEmpty(c.Request().Context(), &rows, store.TablePinnedArticles, store.QueryOpts{
		Filters: map[string]interface{}{"is_active": true},
		OrderBy: "position",
		Limit:   MaxPosition,
	})
	return c.JSON(http.StatusOK, rows)
}
