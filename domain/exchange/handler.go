package exchange

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/store"
)

// Handler serves the public read-only exchange endpoints.
type Handler struct {
	Store *store.Adapter
}

func NewHandler(s *store.Adapter) *Handler {
	return &Handler{Store: s}
}

// ListHandler returns all exchange partner rows. A store failure degrades
// to an empty list so the public page renders an empty grid.
func (h *Handler) ListHandler(c echo.Context) error {
	rows := []Exchange{}
	h.Store.SelectOrEmpty(c.Request().Context(), &rows, store.TableExchanges, store.QueryOpts{
		OrderBy: "id",
	})
	return c.JSON(http.StatusOK, rows)
}
