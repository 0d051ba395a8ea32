package faq

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/store"
)

// Handler serves the public read-only FAQ endpoints.
type Handler struct {
	Store *store.Adapter
}

func NewHandler(s *store.Adapter) *Handler {
	return &Handler{Store: s}
}

func (h *Handler) ListHandler(c echo.Context) error {
	rows := []FAQ{}
	h.Store.SelectOrEmpty(c.Request().Context(), &rows, store.TableFAQs, store.QueryOpts{
		OrderBy: "id",
	})
	return c.JSON(http.StatusOK, rows)
}
