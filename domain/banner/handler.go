package banner

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/store"
)

// Handler serves the public read-only banner endpoints.
type Handler struct {
	Store *store.Adapter
}

func NewHandler(s *store.Adapter) *Handler {
	return &Handler{Store: s}
}

// GetHandler returns the banner for one page name. A missing or disabled
// banner is a 200 with enabled=false so the client hides the strip without
// a special case.
func (h *Handler) GetHandler(c echo.Context) error {
	pageName := c.Param("page")

	var row Banner
	err := h.Store.SelectOne(c.Request().Context(), &row, store.TableBanners, store.QueryOpts{
		Filters: map[string]interface{}{"page": pageName},
	})
	if err != nil {
		// Missing row and unreachable store degrade identically
		row = Banner{Page: pageName, Enabled: false}
	}

	return c.JSON(http.StatusOK, row)
}
