package page

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/pkg/apperrors"
	"github.com/coinpass/be-content-platform/store"
)

// Handler serves the public read-only page-content endpoints.
type Handler struct {
	Store *store.Adapter
}

func NewHandler(s *store.Adapter) *Handler {
	return &Handler{Store: s}
}

// ListHandler returns every page_contents row in one response so the public
// page can hydrate all sections from a single request.
func (h *Handler) ListHandler(c echo.Context) error {
	rows := []PageContent{}
	h.Store.SelectOrEmpty(c.Request().Context(), &rows, store.TablePageContents, store.QueryOpts{
		OrderBy: "page_type",
	})
	return c.JSON(http.StatusOK, rows)
}

// GetHandler returns the single row for one page name.
func (h *Handler) GetHandler(c echo.Context) error {
	name := c.Param("name")
	if !Allowed(name) {
		return apperrors.RespondWithError(c, apperrors.NewForbidden(
			apperrors.ErrCodeForbiddenPage,
			"Unknown page.",
		))
	}

	var row PageContent
	err := h.Store.SelectOne(c.Request().Context(), &row, store.TablePageContents, store.QueryOpts{
		Filters: map[string]interface{}{"page_type": StorageKey(name)},
	})
	if err != nil {
		if errors.Is(err, store.ErrRowNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodePageNotFound,
				"No content for this page yet.",
			))
		}
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, row)
}
