package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/domain/article"
	"github.com/coinpass/be-content-platform/domain/banner"
	"github.com/coinpass/be-content-platform/domain/exchange"
	"github.com/coinpass/be-content-platform/domain/faq"
	"github.com/coinpass/be-content-platform/domain/page"
	"github.com/coinpass/be-content-platform/pkg/apperrors"
	"github.com/coinpass/be-content-platform/pkg/sanitize"
	"github.com/coinpass/be-content-platform/store"
)

// Handler exposes the edit pipeline over HTTP. Every route here sits behind
// the JWT middleware and, for writes, the CSRF write guard.
type Handler struct {
	Controller *Controller
}

func NewHandler(ctl *Controller) *Handler {
	return &Handler{Controller: ctl}
}

// MirrorHandler reloads the mirror and returns the full snapshot. The
// dashboard calls this once on entry.
func (h *Handler) MirrorHandler(c echo.Context) error {
	h.Controller.LoadAll(c.Request().Context())
	return c.JSON(http.StatusOK, MirrorResponse{
		States:    h.Controller.States(),
		Exchanges: h.Controller.Exchanges(),
		FAQs:      h.Controller.FAQs(),
		Articles:  h.Controller.Articles(),
	})
}

// CreateExchangeHandler mints a placeholder row. No store write happens.
func (h *Handler) CreateExchangeHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.Controller.CreateExchangePlaceholder())
}

// SaveExchangeHandler persists one exchange row, inserting placeholders and
// updating stored rows.
func (h *Handler) SaveExchangeHandler(c echo.Context) error {
	var row exchange.Exchange
	if err := c.Bind(&row); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request body.",
		))
	}

	saved, err := h.Controller.SaveExchange(c.Request().Context(), row)
	if err != nil {
		return respondSaveError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteExchangeHandler removes one row. Negative ids only touch the mirror.
func (h *Handler) DeleteExchangeHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid row id.",
		))
	}
	if err := h.Controller.DeleteExchange(c.Request().Context(), id); err != nil {
		return respondSaveError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}

// CreateFAQHandler mints a placeholder FAQ row.
func (h *Handler) CreateFAQHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.Controller.CreateFAQPlaceholder())
}

// SaveFAQHandler persists one FAQ row.
func (h *Handler) SaveFAQHandler(c echo.Context) error {
	var row faq.FAQ
	if err := c.Bind(&row); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request body.",
		))
	}

	saved, err := h.Controller.SaveFAQ(c.Request().Context(), row)
	if err != nil {
		return respondSaveError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteFAQHandler removes one FAQ row.
func (h *Handler) DeleteFAQHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid row id.",
		))
	}
	if err := h.Controller.DeleteFAQ(c.Request().Context(), id); err != nil {
		return respondSaveError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted"})
}

// SavePageHandler upserts one page payload keyed by page_type.
func (h *Handler) SavePageHandler(c echo.Context) error {
	var req SavePageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request body.",
		))
	}
	if req.Page == "" || len(req.Content) == 0 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"page and content are required.",
		))
	}

	if err := h.Controller.SaveSinglePage(c.Request().Context(), req.Page, req.Content); err != nil {
		return respondSaveError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Saved"})
}

// GetPageHandler returns the mirrored content for one page so the editor
// can prefill its form.
func (h *Handler) GetPageHandler(c echo.Context) error {
	name := c.Param("name")
	if !page.Allowed(name) {
		return apperrors.RespondWithError(c, apperrors.NewForbidden(
			apperrors.ErrCodeForbiddenPage,
			"Unknown page.",
		))
	}
	row, ok := h.Controller.Page(page.StorageKey(name))
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodePageNotFound,
			"No content for this page yet.",
		))
	}
	return c.JSON(http.StatusOK, PageResponse{Page: name, Content: row.Content})
}

// SaveArticleHandler upserts one pinned-article slot.
func (h *Handler) SaveArticleHandler(c echo.Context) error {
	var row article.PinnedArticle
	if err := c.Bind(&row); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request body.",
		))
	}
	if !article.ValidPosition(row.Position) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidPosition,
			"Position must be between 1 and 6.",
		))
	}
	if err := h.Controller.SavePinnedArticle(c.Request().Context(), row); err != nil {
		return respondSaveError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Saved"})
}

// SaveAllArticlesHandler saves every slot, stopping at the first failure.
func (h *Handler) SaveAllArticlesHandler(c echo.Context) error {
	var req SaveArticlesRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request body.",
		))
	}
	for _, row := range req.Articles {
		if !article.ValidPosition(row.Position) {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeInvalidPosition,
				"Position must be between 1 and 6.",
			))
		}
	}
	if err := h.Controller.SaveAllPinnedArticles(c.Request().Context(), req.Articles); err != nil {
		return respondSaveError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Saved"})
}

// SaveBannerHandler upserts the banner for one page.
func (h *Handler) SaveBannerHandler(c echo.Context) error {
	var row banner.Banner
	if err := c.Bind(&row); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request body.",
		))
	}
	if row.Page == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"page is required.",
		))
	}
	if err := h.Controller.SaveBanner(c.Request().Context(), row); err != nil {
		return respondSaveError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Saved"})
}

// respondSaveError maps pipeline errors onto the wire taxonomy.
func respondSaveError(c echo.Context, err error) error {
	var fieldErr *sanitize.FieldError
	if errors.As(err, &fieldErr) {
		code := apperrors.ErrCodeValidationFailed
		switch {
		case errors.Is(fieldErr.Err, sanitize.ErrInputTooLong):
			code = apperrors.ErrCodeInputTooLong
		case errors.Is(fieldErr.Err, sanitize.ErrInvalidURL):
			code = apperrors.ErrCodeInvalidURL
		}
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(code, fieldErr.Error()))
	}

	switch {
	case errors.Is(err, ErrForbiddenPage):
		return apperrors.RespondWithError(c, apperrors.NewForbidden(
			apperrors.ErrCodeForbiddenPage,
			"Unknown page.",
		))
	case errors.Is(err, store.ErrForbiddenTable):
		return apperrors.RespondWithError(c, apperrors.NewForbidden(
			apperrors.ErrCodeForbiddenTable,
			"Table is not editable.",
		))
	case errors.Is(err, store.ErrUnknownColumn):
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidColumn,
			"Unknown column in request.",
		))
	case errors.Is(err, ErrNotInMirror), errors.Is(err, store.ErrRowNotFound):
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeRowNotFound,
			"Row does not exist.",
		))
	default:
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
}
