package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"FintechNews/internal/domain"
	"FintechNews/internal/export"
	"FintechNews/internal/usecase"
)

// Refresher runs one stateless refresh.
type Refresher interface {
	Refresh(ctx context.Context, params domain.ParameterSet) (usecase.Report, error)
}

type NewsHandler struct {
	refresher Refresher
	defaults  domain.ParameterSet
}

func NewNewsHandler(refresher Refresher, defaults domain.ParameterSet) *NewsHandler {
	return &NewsHandler{refresher: refresher, defaults: defaults}
}

func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/news", h.List)
	g.GET("/news/export", h.Export)
}

// List runs a refresh and returns counts plus the visible sections.
// A run without relevant articles is still a 200 carrying its outcome.
func (h *NewsHandler) List(c echo.Context) error {
	report, err := h.refresh(c)
	if err != nil {
		return writeError(c, err, nil)
	}

	if report.Outcome == domain.OutcomeFetchFailed {
		return writeError(c, report.Outcome.Err(), &report)
	}

	return c.JSON(http.StatusOK, toNewsResponse(report))
}

// Export runs a refresh and streams every classified article as CSV,
// regardless of the visibility toggles.
func (h *NewsHandler) Export(c echo.Context) error {
	report, err := h.refresh(c)
	if err != nil {
		return writeError(c, err, nil)
	}

	if outcomeErr := report.Outcome.Err(); outcomeErr != nil {
		return writeError(c, outcomeErr, &report)
	}

	var buf bytes.Buffer
	if err := report.Export.WriteCSV(&buf); err != nil {
		return writeError(c, err, nil)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Export.Filename))
	return c.Blob(http.StatusOK, export.ContentType+"; charset=utf-8", buf.Bytes())
}

func (h *NewsHandler) refresh(c echo.Context) (usecase.Report, error) {
	params, err := parseParams(c, h.defaults)
	if err != nil {
		return usecase.Report{}, err
	}
	return h.refresher.Refresh(c.Request().Context(), params)
}
