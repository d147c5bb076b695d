package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"FintechNews/internal/aggregate"
	"FintechNews/internal/domain"
	"FintechNews/internal/usecase"
)

type errorResponse struct {
	Error       string               `json:"error"`
	Outcome     string               `json:"outcome,omitempty"`
	Diagnostics *diagnosticsResponse `json:"diagnostics,omitempty"`
}

type paramsResponse struct {
	DaysBack     int  `json:"daysBack"`
	ShowFunding  bool `json:"showFunding"`
	ShowGlobal   bool `json:"showGlobal"`
	ShowNational bool `json:"showNational"`
}

type countsResponse struct {
	Total    int `json:"total"`
	Funding  int `json:"funding"`
	Global   int `json:"global"`
	National int `json:"national"`
}

type articleResponse struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Excerpt        string `json:"excerpt"`
	URL            string `json:"url"`
	PublishedAt    string `json:"publishedAt"`
	Source         string `json:"source"`
	Classification string `json:"classification"`
}

type sectionResponse struct {
	Classification string              `json:"classification"`
	Visible        bool                `json:"visible"`
	Count          int                 `json:"count"`
	Columns        [][]articleResponse `json:"columns"`
}

type diagnosticsResponse struct {
	Sources        int      `json:"sources"`
	FailedSources  []string `json:"failedSources"`
	SkippedEntries int      `json:"skippedEntries"`
	Fetched        int      `json:"fetched"`
	Relevant       int      `json:"relevant"`
}

type newsResponse struct {
	Outcome        string              `json:"outcome"`
	GeneratedAt    string              `json:"generatedAt"`
	Params         paramsResponse      `json:"params"`
	Counts         countsResponse      `json:"counts"`
	Sections       []sectionResponse   `json:"sections"`
	ExportFilename string              `json:"exportFilename,omitempty"`
	Diagnostics    diagnosticsResponse `json:"diagnostics"`
}

// writeError maps refresh errors and non-success outcomes to HTTP responses.
// Unexpected errors are returned to echo so the request logger records them.
func writeError(c echo.Context, err error, report *usecase.Report) error {
	resp := errorResponse{Error: err.Error()}
	if report != nil {
		resp.Outcome = report.Outcome.String()
		diag := toDiagnosticsResponse(report.Diagnostics)
		resp.Diagnostics = &diag
	}

	switch {
	case errors.Is(err, domain.ErrInvalidParameters):
		return c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrFetchFailed):
		return c.JSON(http.StatusBadGateway, resp)
	case errors.Is(err, domain.ErrNoRelevantArticles):
		return c.JSON(http.StatusNotFound, resp)
	default:
		return fmt.Errorf("refresh: %w", err)
	}
}

func toNewsResponse(report usecase.Report) newsResponse {
	resp := newsResponse{
		Outcome:     report.Outcome.String(),
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Params: paramsResponse{
			DaysBack:     report.Params.DaysBack,
			ShowFunding:  report.Params.ShowFunding,
			ShowGlobal:   report.Params.ShowGlobal,
			ShowNational: report.Params.ShowNational,
		},
		Counts: countsResponse{
			Total:    report.Counts.Total,
			Funding:  report.Counts.Funding,
			Global:   report.Counts.Global,
			National: report.Counts.National,
		},
		Sections:       make([]sectionResponse, 0, len(report.Sections)),
		ExportFilename: report.Export.Filename,
		Diagnostics:    toDiagnosticsResponse(report.Diagnostics),
	}

	for _, section := range report.Sections {
		resp.Sections = append(resp.Sections, toSectionResponse(section))
	}
	return resp
}

func toSectionResponse(section aggregate.Section) sectionResponse {
	resp := sectionResponse{
		Classification: string(section.Classification),
		Visible:        section.Visible,
		Count:          len(section.Articles),
		Columns:        make([][]articleResponse, aggregate.ColumnCount),
	}
	for i, column := range section.Columns {
		resp.Columns[i] = make([]articleResponse, 0, len(column))
		for _, a := range column {
			resp.Columns[i] = append(resp.Columns[i], toArticleResponse(a))
		}
	}
	return resp
}

func toArticleResponse(a domain.Article) articleResponse {
	return articleResponse{
		Title:          a.Title,
		Description:    sanitizeDescription(a.Description),
		Excerpt:        excerpt(a.Description),
		URL:            a.URL,
		PublishedAt:    a.PublishedAt.Format("2006-01-02"),
		Source:         a.Source,
		Classification: string(a.Classification),
	}
}

func toDiagnosticsResponse(d usecase.Diagnostics) diagnosticsResponse {
	failed := d.FailedSources
	if failed == nil {
		failed = []string{}
	}
	return diagnosticsResponse{
		Sources:        d.Sources,
		FailedSources:  failed,
		SkippedEntries: d.SkippedEntries,
		Fetched:        d.Fetched,
		Relevant:       d.Relevant,
	}
}
