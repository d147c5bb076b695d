package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"FintechNews/internal/domain"
)

// parseParams overlays query parameters on defaults.
func parseParams(c echo.Context, defaults domain.ParameterSet) (domain.ParameterSet, error) {
	params := defaults

	if raw := c.QueryParam("daysBack"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("daysBack %q: %w", raw, domain.ErrInvalidParameters)
		}
		params.DaysBack = days
	}

	toggles := []struct {
		name   string
		target *bool
	}{
		{"showFunding", &params.ShowFunding},
		{"showGlobal", &params.ShowGlobal},
		{"showNational", &params.ShowNational},
	}
	for _, toggle := range toggles {
		raw := c.QueryParam(toggle.name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return params, fmt.Errorf("%s %q: %w", toggle.name, raw, domain.ErrInvalidParameters)
		}
		*toggle.target = value
	}

	return params, params.Validate()
}
