package http

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"FintechNews/internal/handler"
)

// NewRouter mounts the news API under /api. Each /api request triggers a full
// refresh against the upstream feeds, so a positive rateLimit throttles it per client IP.
func NewRouter(newsHandler *handler.NewsHandler, logger *slog.Logger, rateLimit float64) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	if logger != nil {
		e.Use(requestLogger(logger))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	if rateLimit > 0 {
		api.Use(middleware.RateLimiter(rateLimitStore(rateLimit)))
	}
	newsHandler.RegisterRoutes(api)

	return e
}

// rateLimitStore keeps a burst of at least one so fractional rates still admit requests.
func rateLimitStore(rateLimit float64) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(rateLimit),
		Burst: max(1, int(math.Ceil(rateLimit))),
	})
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.Error("request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	})
}
