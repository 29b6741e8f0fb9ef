package middlewares

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// routeLabel avoids creating one time series per unknown path.
func routeLabel(context echo.Context, status int) string {
	if status == 404 || context.Path() == "" {
		return "?"
	}
	return context.Path()
}

func MetricsMiddleware(histogram *prometheus.HistogramVec, counter *prometheus.CounterVec, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(context echo.Context) error {
			start := time.Now()
			err := next(context)
			if err != nil {
				// populate the response before reading its status
				context.Error(err)
			}
			method := context.Request().Method
			response := context.Response()
			if response == nil {
				logger.Error(fmt.Sprintf("Response in metrics middleware is nil for %s %s", method, context.Path()))
				return nil
			}
			path := routeLabel(context, response.Status)
			histogram.With(prometheus.Labels{"method": method, "path": path}).Observe(time.Since(start).Seconds())
			counter.With(prometheus.Labels{"method": method, "status": strconv.Itoa(response.Status), "path": path}).Inc()
			// the error handler was already called
			return nil
		}
	}
}
