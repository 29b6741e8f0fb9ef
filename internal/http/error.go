package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/appclacks/datto-monitor/internal/http/handlers"
	"github.com/labstack/echo/v4"
	er "github.com/mcorbin/corbierror"
)

func errorHandler(logger *slog.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		if err == nil {
			return
		}
		errLoggedMsg := err.Error() + " on " + c.Request().Method + " " + c.Request().URL.Path
		var corbiError *er.Error
		if errors.As(err, &corbiError) {
			if corbiError.Type == er.NotFound {
				logger.Debug(errLoggedMsg)
			} else {
				logger.Error(errLoggedMsg)
			}
			finalErr, status := er.HTTPError(*corbiError)
			writeError(logger, c, status, finalErr)
			return
		}
		var echoError *echo.HTTPError
		if errors.As(err, &echoError) {
			switch echoError.Code {
			case http.StatusUnauthorized:
				logger.Warn(errLoggedMsg)
				writeError(logger, c, echoError.Code, handlers.NewResponse("unauthorized"))
				return
			case http.StatusMethodNotAllowed:
				writeError(logger, c, echoError.Code, handlers.NewResponse("method not allowed"))
				return
			case http.StatusNotFound:
				writeError(logger, c, echoError.Code, handlers.NewResponse("not found"))
				return
			}
		}
		logger.Error(errLoggedMsg)
		writeError(logger, c, http.StatusInternalServerError, handlers.NewResponse("internal server error"))
	}
}

func writeError(logger *slog.Logger, c echo.Context, status int, payload any) {
	err := c.JSON(status, payload)
	if err != nil {
		logger.Error(err.Error())
		c.Response().Status = http.StatusInternalServerError
	}
}
