package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (b *Builder) GetLastRun(ec echo.Context) error {
	report, err := b.run.LastRun()
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, report)
}
