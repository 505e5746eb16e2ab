package http

import (
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/finvoice/dashboard/internal/service/dashboard"
)

func overviewHandler(dashSvc *dashboard.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := dashSvc.Overview(c.Request().Context())
		if err != nil {
			log.Errorf("dashboard overview failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, out)
	}
}
