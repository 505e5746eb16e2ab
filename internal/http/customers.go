package http

import (
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/finvoice/dashboard/internal/metrics"
	"github.com/finvoice/dashboard/internal/repository"
)

// listCustomersHandler serves the customers table: filtered by name or email,
// each row carrying invoice count and pending/paid totals.
func listCustomersHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := strings.TrimSpace(c.QueryParam("query"))

		rows, err := customers.FilteredWithTotals(c.Request().Context(), query)
		if err != nil {
			metrics.QueriesTotal.WithLabelValues("customers_table", "error").Inc()
			log.Errorf("customer list failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		metrics.QueriesTotal.WithLabelValues("customers_table", "ok").Inc()

		return c.JSON(http.StatusOK, map[string]any{
			"query":     query,
			"customers": rows,
		})
	}
}

// customerOptionsHandler serves the plain name-ordered list for select
// controls on the invoice forms.
func customerOptionsHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := customers.List(c.Request().Context())
		if err != nil {
			log.Errorf("customer options failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, map[string]any{"customers": rows})
	}
}
