package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"

	"github.com/finvoice/dashboard/internal/cache"
	"github.com/finvoice/dashboard/internal/errs"
	"github.com/finvoice/dashboard/internal/format"
	"github.com/finvoice/dashboard/internal/metrics"
	"github.com/finvoice/dashboard/internal/model"
	"github.com/finvoice/dashboard/internal/repository"
	"github.com/finvoice/dashboard/internal/service/dashboard"
	"github.com/finvoice/dashboard/internal/service/invoice"
)

type invoicesPage struct {
	Query      string             `json:"query"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Pagination []string           `json:"pagination"`
	Invoices   []model.InvoiceRow `json:"invoices"`
}

// listInvoicesHandler serves the filtered invoice table. Cache-aside: a
// cached view is returned as-is, otherwise rows and page count are fetched
// concurrently and the rendered payload is stored for the next read.
func listInvoicesHandler(invoices repository.InvoicesRepository, views *cache.Views, pageSize int) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := strings.TrimSpace(c.QueryParam("query"))
		page := 1
		if v := c.QueryParam("page"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				page = n
			}
		}

		if payload, ok := views.GetInvoicePage(c.Request().Context(), query, page); ok {
			return c.JSONBlob(http.StatusOK, payload)
		}

		out := invoicesPage{Query: query, Page: page}

		g, ctx := errgroup.WithContext(c.Request().Context())
		g.Go(func() (err error) {
			out.Invoices, err = invoices.FilteredPage(ctx, query, page, pageSize)
			return err
		})
		g.Go(func() (err error) {
			out.TotalPages, err = invoices.FilteredPageCount(ctx, query, pageSize)
			return err
		})
		if err := g.Wait(); err != nil {
			metrics.QueriesTotal.WithLabelValues("invoices_page", "error").Inc()
			log.Errorf("invoice list failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}
		out.Pagination = format.Pagination(page, out.TotalPages)

		metrics.QueriesTotal.WithLabelValues("invoices_page", "ok").Inc()

		payload, err := json.Marshal(out)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}
		views.SetInvoicePage(c.Request().Context(), query, page, payload)

		return c.JSONBlob(http.StatusOK, payload)
	}
}

// getInvoiceHandler serves the edit-form payload. Absence renders a 404,
// distinct from a store failure.
func getInvoiceHandler(dashSvc *dashboard.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		out, err := dashSvc.InvoiceEditData(c.Request().Context(), c.Param("id"))
		if errs.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "invoice not found"})
		}
		if err != nil {
			log.Errorf("invoice fetch failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, out)
	}
}

func createInvoiceHandler(svc *invoice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var f invoice.Form
		if err := c.Bind(&f); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		location, err := svc.Create(c.Request().Context(), f)
		if err != nil {
			return mutationError(c, err, "create")
		}

		return c.JSON(http.StatusCreated, map[string]any{
			"created":  true,
			"location": location,
		})
	}
}

func updateInvoiceHandler(svc *invoice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var f invoice.Form
		if err := c.Bind(&f); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		location, err := svc.Update(c.Request().Context(), c.Param("id"), f)
		if err != nil {
			return mutationError(c, err, "update")
		}

		return c.JSON(http.StatusOK, map[string]any{
			"updated":  true,
			"location": location,
		})
	}
}

func deleteInvoiceHandler(svc *invoice.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
			return mutationError(c, err, "delete")
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// mutationError maps pipeline failures: field errors go back to the form with
// the input preserved client-side, store failures become a generic 500 that
// leaks neither credentials nor query text.
func mutationError(c echo.Context, err error, action string) error {
	if ve, ok := errs.AsValidation(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	}

	log.Errorf("invoice %s failed: %v", action, err)

	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
}
