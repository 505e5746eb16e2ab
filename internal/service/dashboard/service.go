package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/finvoice/dashboard/internal/format"
	"github.com/finvoice/dashboard/internal/metrics"
	"github.com/finvoice/dashboard/internal/model"
	"github.com/finvoice/dashboard/internal/repository"
)

// Service composes the read queries behind the dashboard views. Independent
// reads within one request run concurrently; a failure in any one read fails
// the whole composite fetch.
type Service struct {
	invoices  repository.InvoicesRepository
	customers repository.CustomersRepository
	revenue   repository.RevenueRepository

	latestLimit int
}

func New(
	invoices repository.InvoicesRepository,
	customers repository.CustomersRepository,
	revenue repository.RevenueRepository,
	latestLimit int,
) *Service {
	if latestLimit <= 0 {
		latestLimit = 5
	}
	return &Service{
		invoices:    invoices,
		customers:   customers,
		revenue:     revenue,
		latestLimit: latestLimit,
	}
}

// Overview is the full dashboard payload.
type Overview struct {
	Summary model.Summary         `json:"summary"`
	Revenue []model.Revenue       `json:"revenue"`
	Latest  []model.LatestInvoice `json:"latestInvoices"`
}

// EditData is everything the invoice edit form needs: the invoice with its
// amount back in dollars, plus the customer list for the select control.
type EditData struct {
	Invoice   model.InvoiceForm `json:"invoice"`
	Customers []model.Customer  `json:"customers"`
}

// Summary runs the three aggregate reads concurrently and coalesces the
// results into the card payload. Totals are formatted here, never NULL.
func (s *Service) Summary(ctx context.Context) (model.Summary, error) {
	sum, err := s.summary(ctx)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("summary", "error").Inc()
		return model.Summary{}, err
	}
	metrics.QueriesTotal.WithLabelValues("summary", "ok").Inc()
	return sum, nil
}

// summary is the uncounted aggregate fetch. Overview reuses it so one
// dashboard request shows up as exactly one entry in the query counter.
func (s *Service) summary(ctx context.Context) (model.Summary, error) {
	var (
		invoiceCount  int
		customerCount int
		paid, pending int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		invoiceCount, err = s.invoices.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		customerCount, err = s.customers.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		paid, pending, err = s.invoices.TotalsByStatus(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Summary{}, err
	}

	return model.Summary{
		InvoiceCount:  invoiceCount,
		CustomerCount: customerCount,
		TotalPaid:     format.Currency(paid),
		TotalPending:  format.Currency(pending),
	}, nil
}

// Overview fetches cards, revenue series, and latest invoices concurrently.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var out Overview

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Summary, err = s.summary(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = s.revenue.Series(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Latest, err = s.invoices.Latest(ctx, s.latestLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.QueriesTotal.WithLabelValues("overview", "error").Inc()
		return nil, err
	}

	metrics.QueriesTotal.WithLabelValues("overview", "ok").Inc()
	return &out, nil
}

// InvoiceEditData fetches the invoice and the customer list concurrently.
// errs.ErrNotFound from the lookup propagates unchanged so the handler can
// render a not-found state instead of a generic failure.
func (s *Service) InvoiceEditData(ctx context.Context, id string) (*EditData, error) {
	var out EditData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		inv, err := s.invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		out.Invoice = model.InvoiceForm{
			ID:         inv.ID,
			CustomerID: inv.CustomerID,
			Amount:     format.CentsToDollars(inv.Amount),
			Status:     inv.Status,
		}
		return nil
	})
	g.Go(func() (err error) {
		out.Customers, err = s.customers.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
