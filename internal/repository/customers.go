package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finvoice/dashboard/internal/errs"
	"github.com/finvoice/dashboard/internal/format"
	"github.com/finvoice/dashboard/internal/model"
)

type CustomersRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	FilteredWithTotals(ctx context.Context, query string) ([]model.CustomerSummary, error)
	Count(ctx context.Context) (int, error)
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

// List returns every customer ordered by name, for select controls.
func (r *CustomersRepositoryImpl) List(ctx context.Context) ([]model.Customer, error) {
	rows := []model.Customer{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, email, image_url
		  FROM customers
		 ORDER BY name ASC
	`)
	if err != nil {
		return nil, errs.DataAccess("customers.List", err)
	}
	return rows, nil
}

// FilteredWithTotals returns customers matching the name-or-email filter,
// left-joined with invoices and grouped, so a customer with no invoices still
// appears with zero totals.
func (r *CustomersRepositoryImpl) FilteredWithTotals(ctx context.Context, query string) ([]model.CustomerSummary, error) {
	pattern := filterPattern(query)

	rows := []model.CustomerSummary{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT c.id, c.name, c.email, c.image_url,
		       COUNT(i.id) AS total_invoices,
		       COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0) AS total_pending,
		       COALESCE(SUM(CASE WHEN i.status = 'paid'    THEN i.amount ELSE 0 END), 0) AS total_paid
		  FROM customers c
		  LEFT JOIN invoices i ON i.customer_id = c.id
		 WHERE LOWER(c.name) LIKE ? OR LOWER(c.email) LIKE ?
		 GROUP BY c.id, c.name, c.email, c.image_url
		 ORDER BY c.name ASC
	`, pattern, pattern)
	if err != nil {
		return nil, errs.DataAccess("customers.FilteredWithTotals", err)
	}
	for idx := range rows {
		rows[idx].TotalPending = format.Currency(rows[idx].PendingCents)
		rows[idx].TotalPaid = format.Currency(rows[idx].PaidCents)
	}
	return rows, nil
}

func (r *CustomersRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers`); err != nil {
		return 0, errs.DataAccess("customers.Count", err)
	}
	return count, nil
}
