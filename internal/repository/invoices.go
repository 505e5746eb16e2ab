package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/finvoice/dashboard/internal/errs"
	"github.com/finvoice/dashboard/internal/format"
	"github.com/finvoice/dashboard/internal/model"
)

// InvoicesRepository defines persistence for the invoices table plus the
// aggregate reads the dashboard cards need.
type InvoicesRepository interface {
	Latest(ctx context.Context, limit int) ([]model.LatestInvoice, error)
	FilteredPage(ctx context.Context, query string, page, pageSize int) ([]model.InvoiceRow, error)
	FilteredPageCount(ctx context.Context, query string, pageSize int) (int, error)
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	Count(ctx context.Context) (int, error)
	TotalsByStatus(ctx context.Context) (paidCents, pendingCents int64, err error)

	Insert(ctx context.Context, inv model.Invoice) error
	Update(ctx context.Context, id, customerID string, amountCents int64, status model.InvoiceStatus) error
	Delete(ctx context.Context, id string) error
}

type InvoicesRepositoryImpl struct {
	db *sqlx.DB
}

func NewInvoicesRepository(db *sqlx.DB) *InvoicesRepositoryImpl {
	return &InvoicesRepositoryImpl{db: db}
}

var _ InvoicesRepository = (*InvoicesRepositoryImpl)(nil)

// filterPredicate matches the free-text search box: case-insensitive substring
// over customer name/email, amount and date rendered as text, and status.
// An empty query yields the pattern "%%", which matches every row.
const filterPredicate = `
	(
	      LOWER(c.name)              LIKE ?
	   OR LOWER(c.email)             LIKE ?
	   OR CAST(i.amount AS CHAR)     LIKE ?
	   OR CAST(i.date   AS CHAR)     LIKE ?
	   OR LOWER(i.status)            LIKE ?
	)`

func filterPattern(query string) string {
	return "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
}

// Latest returns the `limit` most recent invoices joined with customer
// identity fields, newest first. Same-day ordering is store-defined.
func (r *InvoicesRepositoryImpl) Latest(ctx context.Context, limit int) ([]model.LatestInvoice, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := []model.LatestInvoice{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT i.id, i.amount, c.name, c.email, c.image_url
		  FROM invoices i
		  JOIN customers c ON c.id = i.customer_id
		 ORDER BY i.date DESC
		 LIMIT ?
	`, limit)
	if err != nil {
		return nil, errs.DataAccess("invoices.Latest", err)
	}
	for idx := range rows {
		rows[idx].Amount = format.Currency(rows[idx].AmountCents)
	}
	return rows, nil
}

// FilteredPage returns one page of the invoice table. Pages below 1 are
// treated as 1 so the offset can never go negative.
func (r *InvoicesRepositoryImpl) FilteredPage(ctx context.Context, query string, page, pageSize int) ([]model.InvoiceRow, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 6
	}
	offset := (page - 1) * pageSize
	pattern := filterPattern(query)

	rows := []model.InvoiceRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT i.id, i.customer_id, i.amount, i.status, i.date,
		       c.name, c.email, c.image_url
		  FROM invoices i
		  JOIN customers c ON c.id = i.customer_id
		 WHERE `+filterPredicate+`
		 ORDER BY i.date DESC
		 LIMIT ? OFFSET ?
	`, pattern, pattern, pattern, pattern, pattern, pageSize, offset)
	if err != nil {
		return nil, errs.DataAccess("invoices.FilteredPage", err)
	}
	for idx := range rows {
		rows[idx].Amount = format.Currency(rows[idx].AmountCents)
	}
	return rows, nil
}

// FilteredPageCount returns ceil(matches / pageSize) for the same predicate
// FilteredPage uses, so callers can bound the pager.
func (r *InvoicesRepositoryImpl) FilteredPageCount(ctx context.Context, query string, pageSize int) (int, error) {
	if pageSize <= 0 {
		pageSize = 6
	}
	pattern := filterPattern(query)

	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		  FROM invoices i
		  JOIN customers c ON c.id = i.customer_id
		 WHERE `+filterPredicate+`
	`, pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return 0, errs.DataAccess("invoices.FilteredPageCount", err)
	}
	return (count + pageSize - 1) / pageSize, nil
}

// GetByID returns the invoice row or errs.ErrNotFound. Absence is not a store
// failure: only real query errors wrap into a DataAccessError.
func (r *InvoicesRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.GetContext(ctx, &inv, `
		SELECT id, customer_id, amount, status, date, created_at
		  FROM invoices
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, errs.DataAccess("invoices.GetByID", err)
	}
	return &inv, nil
}

func (r *InvoicesRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM invoices`); err != nil {
		return 0, errs.DataAccess("invoices.Count", err)
	}
	return count, nil
}

// TotalsByStatus sums paid and pending amounts in one pass. COALESCE keeps an
// empty table reading as zero instead of NULL.
func (r *InvoicesRepositoryImpl) TotalsByStatus(ctx context.Context) (int64, int64, error) {
	var totals struct {
		Paid    int64 `db:"paid"`
		Pending int64 `db:"pending"`
	}
	err := r.db.GetContext(ctx, &totals, `
		SELECT COALESCE(SUM(CASE WHEN status = 'paid'    THEN amount ELSE 0 END), 0) AS paid,
		       COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending
		  FROM invoices
	`)
	if err != nil {
		return 0, 0, errs.DataAccess("invoices.TotalsByStatus", err)
	}
	return totals.Paid, totals.Pending, nil
}

// Insert persists a new invoice row. The amount arrives already converted to
// cents and the date already captured by the mutation pipeline.
func (r *InvoicesRepositoryImpl) Insert(ctx context.Context, inv model.Invoice) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices
		    (id, customer_id, amount, status, date, created_at)
		VALUES
		    (?,  ?,           ?,      ?,      ?,    NOW())
	`, inv.ID, inv.CustomerID, inv.Amount, inv.Status.String(), format.Date(inv.Date))
	if err != nil {
		return errs.DataAccess("invoices.Insert", err)
	}
	return nil
}

// Update replaces the three mutable fields together. A missing id affects
// zero rows and is not an error; the UI cannot normally produce a stale id.
func (r *InvoicesRepositoryImpl) Update(ctx context.Context, id, customerID string, amountCents int64, status model.InvoiceStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE invoices
		   SET customer_id = ?, amount = ?, status = ?
		 WHERE id = ?
	`, customerID, amountCents, status.String(), id)
	if err != nil {
		return errs.DataAccess("invoices.Update", err)
	}
	return nil
}

// Delete removes the row if it exists. Deleting an already-deleted id is a
// no-op, which makes the operation idempotent.
func (r *InvoicesRepositoryImpl) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return errs.DataAccess("invoices.Delete", err)
	}
	return nil
}
