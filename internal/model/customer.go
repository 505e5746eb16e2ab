package model

import "time"

type Customer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// CustomerSummary is one row of the customers table view: a customer
// left-joined with its invoices and grouped, so customers without invoices
// show zero totals. Money totals are pre-formatted.
type CustomerSummary struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Email         string `db:"email" json:"email"`
	ImageURL      string `db:"image_url" json:"imageUrl"`
	TotalInvoices int    `db:"total_invoices" json:"totalInvoices"`
	TotalPending  string `db:"-" json:"totalPending"`
	TotalPaid     string `db:"-" json:"totalPaid"`

	PendingCents int64 `db:"total_pending" json:"-"`
	PaidCents    int64 `db:"total_paid" json:"-"`
}
