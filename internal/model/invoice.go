package model

import "time"

type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Invoice is the DB entity persisted in the invoices table. Amount is stored
// in cents; conversion to dollars happens only at the edit-form boundary.
type Invoice struct {
	ID         string        `db:"id"`
	CustomerID string        `db:"customer_id"`
	Amount     int64         `db:"amount"`
	Status     InvoiceStatus `db:"status"`
	Date       time.Time     `db:"date"`
	CreatedAt  time.Time     `db:"created_at"`
}

// InvoiceForm is the edit-form projection: amount back in dollars so the form
// shows what the user originally typed.
type InvoiceForm struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customerId"`
	Amount     float64       `json:"amount"`
	Status     InvoiceStatus `json:"status"`
}

// LatestInvoice joins an invoice with its customer's identity fields for the
// dashboard card list. Amount is pre-formatted for display.
type LatestInvoice struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	ImageURL string `db:"image_url" json:"imageUrl"`
	Amount   string `db:"-" json:"amount"`

	AmountCents int64 `db:"amount" json:"-"`
}

// InvoiceRow is one row of the filtered invoice table.
type InvoiceRow struct {
	ID         string        `db:"id" json:"id"`
	CustomerID string        `db:"customer_id" json:"customerId"`
	Name       string        `db:"name" json:"name"`
	Email      string        `db:"email" json:"email"`
	ImageURL   string        `db:"image_url" json:"imageUrl"`
	Amount     string        `db:"-" json:"amount"`
	Status     InvoiceStatus `db:"status" json:"status"`
	Date       time.Time     `db:"date" json:"date"`

	AmountCents int64 `db:"amount" json:"-"`
}

// Summary holds the dashboard card numbers. Totals are pre-formatted currency
// strings; missing aggregates are coalesced to zero before formatting.
type Summary struct {
	InvoiceCount  int    `json:"invoiceCount"`
	CustomerCount int    `json:"customerCount"`
	TotalPaid     string `json:"totalPaid"`
	TotalPending  string `json:"totalPending"`
}
