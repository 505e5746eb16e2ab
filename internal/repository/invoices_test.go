package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finvoice/dashboard/internal/errs"
	"github.com/finvoice/dashboard/internal/model"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func invoicePageColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "customer_id", "amount", "status", "date", "name", "email", "image_url"})
}

func TestFilteredPage_PageBelowOneClampsOffset(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewInvoicesRepository(dbx)

	mock.ExpectQuery("SELECT i.id, i.customer_id, i.amount").
		WithArgs("%%", "%%", "%%", "%%", "%%", 6, 0).
		WillReturnRows(invoicePageColumns())

	_, err := repo.FilteredPage(context.Background(), "", 0, 6)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilteredPage_SecondPageOffsetAndFormatting(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewInvoicesRepository(dbx)

	date := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT i.id, i.customer_id, i.amount").
		WithArgs("%pending%", "%pending%", "%pending%", "%pending%", "%pending%", 6, 6).
		WillReturnRows(invoicePageColumns().
			AddRow("inv_0007", "cus_delba", int64(66666), "pending", date, "Delba de Oliveira", "delba@oliveira.com", "/customers/delba.png").
			AddRow("inv_0002", "cus_lee", int64(20348), "pending", date, "Lee Robinson", "lee@robinson.com", "/customers/lee.png"))

	rows, err := repo.FilteredPage(context.Background(), "Pending", 2, 6)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "$666.66", rows[0].Amount)
	assert.Equal(t, "$203.48", rows[1].Amount)
	assert.Equal(t, model.StatusPending, rows[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilteredPage_StoreErrorWraps(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewInvoicesRepository(dbx)

	mock.ExpectQuery("SELECT i.id, i.customer_id, i.amount").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FilteredPage(context.Background(), "", 1, 6)
	de, ok := errs.AsDataAccess(err)
	require.True(t, ok)
	assert.Equal(t, "invoices.FilteredPage", de.Op)
}

func TestFilteredPageCount_CeilingDivision(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewInvoicesRepository(dbx)

	cases := []struct {
		matches int
		want    int
	}{
		{0, 0},
		{1, 1},
		{6, 1},
		{7, 2},
		{8, 2},
		{12, 2},
		{13, 3},
	}
	for _, tc := range cases {
		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tc.matches))

		got, err := repo.FilteredPageCount(context.Background(), "", 6)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "matches=%d", tc.matches)
	}
}

func TestGetByID_NotFoundIsDistinctFromFailure(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewInvoicesRepository(dbx)

	mock.ExpectQuery("SELECT id, customer_id, amount, status, date, created_at").
		WithArgs("inv_gone").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "inv_gone")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, isDataAccess := errs.AsDataAccess(err)
	assert.False(t, isDataAccess)

	mock.ExpectQuery("SELECT id, customer_id, amount, status, date, created_at").
		WithArgs("inv_0001").
		WillReturnError(errors.New("table corrupted"))

	_, err = repo.GetByID(context.Background(), "inv_0001")
	assert.False(t, errs.IsNotFound(err))
	de, ok := errs.AsDataAccess(err)
	require.True(t, ok)
	assert.Equal(t, "invoices.GetByID", de.Op)
}

func TestInsert_BindsCentsAndISODate(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewInvoicesRepository(dbx)

	mock.ExpectExec("INSERT INTO invoices").
		WithArgs("inv_new", "cus_delba", int64(1999), "pending", "2024-12-06").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), model.Invoice{
		ID:         "inv_new",
		CustomerID: "cus_delba",
		Amount:     1999,
		Status:     model.StatusPending,
		Date:       time.Date(2024, 12, 6, 23, 59, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ZeroRowsIsStillSuccess(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewInvoicesRepository(dbx)

	mock.ExpectExec("DELETE FROM invoices WHERE id = ?").
		WithArgs("inv_gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "inv_gone"))
}

func TestTotalsByStatus_CoalescesToZero(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewInvoicesRepository(dbx)

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"paid", "pending"}).AddRow(int64(0), int64(0)))

	paid, pending, err := repo.TotalsByStatus(context.Background())
	require.NoError(t, err)
	assert.Zero(t, paid)
	assert.Zero(t, pending)
}

func TestLatest_FormatsAmounts(t *testing.T) {
	dbx, mock := newMockDB(t)
	repo := NewInvoicesRepository(dbx)

	mock.ExpectQuery("SELECT i.id, i.amount, c.name").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "name", "email", "image_url"}).
			AddRow("inv_0001", int64(15795), "Delba de Oliveira", "delba@oliveira.com", "/customers/delba.png"))

	rows, err := repo.Latest(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "$157.95", rows[0].Amount)
}
