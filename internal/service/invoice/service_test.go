package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finvoice/dashboard/internal/errs"
	"github.com/finvoice/dashboard/internal/format"
	"github.com/finvoice/dashboard/internal/model"
)

// fakeInvoices records writes; reads are unused by the mutation pipeline.
type fakeInvoices struct {
	insertErr error
	writeErr  error

	inserted []model.Invoice
	updated  []string
	deleted  []string
}

func (f *fakeInvoices) Insert(_ context.Context, inv model.Invoice) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, inv)
	return nil
}

func (f *fakeInvoices) Update(_ context.Context, id, _ string, _ int64, _ model.InvoiceStatus) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.updated = append(f.updated, id)
	return nil
}

func (f *fakeInvoices) Delete(_ context.Context, id string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeInvoices) Latest(context.Context, int) ([]model.LatestInvoice, error) { return nil, nil }
func (f *fakeInvoices) FilteredPage(context.Context, string, int, int) ([]model.InvoiceRow, error) {
	return nil, nil
}
func (f *fakeInvoices) FilteredPageCount(context.Context, string, int) (int, error) { return 0, nil }
func (f *fakeInvoices) GetByID(context.Context, string) (*model.Invoice, error) {
	return nil, errs.ErrNotFound
}
func (f *fakeInvoices) Count(context.Context) (int, error)                  { return 0, nil }
func (f *fakeInvoices) TotalsByStatus(context.Context) (int64, int64, error) { return 0, 0, nil }

type fakeViews struct {
	invalidations int
	err           error
}

func (f *fakeViews) InvalidateInvoices(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.invalidations++
	return nil
}

func newTestService(repo *fakeInvoices, views *fakeViews) *Service {
	svc := New(repo, views, nil)
	svc.now = func() time.Time { return time.Date(2024, 12, 6, 10, 30, 0, 0, time.UTC) }
	svc.newID = func() string { return "inv_test" }
	return svc
}

func TestCreate_PersistsCentsAndDate(t *testing.T) {
	repo := &fakeInvoices{}
	views := &fakeViews{}
	svc := newTestService(repo, views)

	location, err := svc.Create(context.Background(), Form{
		CustomerID: "cus_delba",
		Amount:     "19.99",
		Status:     "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, ListPath, location)

	require.Len(t, repo.inserted, 1)
	inv := repo.inserted[0]
	assert.Equal(t, "inv_test", inv.ID)
	assert.Equal(t, int64(1999), inv.Amount)
	assert.Equal(t, model.StatusPending, inv.Status)
	assert.Equal(t, "2024-12-06", format.Date(inv.Date))

	assert.Equal(t, 1, views.invalidations)
}

func TestCreate_RejectedInputNeverTouchesStore(t *testing.T) {
	repo := &fakeInvoices{}
	views := &fakeViews{}
	svc := newTestService(repo, views)

	_, err := svc.Create(context.Background(), Form{CustomerID: "cus_delba", Amount: "-1", Status: "pending"})
	_, ok := errs.AsValidation(err)
	require.True(t, ok)

	assert.Empty(t, repo.inserted)
	assert.Zero(t, views.invalidations)
}

func TestCreate_StoreFailureSkipsInvalidation(t *testing.T) {
	repo := &fakeInvoices{insertErr: errs.DataAccess("invoices.Insert", errors.New("gone"))}
	views := &fakeViews{}
	svc := newTestService(repo, views)

	_, err := svc.Create(context.Background(), Form{CustomerID: "cus_delba", Amount: "10", Status: "paid"})
	_, ok := errs.AsDataAccess(err)
	require.True(t, ok)
	assert.Zero(t, views.invalidations)
}

func TestUpdate_StaleIDStillInvalidatesAndRedirects(t *testing.T) {
	repo := &fakeInvoices{}
	views := &fakeViews{}
	svc := newTestService(repo, views)

	// the store treats an unknown id as a zero-row update, not a failure
	location, err := svc.Update(context.Background(), "inv_gone", Form{
		CustomerID: "cus_lee",
		Amount:     "45",
		Status:     "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, ListPath, location)
	assert.Equal(t, []string{"inv_gone"}, repo.updated)
	assert.Equal(t, 1, views.invalidations)
}

func TestDelete_Idempotent(t *testing.T) {
	repo := &fakeInvoices{}
	views := &fakeViews{}
	svc := newTestService(repo, views)

	require.NoError(t, svc.Delete(context.Background(), "inv_0001"))
	require.NoError(t, svc.Delete(context.Background(), "inv_0001"))

	assert.Equal(t, []string{"inv_0001", "inv_0001"}, repo.deleted)
	assert.Equal(t, 2, views.invalidations)
}

func TestMutation_InvalidationFailureIsNotFatal(t *testing.T) {
	repo := &fakeInvoices{}
	views := &fakeViews{err: errors.New("redis down")}
	svc := newTestService(repo, views)

	_, err := svc.Create(context.Background(), Form{CustomerID: "cus_amy", Amount: "12.50", Status: "paid"})
	assert.NoError(t, err)
	assert.Len(t, repo.inserted, 1)
}
