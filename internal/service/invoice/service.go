package invoice

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/finvoice/dashboard/internal/metrics"
	"github.com/finvoice/dashboard/internal/model"
	"github.com/finvoice/dashboard/internal/repository"
	"github.com/finvoice/dashboard/internal/util"
)

// ListPath is where the caller is told to navigate after create and update.
const ListPath = "/dashboard/invoices"

// ViewInvalidator marks cached invoice list views stale after a mutation.
type ViewInvalidator interface {
	InvalidateInvoices(ctx context.Context) error
}

// Service is the mutation pipeline: validate, transform, persist, invalidate,
// then signal the redirect. A validation failure stops the pipeline before the
// store; a store failure stops it before invalidation.
type Service struct {
	invoices repository.InvoicesRepository
	views    ViewInvalidator
	validate *validator.Validate
	log      *zap.Logger

	now   func() time.Time
	newID func() string
}

func New(invoices repository.InvoicesRepository, views ViewInvalidator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		invoices: invoices,
		views:    views,
		validate: newValidator(),
		log:      log,
		now:      time.Now,
		newID:    util.NewID,
	}
}

// Create validates the submission, converts dollars to cents, captures the
// current date as the invoice date, and inserts the row.
func (s *Service) Create(ctx context.Context, f Form) (string, error) {
	in, err := parseForm(s.validate, f)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("create", "rejected").Inc()
		return "", err
	}

	inv := model.Invoice{
		ID:         s.newID(),
		CustomerID: in.customerID,
		Amount:     in.amountCents,
		Status:     in.status,
		Date:       s.now(),
	}
	if err := s.invoices.Insert(ctx, inv); err != nil {
		metrics.MutationsTotal.WithLabelValues("create", "error").Inc()
		return "", err
	}

	s.invalidate(ctx)
	metrics.MutationsTotal.WithLabelValues("create", "ok").Inc()
	return ListPath, nil
}

// Update replaces customer, amount, and status together. The id and original
// date are immutable here. Updating a stale id is a store-level no-op; the
// cache is still invalidated and the redirect still happens.
func (s *Service) Update(ctx context.Context, id string, f Form) (string, error) {
	in, err := parseForm(s.validate, f)
	if err != nil {
		metrics.MutationsTotal.WithLabelValues("update", "rejected").Inc()
		return "", err
	}

	if err := s.invoices.Update(ctx, id, in.customerID, in.amountCents, in.status); err != nil {
		metrics.MutationsTotal.WithLabelValues("update", "error").Inc()
		return "", err
	}

	s.invalidate(ctx)
	metrics.MutationsTotal.WithLabelValues("update", "ok").Inc()
	return ListPath, nil
}

// Delete removes the invoice and invalidates views. Idempotent: a second
// delete of the same id succeeds as a no-op. No redirect is signalled.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.invoices.Delete(ctx, id); err != nil {
		metrics.MutationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	s.invalidate(ctx)
	metrics.MutationsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

// invalidate marks cached list views stale. A cache failure is logged, not
// propagated: the row is already persisted and the view TTL bounds staleness.
func (s *Service) invalidate(ctx context.Context) {
	if err := s.views.InvalidateInvoices(ctx); err != nil {
		s.log.Warn("invoice view invalidation failed", zap.Error(err))
	}
}
