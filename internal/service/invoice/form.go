package invoice

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/finvoice/dashboard/internal/errs"
	"github.com/finvoice/dashboard/internal/format"
	"github.com/finvoice/dashboard/internal/model"
)

// Form is the raw invoice submission: every field arrives as a string, the
// way a form post delivers it. Parsing and coercion happen in one explicit
// step before anything touches the store.
type Form struct {
	CustomerID string `json:"customerId" validate:"required"`
	Amount     string `json:"amount"     validate:"required"`
	Status     string `json:"status"     validate:"required,oneof=pending paid"`
}

// maxAmountDollars caps a single invoice. +Inf and anything whose cents
// conversion could leave int64 range stop here instead of overflowing.
const maxAmountDollars = 1e12

// parsed is the typed result of a successful validation.
type parsed struct {
	customerID  string
	amountCents int64
	status      model.InvoiceStatus
}

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names so the error map matches the form fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseForm validates and coerces a submission. On any failure it returns a
// ValidationError with one message per invalid field and nothing is written.
func parseForm(v *validator.Validate, f Form) (parsed, error) {
	fields := map[string]string{}

	if err := v.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return parsed{}, err
		}
		for _, fe := range verrs {
			fields[fe.Field()] = messageFor(fe)
		}
	}

	var cents int64
	if _, seen := fields["amount"]; !seen {
		dollars, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
		switch {
		case err != nil, math.IsNaN(dollars):
			fields["amount"] = "must be a number"
		case !(dollars > 0):
			// written accept-side-out so NaN and -Inf can never slip through
			fields["amount"] = "must be greater than $0"
		case dollars > maxAmountDollars:
			fields["amount"] = "is too large"
		default:
			cents = format.DollarsToCents(dollars)
		}
	}

	if len(fields) > 0 {
		return parsed{}, &errs.ValidationError{Fields: fields}
	}

	return parsed{
		customerID:  f.CustomerID,
		amountCents: cents,
		status:      model.InvoiceStatus(f.Status),
	}, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be pending or paid"
	default:
		return "is invalid"
	}
}
