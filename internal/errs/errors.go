package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned by lookups when no row matches. Callers use it to
// distinguish absence from a store failure.
var ErrNotFound = errors.New("not found")

// DataAccessError wraps a store-level failure with the operation that hit it.
// The wrapped error is kept for logs; it is never sent to clients.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// DataAccess wraps err as a DataAccessError tagged with op.
func DataAccess(op string, err error) error {
	return &DataAccessError{Op: op, Err: err}
}

// ValidationError carries one message per invalid field. The write is skipped
// whenever one of these is produced.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// IsNotFound reports whether err indicates a missing row rather than a failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsValidation extracts a ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsDataAccess extracts a DataAccessError if err is one.
func AsDataAccess(err error) (*DataAccessError, bool) {
	var de *DataAccessError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
