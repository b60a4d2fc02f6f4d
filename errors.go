package sqlselect

import (
	"errors"
	"fmt"

	"github.com/biyonik/sqlselect/cond"
	"github.com/biyonik/sqlselect/dialect"
	"github.com/biyonik/sqlselect/internal/validation"
)

// Sentinel errors for sqlselect.
// These errors can be checked using errors.Is().
var (
	// ErrIllegalSequence is returned when a clause is added from a state that does not allow it,
	// e.g. Where before From, or any chain call after the statement was serialized.
	ErrIllegalSequence = errors.New("sqlselect: illegal clause sequence")

	// ErrInvalidOperation is returned when a condition or statement fragment is misused.
	// It is the same value as cond.ErrInvalidOperation.
	ErrInvalidOperation = cond.ErrInvalidOperation

	// ErrEmptyList is returned when an empty list is bound to IN.
	// It is the same value as cond.ErrEmptyList.
	ErrEmptyList = cond.ErrEmptyList

	// ErrInvalidIdentifier is returned when a table, column or alias name contains invalid characters.
	ErrInvalidIdentifier = validation.ErrInvalidIdentifier

	// ErrInvalidKeyword is returned for an unknown SELECT option or ORDER BY direction.
	ErrInvalidKeyword = validation.ErrInvalidKeyword

	// ErrNegativeLimit is returned when Limit receives a negative count or offset.
	ErrNegativeLimit = dialect.ErrNegativeLimit

	// ErrNoExecutor is returned when a statement built without a database is executed.
	ErrNoExecutor = errors.New("sqlselect: statement has no executor")

	// ErrNoRows is returned when a query returns no rows.
	ErrNoRows = errors.New("sqlselect: no rows in result set")

	// ErrNotAPointer is returned when a scan destination is not a non-nil pointer.
	ErrNotAPointer = errors.New("sqlselect: destination must be a non-nil pointer")

	// ErrNotASlice is returned when a multi-row scan destination is not a pointer to a slice.
	ErrNotASlice = errors.New("sqlselect: destination must be a pointer to a slice")

	// ErrNotAStruct is returned when a scan destination element is not a struct.
	ErrNotAStruct = errors.New("sqlselect: destination element must be a struct")

	// ErrTxClosed is returned when a committed or rolled back transaction is used.
	ErrTxClosed = errors.New("sqlselect: transaction already closed")
)

// IllegalSequenceError reports a chain call made from a state that does not allow it.
type IllegalSequenceError struct {
	Operation string
	State     State
}

func (e *IllegalSequenceError) Error() string {
	return "sqlselect: " + e.Operation + " is not allowed after " + e.State.String()
}

func (e *IllegalSequenceError) Is(target error) bool {
	return target == ErrIllegalSequence
}

// QueryError wraps an execution failure with the statement that caused it.
type QueryError struct {
	Op  string
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return "sqlselect: " + e.Op + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError creates a new QueryError with context.
func NewQueryError(op, sql string, err error) *QueryError {
	return &QueryError{
		Op:  op,
		SQL: sql,
		Err: err,
	}
}

// WrapError annotates err with the failed operation, keeping it matchable with errors.Is.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("sqlselect: %s: %w", op, err)
}

// Type aliases so callers can use errors.As without importing cond.
type (
	InvalidOperationError = cond.InvalidOperationError
	EmptyListError        = cond.EmptyListError
)
