package cond

import "errors"

// Sentinel errors for condition misuse. Match them with errors.Is.
var (
	// ErrInvalidOperation is returned when a node is used in a way its kind does not allow:
	// rebinding, binding a column-to-column comparison, NULL under an ordering operator,
	// or serializing a node that still needs a value.
	ErrInvalidOperation = errors.New("sqlselect: invalid operation")

	// ErrEmptyList is returned when an empty list is bound to IN.
	ErrEmptyList = errors.New("sqlselect: empty list bound to IN")
)

// InvalidOperationError describes a rejected operation on a condition node.
type InvalidOperationError struct {
	Op     string
	Column string
	Reason string
}

// Error implements the error interface.
func (e *InvalidOperationError) Error() string {
	if e.Column == "" {
		return "sqlselect: invalid operation " + e.Op + ": " + e.Reason
	}
	return "sqlselect: invalid operation " + e.Op + " on '" + e.Column + "': " + e.Reason
}

// Is reports whether target is ErrInvalidOperation.
func (e *InvalidOperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// EmptyListError is returned when IN receives a list with no elements.
type EmptyListError struct {
	Column string
}

// Error implements the error interface.
func (e *EmptyListError) Error() string {
	return "sqlselect: empty list bound to IN on '" + e.Column + "'"
}

// Is reports whether target is ErrEmptyList.
func (e *EmptyListError) Is(target error) bool {
	return target == ErrEmptyList
}
