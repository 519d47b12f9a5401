package pontoon

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested entity does not exist or is
	// not visible to the viewer.
	ErrNotFound = errors.New("pontoon: entity not found")

	// ErrNotSingular is returned when a lookup by unique key returns more
	// than one row.
	ErrNotSingular = errors.New("pontoon: entity not singular")

	// ErrCyclicQuery is returned when a query expands the project/locale
	// relation back onto itself.
	ErrCyclicQuery = errors.New("Cyclic queries are forbidden")
)

// NotFoundError represents an error when an entity is not found.
type NotFoundError struct {
	label string
	key   string // Optional: the unique key that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.key != "" {
		return fmt.Sprintf("pontoon: %s %q not found", e.label, e.key)
	}
	return fmt.Sprintf("pontoon: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label.
func (e *NotFoundError) Label() string {
	return e.label
}

// Key returns the key that was searched for, if available.
func (e *NotFoundError) Key() string {
	return e.key
}

// NewNotFoundError returns a new NotFoundError for the given entity type.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithKey returns a new NotFoundError with the slug or code
// that was searched for.
func NewNotFoundErrorWithKey(label, key string) *NotFoundError {
	return &NotFoundError{label: label, key: key}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSingularError represents an error when a query expects a singular result
// but receives multiple results.
type NotSingularError struct {
	label string
	count int // Number of results returned (-1 if unknown)
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	if e.count >= 0 {
		return fmt.Sprintf("pontoon: %s not singular (got %d results, expected 1)", e.label, e.count)
	}
	return fmt.Sprintf("pontoon: %s not singular", e.label)
}

// Is reports whether the target error matches NotSingularError.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// Label returns the entity label.
func (e *NotSingularError) Label() string {
	return e.label
}

// Count returns the number of results, or -1 if unknown.
func (e *NotSingularError) Count() int {
	return e.count
}

// NewNotSingularError returns a new NotSingularError for the given entity type.
func NewNotSingularError(label string) *NotSingularError {
	return &NotSingularError{label: label, count: -1}
}

// NewNotSingularErrorWithCount returns a new NotSingularError with the result count.
func NewNotSingularErrorWithCount(label string, count int) *NotSingularError {
	return &NotSingularError{label: label, count: count}
}

// IsNotSingular returns true if the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

// NotLoadedError represents an error when attempting to access an edge
// that was not eager-loaded.
type NotLoadedError struct {
	edge string
}

// Error returns the error string.
func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("pontoon: edge %q was not loaded", e.edge)
}

// NewNotLoadedError returns a new NotLoadedError for the given edge name.
func NewNotLoadedError(edge string) *NotLoadedError {
	return &NotLoadedError{edge: edge}
}

// IsNotLoaded returns true if the error is a NotLoadedError.
func IsNotLoaded(err error) bool {
	if err == nil {
		return false
	}
	var e *NotLoadedError
	return errors.As(err, &e)
}

// CyclicQueryError is returned when the requested shape expands the
// project/locale relation and then the reverse relation again.
type CyclicQueryError struct {
	Path string // Forbidden path found in the request
}

// Error returns the error string. The message is shown to API clients as is.
func (e *CyclicQueryError) Error() string {
	return ErrCyclicQuery.Error()
}

// Is reports whether the target error matches CyclicQueryError.
func (e *CyclicQueryError) Is(err error) bool {
	return err == ErrCyclicQuery
}

// NewCyclicQueryError returns a new CyclicQueryError for the given path.
func NewCyclicQueryError(path string) *CyclicQueryError {
	return &CyclicQueryError{Path: path}
}

// IsCyclicQuery returns true if the error is a CyclicQueryError.
func IsCyclicQuery(err error) bool {
	if err == nil {
		return false
	}
	var e *CyclicQueryError
	return errors.As(err, &e) || errors.Is(err, ErrCyclicQuery)
}

// QueryError wraps a store error with the entity and operation that failed.
type QueryError struct {
	Entity string // Entity type being queried
	Op     string // Operation (e.g., "select", "eager-load localizations")
	Err    error  // Underlying error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("pontoon: querying %s (%s): %v", e.Entity, e.Op, e.Err)
	}
	return fmt.Sprintf("pontoon: querying %s: %v", e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError returns a new QueryError.
func NewQueryError(entity, op string, err error) *QueryError {
	return &QueryError{Entity: entity, Op: op, Err: err}
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// PrivacyError represents a visibility policy that denied a read.
type PrivacyError struct {
	Entity string // Entity type
	Rule   string // Rule that denied the operation
}

// Error returns the error string.
func (e *PrivacyError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("pontoon: privacy denied query on %s (rule: %s)", e.Entity, e.Rule)
	}
	return fmt.Sprintf("pontoon: privacy denied query on %s", e.Entity)
}

// NewPrivacyError returns a new PrivacyError.
func NewPrivacyError(entity, rule string) *PrivacyError {
	return &PrivacyError{Entity: entity, Rule: rule}
}

// IsPrivacyError returns true if the error is a PrivacyError.
func IsPrivacyError(err error) bool {
	if err == nil {
		return false
	}
	var e *PrivacyError
	return errors.As(err, &e)
}
