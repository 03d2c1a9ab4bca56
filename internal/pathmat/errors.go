package pathmat

import "fmt"

// FixedPointBoundExceededError is returned when a closure loop fails
// to stabilize within its safety-valve bound; exceeding it is treated
// as fatal rather than silently truncated.
type FixedPointBoundExceededError struct{ Bound int }

func (e *FixedPointBoundExceededError) Error() string {
	return fmt.Sprintf("pathmat: fixed-point loop exceeded bound %d", e.Bound)
}

// UnsupportedPathError is returned for a PropertyPath tree this
// evaluator does not recognize (a caller bug: every PathKind defined
// in internal/algebra is handled).
type UnsupportedPathError struct{ Kind int }

func (e *UnsupportedPathError) Error() string {
	return fmt.Sprintf("pathmat: unsupported path kind %d", e.Kind)
}
