// Package result provides a success-or-failure value for operations whose
// expected failures should not travel as Go errors.
//
// A Result holds either a value of type T or a failure error, never both.
// Results are immutable once constructed. Map and FlatMap transform the success
// value and leave failures untouched.
package result

import "github.com/code19m/errx"

// Result is a tagged union of a success value and a failure error.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps v as a successful Result.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps err as a failed Result. A nil err is replaced with an internal
// error so that a failure can never be mistaken for a success.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = errx.New("[result]: failure constructed with nil error")
	}
	return Result[T]{err: err}
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// IsFailure reports whether r holds a failure.
func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// Value returns the success value, or the zero value of T for failures.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure, or nil for successes.
func (r Result[T]) Err() error {
	return r.err
}

// Get unpacks r into the conventional (value, error) pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// ValueOr returns the success value, or fallback for failures.
func (r Result[T]) ValueOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// Map applies f to the success value of r. Failures are returned unchanged.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Success(f(r.value))
}

// FlatMap applies f to the success value of r and returns its Result.
// Failures are returned unchanged without calling f.
func FlatMap[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return f(r.value)
}
