// Package errs provides the typed errors shared by the ordering core and its adapters.
//
// Validation errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
// VersionIsInvalidError) describe malformed input. ObjectNotFoundError covers failed
// lookups. The business errors in business.go describe why a well-formed request was
// refused:
//   - ForbiddenError: the principal's role or ownership does not allow the action
//   - InsufficientStockError: a product could not be reserved in the requested quantity
//   - ConflictError: a uniqueness clash or a lost optimistic-concurrency race
//   - InvalidStateError: the order is in a state that forbids the operation
//   - UnavailableError: a transient persistence failure the caller may retry
//
// Each type follows the same shape: a sentinel error variable, a struct carrying the
// details, New… constructors with and without a cause, and an Unwrap method returning
// the sentinel so that errors.Is can classify errors at the transport boundary.
package errs
