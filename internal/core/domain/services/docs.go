// Package services provides domain services of the ordering core: business rules that
// do not belong to a single aggregate.
//
// The package includes:
//   - StatusTransitionEngine: the table-driven, role-scoped state machine deciding who
//     may move an order between which statuses, and with which side effects
//
// Services are pure: they take domain values, return decisions, and leave persistence
// to the application layer.
package services
