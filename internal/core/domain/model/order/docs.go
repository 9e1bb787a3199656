// Package order provides the Order aggregate of the restaurant ordering core.
//
// The package includes:
//   - Order: the aggregate root holding the line-item snapshot, total, status and payment label
//   - LineItem: an immutable product/name/price/quantity snapshot
//   - Status, PaymentStatus, PaymentMethod: int enums with wire codes
//   - Number: the short human-readable order code and its generator
//   - ReadyForPickupEvent: the domain event behind customer notifications
//
// Key business rules:
//   - Orders start Pending and Unpaid; the total is fixed at creation
//   - Completed and Cancelled are terminal; a terminal order cannot change
//   - Who may change what is decided by services.StatusTransitionEngine and applied
//     through Order.ApplyTransition
//   - Only the owning restaurant or an admin may delete an order, and only once it is terminal
package order
