// Package kernel holds the value objects shared by every aggregate of the ordering core.
//
// The package includes:
//   - UUID: identifier of orders, products, customers and restaurants
//   - Money: exact, non-negative decimal amounts used for prices and totals
//   - Role and Principal: the authenticated caller and its permission class
//   - DomainEvent: the contract for facts recorded by aggregates and relayed via the outbox
//
// All types are immutable values. Their zero values are invalid and are reported as
// such by Validate, which lets aggregates reject half-initialized inputs.
package kernel
