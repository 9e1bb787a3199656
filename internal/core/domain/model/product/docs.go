// Package product models the stock side of catalog items: the Product entity with its
// reserve and release operations, and the Reservation snapshot handed to the order
// factory. Ledger adapters (in-memory and PostgreSQL) enforce the same rule as
// Product.Reserve: a reservation succeeds only if enough units are available, and it
// never leaves quantity negative.
package product
