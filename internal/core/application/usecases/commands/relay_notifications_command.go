package commands

import (
	"errors"
	"math"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrRelayNotificationsCommandIsNotConstructed = errors.New(
		"RelayNotificationsCommand must be created via NewRelayNotificationsCommand constructor",
	)
)

// RelayNotificationsCommand asks to deliver up to BatchSize pending outbox messages.
type RelayNotificationsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayNotificationsCommand(batchSize int) (RelayNotificationsCommand, error) {
	if batchSize < 1 {
		return RelayNotificationsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, math.MaxInt32)
	}

	return RelayNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RelayNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrRelayNotificationsCommandIsNotConstructed)
}

func (c RelayNotificationsCommand) BatchSize() int {
	return c.batchSize
}
