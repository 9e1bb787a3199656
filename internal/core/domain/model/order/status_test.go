package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range append(order.ActiveStatuses(), order.TerminalStatuses()...) {
		require.NoError(t, s.Validate(), s.String())
	}

	for _, s := range []order.Status{order.Unknown, order.Status(99), order.Status(-1)} {
		err := s.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "is not a valid status")
	}
}

func TestStatus_StringAndCode(t *testing.T) {
	tests := []struct {
		status order.Status
		name   string
		code   string
	}{
		{order.Pending, "Pending", "pending"},
		{order.InPreparation, "InPreparation", "in_preparation"},
		{order.ReadyForPickup, "ReadyForPickup", "ready_for_pickup"},
		{order.Completed, "Completed", "completed"},
		{order.Cancelled, "Cancelled", "cancelled"},
		{order.Unknown, "Unknown", ""},
		{order.Status(42), "Unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.status.String())
			assert.Equal(t, tt.code, tt.status.Code())
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("ready_for_pickup")
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForPickup, s)

	_, err = order.ParseStatus("ReadyForPickup")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range order.TerminalStatuses() {
		assert.True(t, s.IsTerminal(), s.String())
	}
	for _, s := range order.ActiveStatuses() {
		assert.False(t, s.IsTerminal(), s.String())
	}
	assert.False(t, order.Unknown.IsTerminal())
}
