package services_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitionEngine_Evaluate(t *testing.T) {
	engine := services.NewStatusTransitionEngine()

	tests := []struct {
		name    string
		req     services.TransitionRequest
		want    services.TransitionOutcome
		wantErr error
	}{
		{
			name: "client completes ready order and it becomes paid",
			req: services.TransitionRequest{
				Current: order.ReadyForPickup, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Completed, Actor: kernel.RoleClient, IsOwner: true,
			},
			want: services.TransitionOutcome{Status: order.Completed, PaymentStatus: order.Paid},
		},
		{
			name: "client cannot complete pending order",
			req: services.TransitionRequest{
				Current: order.Pending, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Completed, Actor: kernel.RoleClient, IsOwner: true,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "client cannot cancel",
			req: services.TransitionRequest{
				Current: order.Pending, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Cancelled, Actor: kernel.RoleClient, IsOwner: true,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "client cannot set payment status",
			req: services.TransitionRequest{
				Current: order.ReadyForPickup, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Completed, RequestedPaymentStatus: order.Paid,
				Actor: kernel.RoleClient, IsOwner: true,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "client of another customer's order",
			req: services.TransitionRequest{
				Current: order.ReadyForPickup, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Completed, Actor: kernel.RoleClient, IsOwner: false,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "restaurant starts preparation",
			req: services.TransitionRequest{
				Current: order.Pending, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.InPreparation, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			want: services.TransitionOutcome{Status: order.InPreparation, PaymentStatus: order.Unpaid},
		},
		{
			name: "restaurant marks ready and notifies",
			req: services.TransitionRequest{
				Current: order.InPreparation, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.ReadyForPickup, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			want: services.TransitionOutcome{Status: order.ReadyForPickup, PaymentStatus: order.Unpaid, Notify: true},
		},
		{
			name: "restaurant re-marking ready does not notify twice",
			req: services.TransitionRequest{
				Current: order.ReadyForPickup, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.ReadyForPickup, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			want: services.TransitionOutcome{Status: order.ReadyForPickup, PaymentStatus: order.Unpaid},
		},
		{
			name: "restaurant cancels pending order",
			req: services.TransitionRequest{
				Current: order.Pending, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Cancelled, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			want: services.TransitionOutcome{Status: order.Cancelled, PaymentStatus: order.Unpaid},
		},
		{
			name: "restaurant may move backwards",
			req: services.TransitionRequest{
				Current: order.ReadyForPickup, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.InPreparation, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			want: services.TransitionOutcome{Status: order.InPreparation, PaymentStatus: order.Unpaid},
		},
		{
			name: "restaurant cannot complete",
			req: services.TransitionRequest{
				Current: order.ReadyForPickup, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Completed, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "restaurant cannot move back to pending",
			req: services.TransitionRequest{
				Current: order.InPreparation, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Pending, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "restaurant updates payment only",
			req: services.TransitionRequest{
				Current: order.InPreparation, CurrentPaymentStatus: order.Unpaid,
				RequestedPaymentStatus: order.Paid, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			want: services.TransitionOutcome{Status: order.InPreparation, PaymentStatus: order.Paid},
		},
		{
			name: "restaurant updates status and payment together",
			req: services.TransitionRequest{
				Current: order.Pending, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.ReadyForPickup, RequestedPaymentStatus: order.Paid,
				Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			want: services.TransitionOutcome{Status: order.ReadyForPickup, PaymentStatus: order.Paid, Notify: true},
		},
		{
			name: "other restaurant",
			req: services.TransitionRequest{
				Current: order.Pending, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Cancelled, Actor: kernel.RoleRestaurant, IsOwner: false,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "admin has no status policy",
			req: services.TransitionRequest{
				Current: order.Pending, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Cancelled, Actor: kernel.RoleAdmin, IsOwner: true,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "owner mutating completed order",
			req: services.TransitionRequest{
				Current: order.Completed, CurrentPaymentStatus: order.Paid,
				RequestedStatus: order.InPreparation, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			wantErr: errs.ErrInvalidState,
		},
		{
			name: "owner changing payment of cancelled order",
			req: services.TransitionRequest{
				Current: order.Cancelled, CurrentPaymentStatus: order.Unpaid,
				RequestedPaymentStatus: order.Paid, Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			wantErr: errs.ErrInvalidState,
		},
		{
			name: "client completing an already completed order",
			req: services.TransitionRequest{
				Current: order.Completed, CurrentPaymentStatus: order.Paid,
				RequestedStatus: order.Completed, Actor: kernel.RoleClient, IsOwner: true,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "client completing a cancelled order",
			req: services.TransitionRequest{
				Current: order.Cancelled, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Completed, Actor: kernel.RoleClient, IsOwner: true,
			},
			wantErr: errs.ErrForbidden,
		},
		{
			name: "nothing requested",
			req: services.TransitionRequest{
				Current: order.Pending, CurrentPaymentStatus: order.Unpaid,
				Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			wantErr: errs.ErrValueIsRequired,
		},
		{
			name: "out of range status",
			req: services.TransitionRequest{
				Current: order.Pending, CurrentPaymentStatus: order.Unpaid,
				RequestedStatus: order.Status(77), Actor: kernel.RoleRestaurant, IsOwner: true,
			},
			wantErr: errs.ErrValueIsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Evaluate(tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, services.TransitionOutcome{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusTransitionEngine_TerminalStatesAreFinal(t *testing.T) {
	engine := services.NewStatusTransitionEngine()
	targets := append(order.ActiveStatuses(), order.TerminalStatuses()...)
	wantByRole := map[kernel.Role]error{
		kernel.RoleRestaurant: errs.ErrInvalidState,
		kernel.RoleClient:     errs.ErrForbidden,
	}

	for _, current := range order.TerminalStatuses() {
		for role, wantErr := range wantByRole {
			for _, target := range targets {
				_, err := engine.Evaluate(services.TransitionRequest{
					Current:         current,
					RequestedStatus: target,
					Actor:           role,
					IsOwner:         true,
				})
				require.ErrorIs(t, err, wantErr, "%s %s -> %s", role, current, target)
			}
		}
	}
}
