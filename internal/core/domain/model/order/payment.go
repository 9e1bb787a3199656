package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// PaymentStatus is a label only: the ordering core records whether an order was paid
// but never captures payments itself.
type PaymentStatus int

const (
	// UnknownPaymentStatus also means "no payment change requested".
	UnknownPaymentStatus PaymentStatus = iota
	Unpaid
	Paid
)

func getPaymentStatusCodes() map[PaymentStatus]string {
	//nolint:exhaustive // UnknownPaymentStatus is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		Unpaid: "unpaid",
		Paid:   "paid",
	}
}

// ParsePaymentStatus maps "unpaid" or "paid" to a PaymentStatus.
func ParsePaymentStatus(code string) (PaymentStatus, error) {
	for status, c := range getPaymentStatusCodes() {
		if c == code {
			return status, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a valid payment status", code),
	)
}

func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusCodes()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// Code returns the wire code, "" for invalid values.
func (p PaymentStatus) Code() string {
	return getPaymentStatusCodes()[p]
}

func (p PaymentStatus) String() string {
	if code, ok := getPaymentStatusCodes()[p]; ok {
		return code
	}
	return "unknown"
}

// PaymentMethod is how the customer intends to pay at pickup.
type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	Cash
	CreditCard
	DebitCard
	Pix
	PayAtCounter
)

func getPaymentMethodCodes() map[PaymentMethod]string {
	//nolint:exhaustive // UnknownPaymentMethod is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		Cash:         "cash",
		CreditCard:   "credit_card",
		DebitCard:    "debit_card",
		Pix:          "pix",
		PayAtCounter: "pay_at_counter",
	}
}

// ParsePaymentMethod maps a wire code such as "credit_card" to a PaymentMethod.
func ParsePaymentMethod(code string) (PaymentMethod, error) {
	for method, c := range getPaymentMethodCodes() {
		if c == code {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod",
		fmt.Errorf("%q is not a supported payment method", code),
	)
}

func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodCodes()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a supported payment method", m))
	}
	return nil
}

func (m PaymentMethod) Code() string {
	return getPaymentMethodCodes()[m]
}

func (m PaymentMethod) String() string {
	if code, ok := getPaymentMethodCodes()[m]; ok {
		return code
	}
	return "unknown"
}
