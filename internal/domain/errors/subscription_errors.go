package errors

import "errors"

var (
	// ErrPaymentNotFound indicates that no payment exists for the given gateway order id
	ErrPaymentNotFound = errors.New("Payment record not found")

	// ErrPaymentAlreadySettled indicates that the payment failed and cannot be verified again
	ErrPaymentAlreadySettled = errors.New("Payment is no longer payable")
)

// ErrPaymentNotCompleted indicates that the gateway has not confirmed the payment
var ErrPaymentNotCompleted = errors.New("Payment has not been completed")
