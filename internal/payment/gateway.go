package payment

import "context"

// StatusSuccess is the only gateway verdict that confirms a booking.
const StatusSuccess = "Success"

// Gateway is the payment-provider contract. The lifecycle trusts its
// verdicts only, never client input.
type Gateway interface {
	// CreateOrder registers the order and returns the checkout session
	// token the frontend needs.
	CreateOrder(
		ctx context.Context,
		orderID string,
		amount float64,
		currency string,
		customerRef string,
		phone string,
	) (string, error)

	// GetPaymentStatus returns StatusSuccess for a settled payment and
	// the provider's raw status otherwise.
	GetPaymentStatus(
		ctx context.Context,
		orderID string,
	) (string, error)
}
