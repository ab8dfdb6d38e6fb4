package checkout

import "errors"

var (
	ErrMissingFields        = errors.New("all required fields must be filled")
	ErrMissingCardData      = errors.New("card number, holder name, expiry and cvv are required")
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrNoPixBinding         = errors.New("no pix payload bound to this product")
	ErrIllegalTransition    = errors.New("illegal transition of checkout step")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)
