package models

import "errors"

// CheckoutState tracks a single checkout attempt. Confirmed is terminal;
// a fresh attempt needs a new snapshot.
type CheckoutState string

const (
	CheckoutStateNoSnapshot CheckoutState = "NO_SNAPSHOT"
	CheckoutStateFormEntry  CheckoutState = "FORM_ENTRY"
	CheckoutStateSubmitting CheckoutState = "SUBMITTING"
	CheckoutStateConfirmed  CheckoutState = "CONFIRMED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateConfirmed
}

func (s CheckoutState) String() string {
	return string(s)
}

const (
	PaymentCashOnDelivery = "cod"
	PaymentInstallments   = "installment"
)

// CheckoutSnapshot captures the cart and fulfillment selection at the moment
// the shopper proceeds to checkout. It is consumed exactly once.
type CheckoutSnapshot struct {
	Items        Cart   `json:"items"`
	SelectedCity string `json:"selectedCity"`
	Subtotal     int    `json:"subtotal"`
}

// OrderForm holds the checkout page form. It lives only for the duration of
// the checkout attempt and is never persisted.
type OrderForm struct {
	FirstName     string `json:"first_name" form:"first_name" binding:"required"`
	LastName      string `json:"last_name" form:"last_name" binding:"required"`
	Email         string `json:"email" form:"email" binding:"required,email"`
	Phone         string `json:"phone" form:"phone" binding:"required"`
	Address       string `json:"address" form:"address" binding:"required"`
	City          string `json:"city" form:"city" binding:"required"`
	PostalCode    string `json:"postal_code" form:"postal_code" binding:"required"`
	PaymentMethod string `json:"payment_method" form:"payment_method" binding:"omitempty,oneof=cod installment"`
}

// Validate checks the required contact and shipping fields. The HTTP layer
// runs binding validation too; this keeps the rule enforceable when the flow
// is driven directly.
func (f OrderForm) Validate() error {
	if f.FirstName == "" || f.LastName == "" || f.Email == "" || f.Phone == "" ||
		f.Address == "" || f.City == "" || f.PostalCode == "" {
		return errors.New("all required fields must be filled")
	}
	switch f.PaymentMethod {
	case "", PaymentCashOnDelivery, PaymentInstallments:
		return nil
	default:
		return errors.New("invalid payment method")
	}
}

// Cities available for fulfillment selection on the cart page.
var Cities = []string{"karachi", "lahore", "islamabad", "rawalpindi"}

func IsValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}
