package domain

import (
	"strconv"
	"strings"

	"github.com/Sule971/luxe-vogue-boutique/pkg/validator"
)

// CheckoutState is the state of the checkout orchestrator.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSucceeded  CheckoutState = "succeeded"
	CheckoutFailed     CheckoutState = "failed"
)

// Pricing constants, in cents.
const (
	ShippingCost int64 = 1500

	PromoCode            = "luxe10"
	PromoDiscountPercent = 10
)

// CheckoutForm is the shipping and payment form submitted at checkout.
type CheckoutForm struct {
	FullName      string `json:"full_name" validate:"notblank"`
	StreetAddress string `json:"street_address" validate:"notblank"`
	City          string `json:"city" validate:"notblank"`
	County        string `json:"county" validate:"notblank"`
	PostalCode    string `json:"postal_code" validate:"notblank"`
	PhoneNumber   string `json:"phone_number" validate:"notblank"`
	MpesaNumber   string `json:"mpesa_number" validate:"required,min=10,kephone"`
	PromoCode     string `json:"promo_code,omitempty"`
}

// Address returns the shipping address part of the form.
func (f CheckoutForm) Address() Address {
	return Address{
		FullName:      strings.TrimSpace(f.FullName),
		StreetAddress: strings.TrimSpace(f.StreetAddress),
		City:          strings.TrimSpace(f.City),
		County:        strings.TrimSpace(f.County),
		PostalCode:    strings.TrimSpace(f.PostalCode),
		PhoneNumber:   strings.TrimSpace(f.PhoneNumber),
	}
}

// Summary is the order summary panel. Amounts are in cents.
type Summary struct {
	Lines        int   `json:"lines"`
	Subtotal     int64 `json:"subtotal"`
	Shipping     int64 `json:"shipping"`
	Discount     int64 `json:"discount"`
	Total        int64 `json:"total"`
	PromoApplied bool  `json:"promo_applied"`
}

// Summarize prices lines with flat shipping and an optional promo code.
func Summarize(lines Lines, promo string) Summary {
	subtotal := lines.Subtotal()
	discount := Discount(subtotal, promo)
	return Summary{
		Lines:        len(lines),
		Subtotal:     subtotal,
		Shipping:     ShippingCost,
		Discount:     discount,
		Total:        subtotal + ShippingCost - discount,
		PromoApplied: discount > 0,
	}
}

// Discount returns the promo discount on subtotal, rounded half up to the
// nearest cent. Unknown codes give no discount.
func Discount(subtotal int64, promo string) int64 {
	if !strings.EqualFold(strings.TrimSpace(promo), PromoCode) {
		return 0
	}
	return (subtotal*PromoDiscountPercent + 50) / 100
}

// FormatAmount rounds cents half up to a whole currency unit and formats it
// as an integer string, e.g. 26500 -> "265" and 26550 -> "266".
func FormatAmount(cents int64) string {
	if cents < 0 {
		cents = 0
	}
	return strconv.FormatInt((cents+50)/100, 10)
}

// NormalizePhone is the number the payment request is sent to, e.g.
// "0712 345 678" -> "+254712345678".
func NormalizePhone(raw string) string {
	return validator.NormalizePhone(raw)
}
