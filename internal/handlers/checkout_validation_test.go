package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// A fixed "now" keeps the delivery window deterministic.
var checkoutNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func validInput() CheckoutInput {
	return CheckoutInput{
		Name:         "María Pérez",
		Phone:        "+56 9 1234 5678",
		Email:        "maria@example.com",
		Address:      "Av. Providencia 1234, Santiago",
		DeliveryDate: "2026-09-15",
	}
}

func TestValidateCheckoutAcceptsValidForm(t *testing.T) {
	assert.Empty(t, validateCheckout(validInput(), checkoutNow))
}

func TestValidateCheckoutRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CheckoutInput)
		field  string
	}{
		{"empty name", func(in *CheckoutInput) { in.Name = "" }, "name"},
		{"name with digits", func(in *CheckoutInput) { in.Name = "Maria2" }, "name"},
		{"name with symbols", func(in *CheckoutInput) { in.Name = "Maria_Perez" }, "name"},
		{"empty phone", func(in *CheckoutInput) { in.Phone = "" }, "phone"},
		{"phone under 8 digits", func(in *CheckoutInput) { in.Phone = "1234567" }, "phone"},
		{"phone padded with separators", func(in *CheckoutInput) { in.Phone = "+1-2-3-4-5-6-7" }, "phone"},
		{"empty email", func(in *CheckoutInput) { in.Email = "" }, "email"},
		{"malformed email", func(in *CheckoutInput) { in.Email = "no-at-sign" }, "email"},
		{"email without domain dot", func(in *CheckoutInput) { in.Email = "a@b" }, "email"},
		{"empty address", func(in *CheckoutInput) { in.Address = "" }, "address"},
		{"empty date", func(in *CheckoutInput) { in.DeliveryDate = "" }, "deliveryDate"},
		{"unparseable date", func(in *CheckoutInput) { in.DeliveryDate = "15/09/2026" }, "deliveryDate"},
		{"date in the past", func(in *CheckoutInput) { in.DeliveryDate = "2026-08-31" }, "deliveryDate"},
		{"date beyond one month", func(in *CheckoutInput) { in.DeliveryDate = "2026-10-02" }, "deliveryDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			errs := validateCheckout(in, checkoutNow)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestValidateCheckoutWindowBoundaries(t *testing.T) {
	in := validInput()

	// Same-day delivery is in.
	in.DeliveryDate = "2026-09-01"
	assert.Empty(t, validateCheckout(in, checkoutNow))

	// Exactly one month ahead is still in.
	in.DeliveryDate = "2026-10-01"
	assert.Empty(t, validateCheckout(in, checkoutNow))
}

func TestValidateCheckoutAccentedNames(t *testing.T) {
	in := validInput()
	in.Name = "José Ñuñez Müller"
	assert.Empty(t, validateCheckout(in, checkoutNow))
}

func TestValidateCheckoutReportsAllFields(t *testing.T) {
	errs := validateCheckout(CheckoutInput{}, checkoutNow)
	assert.Len(t, errs, 5, "every empty field gets its own message")
}
