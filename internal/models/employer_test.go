package models_test

import (
	"testing"

	"github.com/colourful-jobs/platform-backend/internal/models"
)

// Checkout may only invoice a credit shortfall when every billing field is
// populated; a submit that would need an invoice is rejected otherwise.
func TestInvoiceDetailsComplete(t *testing.T) {
	full := models.Employer{
		BillingStreet:     "Keizersgracht 1",
		BillingPostalCode: "1015 CJ",
		BillingCity:       "Amsterdam",
		InvoiceEmail:      "facturen@groenbedrijf.nl",
	}

	cases := []struct {
		name   string
		mutate func(e *models.Employer)
		want   bool
	}{
		{"all fields set", func(e *models.Employer) {}, true},
		{"missing street", func(e *models.Employer) { e.BillingStreet = "" }, false},
		{"missing postal code", func(e *models.Employer) { e.BillingPostalCode = "" }, false},
		{"missing city", func(e *models.Employer) { e.BillingCity = "" }, false},
		{"missing invoice email", func(e *models.Employer) { e.InvoiceEmail = "" }, false},
	}
	for _, c := range cases {
		e := full
		c.mutate(&e)
		if got := e.InvoiceDetailsComplete(); got != c.want {
			t.Errorf("%s: InvoiceDetailsComplete() = %v, want %v", c.name, got, c.want)
		}
	}

	var empty models.Employer
	if empty.InvoiceDetailsComplete() {
		t.Error("zero-value employer must not be invoiceable")
	}
}
