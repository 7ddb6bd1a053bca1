package checkout

import (
	"testing"

	"clavis/models"
)

func validBilling() models.BillingInfo {
	return models.BillingInfo{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Company:  "Analytical Engines Ltd",
		Phone:    "+39 02 1234 5678",
		Address:  "Via Roma 1",
		City:     "Milano",
		Country:  "Italy",
		VAT:      "IT12345678901",
	}
}

func validCard() models.PaymentInfo {
	return models.PaymentInfo{
		Method: "card",
		Card: &models.CardInfo{
			Number: "4111111111111111",
			Expiry: "12/27",
			CVV:    "123",
			Holder: "Ada Lovelace",
		},
	}
}

func validInvoice() models.PaymentInfo {
	return models.PaymentInfo{
		Method: "invoice",
		Invoice: &models.InvoiceInfo{
			PECEmail:       "pec@example.com",
			SDICode:        "ABC1234",
			VATNumber:      "IT12345678901",
			BillingContact: "billing@example.com",
		},
	}
}

func TestValidCardCheckoutHasNoErrors(t *testing.T) {
	errs := Validate(validBilling(), validCard(), "card", true)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidInvoiceCheckoutHasNoErrors(t *testing.T) {
	errs := Validate(validBilling(), validInvoice(), "invoice", true)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestRequiredBillingFields(t *testing.T) {
	billing := validBilling()
	billing.FullName = "   "
	billing.Company = ""
	billing.City = "\t"

	errs := Validate(billing, validCard(), "card", true)
	for _, field := range []string{"fullName", "company", "city"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for %s", field)
		}
	}
}

func TestEmailPattern(t *testing.T) {
	cases := map[string]bool{
		"ada@example.com": true,
		"ada@example":     false,
		"ada example.com": false,
		"@example.com":    false,
		"":                false,
	}
	for email, ok := range cases {
		billing := validBilling()
		billing.Email = email
		_, hasErr := Validate(billing, validCard(), "card", true)["email"]
		if hasErr == ok {
			t.Errorf("email %q: expected valid=%v, got error=%v", email, ok, hasErr)
		}
	}
}

func TestPhonePattern(t *testing.T) {
	cases := map[string]bool{
		"+39 02 1234 5678": true,
		"(02) 123-456":     true,
		"12345":            false, // fewer than 6 digits
		"phone":            false,
		"":                 false,
	}
	for phone, ok := range cases {
		billing := validBilling()
		billing.Phone = phone
		_, hasErr := Validate(billing, validCard(), "card", true)["phone"]
		if hasErr == ok {
			t.Errorf("phone %q: expected valid=%v, got error=%v", phone, ok, hasErr)
		}
	}
}

func TestTermsMustBeAccepted(t *testing.T) {
	errs := Validate(validBilling(), validCard(), "card", false)
	if _, ok := errs["terms"]; !ok {
		t.Fatal("expected terms error when not accepted")
	}
}

func TestCardFieldsRequiredOnlyForCardMethod(t *testing.T) {
	payment := validCard()
	payment.Card.Number = ""

	errs := Validate(validBilling(), payment, "card", true)
	if _, ok := errs["cardNumber"]; !ok {
		t.Fatal("expected cardNumber error for empty card number")
	}

	// same empty card is irrelevant under paypal
	payment.Method = "paypal"
	errs = Validate(validBilling(), payment, "paypal", true)
	if _, ok := errs["cardNumber"]; ok {
		t.Fatal("cardNumber must not be checked for method paypal")
	}
}

func TestCardNumberErrorRegardlessOfOtherFields(t *testing.T) {
	// card.number empty and billing broken too: both errors reported
	billing := validBilling()
	billing.FullName = ""
	payment := validCard()
	payment.Card.Number = ""

	errs := Validate(billing, payment, "card", true)
	if _, ok := errs["cardNumber"]; !ok {
		t.Fatal("expected cardNumber error")
	}
	if _, ok := errs["fullName"]; !ok {
		t.Fatal("expected fullName error alongside cardNumber")
	}
}

func TestMissingCardRecord(t *testing.T) {
	errs := Validate(validBilling(), models.PaymentInfo{Method: "card"}, "card", true)
	for _, field := range []string{"cardNumber", "cardExpiry", "cardCvv", "cardHolder"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for %s with absent card record", field)
		}
	}
}

func TestSDICodeLength(t *testing.T) {
	cases := map[string]bool{
		"ABC1234":  true,
		"AB12":     false,
		"ABC12345": false,
		"ABC 123":  false,
		"":         false,
	}
	for code, ok := range cases {
		payment := validInvoice()
		payment.Invoice.SDICode = code
		_, hasErr := Validate(validBilling(), payment, "invoice", true)["sdiCode"]
		if hasErr == ok {
			t.Errorf("sdiCode %q: expected valid=%v, got error=%v", code, ok, hasErr)
		}
	}
}

func TestInvoiceVATNumber(t *testing.T) {
	cases := map[string]bool{
		"IT12345678901": true,
		"12345678901":   true,
		"IT123":         false,
		"DE12345678901": false,
		"":              false,
	}
	for vat, ok := range cases {
		payment := validInvoice()
		payment.Invoice.VATNumber = vat
		_, hasErr := Validate(validBilling(), payment, "invoice", true)["vatNumber"]
		if hasErr == ok {
			t.Errorf("vatNumber %q: expected valid=%v, got error=%v", vat, ok, hasErr)
		}
	}
}

func TestInvoiceFieldsNotCheckedForOtherMethods(t *testing.T) {
	errs := Validate(validBilling(), models.PaymentInfo{Method: "gpay"}, "gpay", true)
	for _, field := range []string{"pecEmail", "sdiCode", "vatNumber", "billingContact"} {
		if _, ok := errs[field]; ok {
			t.Errorf("%s must not be checked for method gpay", field)
		}
	}
}
