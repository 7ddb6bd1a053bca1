package checkout

import (
	"regexp"
	"strings"

	"clavis/models"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9\s().\-]+$`)
	phoneDigit = regexp.MustCompile(`[0-9]`)
	sdiRe      = regexp.MustCompile(`^[A-Za-z0-9]{7}$`)
	vatNumRe   = regexp.MustCompile(`^(IT)?[0-9]{11}$`)
)

// Validate maps a checkout form snapshot to field-level errors. Every
// rule is checked independently; an empty map means the form is valid.
// Card fields are only checked when method is "card", invoice fields
// only when method is "invoice". Pure: no network or storage access.
func Validate(billing models.BillingInfo, payment models.PaymentInfo, method string, termsAccepted bool) map[string]string {
	errs := map[string]string{}

	requireNonEmpty(errs, "fullName", billing.FullName, "Full name is required")
	requireNonEmpty(errs, "company", billing.Company, "Company is required")
	requireNonEmpty(errs, "address", billing.Address, "Address is required")
	requireNonEmpty(errs, "city", billing.City, "City is required")
	requireNonEmpty(errs, "country", billing.Country, "Country is required")
	requireNonEmpty(errs, "vat", billing.VAT, "VAT number is required")

	if !emailRe.MatchString(strings.TrimSpace(billing.Email)) {
		errs["email"] = "Enter a valid email address"
	}

	phone := strings.TrimSpace(billing.Phone)
	if !phoneRe.MatchString(phone) || len(phoneDigit.FindAllString(phone, -1)) < 6 {
		errs["phone"] = "Enter a valid phone number"
	}

	if !termsAccepted {
		errs["terms"] = "You must accept the terms and conditions"
	}

	switch method {
	case "card":
		card := models.CardInfo{}
		if payment.Card != nil {
			card = *payment.Card
		}
		requireNonEmpty(errs, "cardNumber", card.Number, "Card number is required")
		requireNonEmpty(errs, "cardExpiry", card.Expiry, "Expiry date is required")
		requireNonEmpty(errs, "cardCvv", card.CVV, "CVV is required")
		requireNonEmpty(errs, "cardHolder", card.Holder, "Cardholder name is required")

	case "invoice":
		inv := models.InvoiceInfo{}
		if payment.Invoice != nil {
			inv = *payment.Invoice
		}
		if !emailRe.MatchString(strings.TrimSpace(inv.PECEmail)) {
			errs["pecEmail"] = "Enter a valid PEC email address"
		}
		if !emailRe.MatchString(strings.TrimSpace(inv.BillingContact)) {
			errs["billingContact"] = "Enter a valid billing contact email"
		}
		if !sdiRe.MatchString(strings.TrimSpace(inv.SDICode)) {
			errs["sdiCode"] = "SDI code must be exactly 7 alphanumeric characters"
		}
		if !vatNumRe.MatchString(strings.TrimSpace(inv.VATNumber)) {
			errs["vatNumber"] = "Enter a valid VAT number (11 digits, optional IT prefix)"
		}
	}

	return errs
}

func requireNonEmpty(errs map[string]string, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = msg
	}
}
