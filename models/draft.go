package models

import (
	"fmt"
	"strconv"
	"strings"
)

// OrderDraft is a working copy of the editable fields of an Order,
// alive only while an administrator is editing. Items are edited as
// newline-separated text and parsed back at save time.
type OrderDraft struct {
	OrderID      string      `json:"orderId"`
	Status       string      `json:"status"`
	ItemsText    string      `json:"itemsText"`
	PricePerItem float64     `json:"pricePerItem"`
	Currency     string      `json:"currency"`
	Billing      BillingInfo `json:"billing"`
	Method       string      `json:"method"`
	Card         CardInfo    `json:"card"`
	Invoice      InvoiceInfo `json:"invoice"`
}

// NewOrderDraft derives a draft from a canonical order, filling
// defaults where the order is silent (method defaults to "card").
func NewOrderDraft(order Order) *OrderDraft {
	d := &OrderDraft{
		OrderID:      order.OrderID,
		Status:       order.Status,
		ItemsText:    strings.Join(order.Items, "\n"),
		PricePerItem: order.Totals.PricePerItem,
		Currency:     order.Totals.Currency,
		Billing:      order.Billing,
		Method:       order.Payment.Method,
	}
	if d.Method == "" {
		d.Method = "card"
	}
	if order.Payment.Card != nil {
		d.Card = *order.Payment.Card
	}
	if order.Payment.Invoice != nil {
		d.Invoice = *order.Payment.Invoice
	}
	return d
}

// Items parses the draft item text: one item per line, trimmed, blank
// lines dropped.
func (d *OrderDraft) Items() []string {
	items := []string{}
	for _, line := range strings.Split(d.ItemsText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

// Apply sets a single draft field addressed by a dotted path. Paths
// mirror the order schema (status, itemsText, pricePerItem, currency,
// billing.*, payment.method, payment.card.*, payment.invoice.*).
// No validation happens here; that is deferred to save.
func (d *OrderDraft) Apply(path, value string) error {
	switch path {
	case "status":
		d.Status = value
	case "itemsText":
		d.ItemsText = value
	case "currency":
		d.Currency = value
	case "pricePerItem":
		price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("pricePerItem: %w", err)
		}
		d.PricePerItem = price
	case "billing.fullName":
		d.Billing.FullName = value
	case "billing.email":
		d.Billing.Email = value
	case "billing.company":
		d.Billing.Company = value
	case "billing.phone":
		d.Billing.Phone = value
	case "billing.address":
		d.Billing.Address = value
	case "billing.city":
		d.Billing.City = value
	case "billing.country":
		d.Billing.Country = value
	case "billing.vat":
		d.Billing.VAT = value
	case "payment.method":
		d.Method = value
	case "payment.card.number":
		d.Card.Number = value
	case "payment.card.expiry":
		d.Card.Expiry = value
	case "payment.card.cvv":
		d.Card.CVV = value
	case "payment.card.holder":
		d.Card.Holder = value
	case "payment.invoice.pecEmail":
		d.Invoice.PECEmail = value
	case "payment.invoice.sdiCode":
		d.Invoice.SDICode = value
	case "payment.invoice.vatNumber":
		d.Invoice.VATNumber = value
	case "payment.invoice.billingContact":
		d.Invoice.BillingContact = value
	default:
		return fmt.Errorf("unknown draft field %q", path)
	}
	return nil
}

// Payment builds the payment payload for the selected method: only the
// matching sub-record is carried, the other is dropped. Switching the
// method away and back therefore discards the sub-object in the saved
// order while the draft still holds both.
func (d *OrderDraft) Payment() PaymentInfo {
	p := PaymentInfo{Method: d.Method}
	switch d.Method {
	case "card":
		card := d.Card
		p.Card = &card
	case "invoice":
		inv := d.Invoice
		p.Invoice = &inv
	}
	return p
}
