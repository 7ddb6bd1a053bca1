package models

import "time"

// User is an authenticated account. Role is either "user" or "admin".
type User struct {
	UserID    string    `json:"userId" bson:"userId"`
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email" bson:"email"`
	Role      string    `json:"role" bson:"role"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"-" bson:"last_login,omitempty"`
}

// BillingInfo carries the checkout billing fields. All of them are
// required for a valid checkout.
type BillingInfo struct {
	FullName string `json:"fullName" bson:"fullName"`
	Email    string `json:"email" bson:"email"`
	Company  string `json:"company" bson:"company"`
	Phone    string `json:"phone" bson:"phone"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`
	Country  string `json:"country" bson:"country"`
	VAT      string `json:"vat" bson:"vat"`
}

// CardInfo is the card sub-record, present only when the payment
// method is "card".
type CardInfo struct {
	Number string `json:"number" bson:"number"`
	Expiry string `json:"expiry" bson:"expiry"`
	CVV    string `json:"cvv" bson:"cvv"`
	Holder string `json:"holder" bson:"holder"`
}

// InvoiceInfo is the e-invoicing sub-record, present only when the
// payment method is "invoice".
type InvoiceInfo struct {
	PECEmail       string `json:"pecEmail" bson:"pecEmail"`
	SDICode        string `json:"sdiCode" bson:"sdiCode"`
	VATNumber      string `json:"vatNumber" bson:"vatNumber"`
	BillingContact string `json:"billingContact" bson:"billingContact"`
}

// PaymentInfo is tagged by Method; Card and Invoice are nil unless the
// matching method is selected.
type PaymentInfo struct {
	Method  string       `json:"method" bson:"method"`
	Card    *CardInfo    `json:"card,omitempty" bson:"card,omitempty"`
	Invoice *InvoiceInfo `json:"invoice,omitempty" bson:"invoice,omitempty"`
}

// OrderTotals. Subtotal is always PricePerItem times the item count and
// is recomputed whenever either side changes.
type OrderTotals struct {
	Subtotal     float64 `json:"subtotal" bson:"subtotal"`
	PricePerItem float64 `json:"pricePerItem" bson:"pricePerItem"`
	Currency     string  `json:"currency" bson:"currency"`
}

// Order is the canonical, persisted order. Items are opaque descriptive
// strings of the form "<title> (<implementation type>, <n> users)".
type Order struct {
	OrderID   string      `json:"orderId" bson:"orderId"`
	UserID    string      `json:"userId" bson:"userId"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
	Items     []string    `json:"items" bson:"items"`
	Totals    OrderTotals `json:"totals" bson:"totals"`
	Billing   BillingInfo `json:"billing" bson:"billing"`
	Payment   PaymentInfo `json:"payment" bson:"payment"`
	Status    string      `json:"status" bson:"status"`
}

// OverviewTotals for the admin dashboard header.
type OverviewTotals struct {
	Users   int     `json:"users" bson:"users"`
	Orders  int     `json:"orders" bson:"orders"`
	Revenue float64 `json:"revenue" bson:"revenue"`
}

// OverviewSnapshot is the full admin read-model: rebuilt by re-fetching
// after every successful admin mutation, never patched locally.
type OverviewSnapshot struct {
	Totals OverviewTotals `json:"totals"`
	Users  []User         `json:"users"`
	Orders []Order        `json:"orders"`
}
