package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"clavis/cart"
	"clavis/catalog"
	"clavis/models"
)

var (
	ErrInFlight   = errors.New("submission already in progress")
	ErrCartEmpty  = errors.New("cart is empty")
	ErrValidation = errors.New("validation failed")
)

// Flow states.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// TokenSource yields a bearer credential for calls to the persistence
// collaborator.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// OrderSubmitter is the persistence collaborator's create operation.
// A returned error carries the human-readable collaborator message.
type OrderSubmitter interface {
	Submit(ctx context.Context, token string, order models.Order) (models.Order, error)
}

// Form is one checkout form snapshot.
type Form struct {
	Billing       models.BillingInfo `json:"billing"`
	Payment       models.PaymentInfo `json:"payment"`
	Method        string             `json:"method"`
	TermsAccepted bool               `json:"termsAccepted"`
}

// Flow runs one order submission: validate, acquire a token, build the
// order, submit, clear the cart. Not retried automatically; the caller
// resubmits explicitly after an error. State transitions:
// idle/error -> loading -> success|error.
type Flow struct {
	Tokens TokenSource
	Orders OrderSubmitter

	state       State
	message     string
	fieldErrors map[string]string
}

func NewFlow(tokens TokenSource, orders OrderSubmitter) *Flow {
	return &Flow{Tokens: tokens, Orders: orders, state: StateIdle}
}

func (f *Flow) State() State                   { return f.state }
func (f *Flow) Message() string                { return f.message }
func (f *Flow) FieldErrors() map[string]string { return f.fieldErrors }

// Submit drives the flow for one attempt. On success the cart is
// cleared and the stored order returned; on any failure the cart and
// form are left intact for a retry.
func (f *Flow) Submit(ctx context.Context, userID string, c *cart.Cart, form Form) (models.Order, error) {
	if f.state == StateLoading {
		return models.Order{}, ErrInFlight
	}

	items := c.Items(ctx)
	if len(items) == 0 {
		f.fail("Your cart is empty", nil)
		return models.Order{}, ErrCartEmpty
	}

	if errs := Validate(form.Billing, form.Payment, form.Method, form.TermsAccepted); len(errs) > 0 {
		f.fail("Please fix the highlighted fields", errs)
		return models.Order{}, ErrValidation
	}

	f.state = StateLoading
	f.message = ""
	f.fieldErrors = nil

	token, err := f.Tokens.Token(ctx)
	if err != nil {
		f.fail(err.Error(), nil)
		return models.Order{}, err
	}

	order := BuildOrder(userID, items, form)
	stored, err := f.Orders.Submit(ctx, token, order)
	if err != nil {
		// Cart is untouched; the caller may retry with the same form.
		f.fail(err.Error(), nil)
		return models.Order{}, err
	}

	c.Clear(ctx)
	f.state = StateSuccess
	return stored, nil
}

func (f *Flow) fail(msg string, fieldErrors map[string]string) {
	f.state = StateError
	f.message = msg
	f.fieldErrors = fieldErrors
}

// BuildOrder assembles a canonical order from the cart and form. The
// payment payload carries only the sub-record of the selected method;
// subtotal is pricePerItem times the item count.
func BuildOrder(userID string, items []string, form Form) models.Order {
	now := time.Now().UTC()

	payment := models.PaymentInfo{Method: form.Method}
	switch form.Method {
	case "card":
		if form.Payment.Card != nil {
			card := *form.Payment.Card
			payment.Card = &card
		}
	case "invoice":
		if form.Payment.Invoice != nil {
			inv := *form.Payment.Invoice
			payment.Invoice = &inv
		}
	}

	return models.Order{
		OrderID:   fmt.Sprintf("ORD-%d-%s", now.UnixNano(), uuid.NewString()[:8]),
		UserID:    userID,
		CreatedAt: now,
		Items:     items,
		Totals: models.OrderTotals{
			Subtotal:     catalog.PricePerItem * float64(len(items)),
			PricePerItem: catalog.PricePerItem,
			Currency:     catalog.Currency,
		},
		Billing: form.Billing,
		Payment: payment,
		Status:  "Paid",
	}
}
