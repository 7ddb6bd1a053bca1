package cart

import (
	"context"
	"encoding/json"
	"log"
)

// Payment method tags. The saved method survives across sessions and
// defaults to "card".
const DefaultPaymentMethod = "card"

var ValidMethods = map[string]bool{
	"card":     true,
	"paypal":   true,
	"gpay":     true,
	"applepay": true,
	"invoice":  true,
}

// Cart is one user's not-yet-submitted list of service items: ordered,
// deduplicated by exact string equality, persisted as a JSON array.
// Storage failures are swallowed; the cart degrades to empty rather
// than surfacing an error.
type Cart struct {
	store  Storage
	userID string
}

func New(store Storage, userID string) *Cart {
	return &Cart{store: store, userID: userID}
}

func (c *Cart) key() string       { return "cart:" + c.userID }
func (c *Cart) methodKey() string { return "payment:method:" + c.userID }

// Items loads the cart. A missing or corrupt entry degrades to an
// empty cart.
func (c *Cart) Items(ctx context.Context) []string {
	raw, err := c.store.Get(ctx, c.key())
	if err != nil {
		if err != ErrNotFound {
			log.Println("cart load failed:", err)
		}
		return []string{}
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Println("cart entry corrupt, resetting:", err)
		return []string{}
	}
	if items == nil {
		items = []string{}
	}
	return items
}

// Add appends the item unless an identical string is already present.
// Returns the resulting cart.
func (c *Cart) Add(ctx context.Context, item string) []string {
	items := c.Items(ctx)
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	items = append(items, item)
	c.persist(ctx, items)
	return items
}

// Remove drops the matching entry, if present.
func (c *Cart) Remove(ctx context.Context, item string) []string {
	items := c.Items(ctx)
	for i, existing := range items {
		if existing == item {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}
	c.persist(ctx, items)
	return items
}

// Clear empties the cart and persists immediately. Safe to call twice.
func (c *Cart) Clear(ctx context.Context) {
	if err := c.store.Del(ctx, c.key()); err != nil {
		log.Println("cart clear failed:", err)
	}
}

func (c *Cart) persist(ctx context.Context, items []string) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Println("cart marshal failed:", err)
		return
	}
	if err := c.store.Set(ctx, c.key(), string(data)); err != nil {
		log.Println("cart persist failed:", err)
	}
}

// PaymentMethod returns the saved method, falling back to the default
// on absence, corruption or an unknown tag.
func (c *Cart) PaymentMethod(ctx context.Context) string {
	method, err := c.store.Get(ctx, c.methodKey())
	if err != nil || !ValidMethods[method] {
		return DefaultPaymentMethod
	}
	return method
}

// SetPaymentMethod persists the chosen method; unknown tags are ignored.
func (c *Cart) SetPaymentMethod(ctx context.Context, method string) {
	if !ValidMethods[method] {
		return
	}
	if err := c.store.Set(ctx, c.methodKey(), method); err != nil {
		log.Println("payment method persist failed:", err)
	}
}
