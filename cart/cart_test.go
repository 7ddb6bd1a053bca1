package cart

import (
	"context"
	"testing"
)

func TestAddDeduplicates(t *testing.T) {
	c := New(NewMemoryStorage(), "u-1")
	ctx := context.Background()

	c.Add(ctx, "Single Sign-On (Cloud, 100 users)")
	items := c.Add(ctx, "Single Sign-On (Cloud, 100 users)")

	if len(items) != 1 {
		t.Fatalf("expected 1 item after duplicate add, got %d", len(items))
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := New(NewMemoryStorage(), "u-1")
	ctx := context.Background()

	c.Add(ctx, "Item A")
	c.Add(ctx, "Item B")
	items := c.Add(ctx, "Item C")

	want := []string{"Item A", "Item B", "Item C"}
	for i, item := range want {
		if items[i] != item {
			t.Fatalf("expected %q at position %d, got %q", item, i, items[i])
		}
	}
}

func TestRemove(t *testing.T) {
	c := New(NewMemoryStorage(), "u-1")
	ctx := context.Background()

	c.Add(ctx, "Item A")
	c.Add(ctx, "Item B")
	items := c.Remove(ctx, "Item A")

	if len(items) != 1 || items[0] != "Item B" {
		t.Fatalf("expected [Item B], got %v", items)
	}
}

func TestCartRoundTripsThroughStorage(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	New(store, "u-1").Add(ctx, "Item A")

	// a fresh Cart over the same storage sees the persisted state
	items := New(store, "u-1").Items(ctx)
	if len(items) != 1 || items[0] != "Item A" {
		t.Fatalf("expected persisted [Item A], got %v", items)
	}
}

func TestCorruptEntryDegradesToEmptyCart(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()

	store.Set(ctx, "cart:u-1", "{not json")

	items := New(store, "u-1").Items(ctx)
	if len(items) != 0 {
		t.Fatalf("expected empty cart for corrupt entry, got %v", items)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	c := New(NewMemoryStorage(), "u-1")
	ctx := context.Background()

	c.Add(ctx, "Item A")
	c.Clear(ctx)
	c.Clear(ctx)

	if items := c.Items(ctx); len(items) != 0 {
		t.Fatalf("expected empty cart after clear, got %v", items)
	}
}

func TestPaymentMethodDefaultsToCard(t *testing.T) {
	c := New(NewMemoryStorage(), "u-1")
	ctx := context.Background()

	if got := c.PaymentMethod(ctx); got != "card" {
		t.Fatalf("expected default method card, got %q", got)
	}
}

func TestPaymentMethodPersistsValidTags(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	c := New(store, "u-1")

	c.SetPaymentMethod(ctx, "invoice")
	if got := c.PaymentMethod(ctx); got != "invoice" {
		t.Fatalf("expected invoice, got %q", got)
	}

	// unknown tags are ignored
	c.SetPaymentMethod(ctx, "bitcoin")
	if got := c.PaymentMethod(ctx); got != "invoice" {
		t.Fatalf("expected invoice after invalid set, got %q", got)
	}

	// a corrupt stored value falls back to the default
	store.Set(ctx, "payment:method:u-1", "???")
	if got := c.PaymentMethod(ctx); got != "card" {
		t.Fatalf("expected card fallback for corrupt value, got %q", got)
	}
}

// failingStorage simulates an unavailable backing store.
type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, error) {
	return "", context.DeadlineExceeded
}
func (failingStorage) Set(context.Context, string, string) error { return context.DeadlineExceeded }
func (failingStorage) Del(context.Context, string) error         { return context.DeadlineExceeded }

func TestStorageFailuresAreSwallowed(t *testing.T) {
	c := New(failingStorage{}, "u-1")
	ctx := context.Background()

	// none of these should panic or surface an error
	items := c.Add(ctx, "Item A")
	if len(items) != 1 {
		t.Fatalf("expected in-memory add result despite storage failure, got %v", items)
	}
	c.Clear(ctx)
	if got := c.PaymentMethod(ctx); got != "card" {
		t.Fatalf("expected default method on storage failure, got %q", got)
	}
}
