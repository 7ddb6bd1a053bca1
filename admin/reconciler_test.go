package admin

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"clavis/models"
)

// fakeStore records mutations and can be told to fail.
type fakeStore struct {
	updateErr error
	deleteErr error
	updated   []models.Order
	deleted   []string
}

func (f *fakeStore) Create(_ context.Context, o models.Order) (models.Order, error) { return o, nil }
func (f *fakeStore) Get(context.Context, string) (models.Order, error) {
	return models.Order{}, nil
}
func (f *fakeStore) ListByUser(context.Context, string) ([]models.Order, error) { return nil, nil }
func (f *fakeStore) All(context.Context) ([]models.Order, error)               { return nil, nil }

func (f *fakeStore) Update(_ context.Context, orderID, userID string, order models.Order) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, order)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, orderID, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, orderID)
	return nil
}

func sampleOrder() models.Order {
	return models.Order{
		OrderID:   "ORD-1",
		UserID:    "u-1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Items:     []string{"Single Sign-On (Cloud, 100 users)"},
		Totals:    models.OrderTotals{Subtotal: 100, PricePerItem: 100, Currency: "EUR"},
		Billing:   models.BillingInfo{FullName: "Ada Lovelace", Email: "ada@example.com"},
		Payment:   models.PaymentInfo{Method: "paypal"},
		Status:    "Paid",
	}
}

func TestBeginEditDerivesDraftWithDefaults(t *testing.T) {
	rc := NewReconciler(&fakeStore{})
	order := sampleOrder()
	order.Payment.Method = ""

	draft := rc.BeginEdit(order)
	if draft.Method != "card" {
		t.Fatalf("expected method default card, got %q", draft.Method)
	}
	if draft.ItemsText != "Single Sign-On (Cloud, 100 users)" {
		t.Fatalf("unexpected itemsText %q", draft.ItemsText)
	}
	if !rc.View(order).Editing() {
		t.Fatal("expected editing view after beginEdit")
	}
}

func TestBeginEditResumesExistingDraft(t *testing.T) {
	rc := NewReconciler(&fakeStore{})
	order := sampleOrder()

	first := rc.BeginEdit(order)
	first.Status = "Refunded"

	second := rc.BeginEdit(order)
	if second.Status != "Refunded" {
		t.Fatal("expected beginEdit to resume the existing draft")
	}
}

func TestCancelLeavesCanonicalUntouched(t *testing.T) {
	rc := NewReconciler(&fakeStore{})
	order := sampleOrder()
	before, _ := json.Marshal(order)

	draft := rc.BeginEdit(order)
	draft.Status = "Refunded"
	draft.ItemsText = "Something else"
	rc.Cancel(order.OrderID)

	after, _ := json.Marshal(order)
	if string(before) != string(after) {
		t.Fatal("canonical order changed across beginEdit/cancel")
	}
	if rc.View(order).Editing() {
		t.Fatal("expected no draft after cancel")
	}
}

func TestUpdateFieldCreatesDraftOnDemand(t *testing.T) {
	rc := NewReconciler(&fakeStore{})
	order := sampleOrder()

	draft, err := rc.UpdateField(order, "billing.city", "Torino")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Billing.City != "Torino" {
		t.Fatalf("expected city Torino, got %q", draft.Billing.City)
	}
	// rest of the draft derived from canonical
	if draft.Billing.FullName != "Ada Lovelace" {
		t.Fatalf("expected canonical fullName, got %q", draft.Billing.FullName)
	}
}

func TestUpdateFieldRejectsUnknownPath(t *testing.T) {
	rc := NewReconciler(&fakeStore{})
	if _, err := rc.UpdateField(sampleOrder(), "no.such.field", "x"); err == nil {
		t.Fatal("expected error for unknown path")
	}
}

func TestSaveParsesItemsAndRecomputesTotals(t *testing.T) {
	store := &fakeStore{}
	rc := NewReconciler(store)
	order := sampleOrder()

	rc.BeginEdit(order)
	rc.UpdateField(order, "itemsText", "Item A\nItem B\n\n")
	rc.UpdateField(order, "pricePerItem", "100")

	merged, err := rc.Save(context.Background(), order)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if len(merged.Items) != 2 || merged.Items[0] != "Item A" || merged.Items[1] != "Item B" {
		t.Fatalf("unexpected items %v", merged.Items)
	}
	if merged.Totals.Subtotal != 200 {
		t.Fatalf("expected subtotal 200, got %v", merged.Totals.Subtotal)
	}
	if len(store.updated) != 1 {
		t.Fatalf("expected one store update, got %d", len(store.updated))
	}
	if rc.View(order).Editing() {
		t.Fatal("expected draft discarded after save")
	}
}

func TestSavePaymentPayloadMatchesMethod(t *testing.T) {
	store := &fakeStore{}
	rc := NewReconciler(store)
	order := sampleOrder()

	rc.BeginEdit(order)
	rc.UpdateField(order, "payment.method", "invoice")
	rc.UpdateField(order, "payment.invoice.pecEmail", "pec@example.com")
	rc.UpdateField(order, "payment.card.number", "4111111111111111") // stale card edit

	merged, err := rc.Save(context.Background(), order)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if merged.Payment.Method != "invoice" || merged.Payment.Invoice == nil {
		t.Fatalf("expected invoice payment payload, got %+v", merged.Payment)
	}
	if merged.Payment.Card != nil {
		t.Fatal("card sub-record must be dropped when method is invoice")
	}
}

func TestSaveWithoutDraftFails(t *testing.T) {
	rc := NewReconciler(&fakeStore{})
	if _, err := rc.Save(context.Background(), sampleOrder()); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
}

func TestSaveFailureRetainsDraft(t *testing.T) {
	store := &fakeStore{updateErr: errors.New("store unavailable")}
	rc := NewReconciler(store)
	order := sampleOrder()

	rc.BeginEdit(order)
	rc.UpdateField(order, "status", "Refunded")

	if _, err := rc.Save(context.Background(), order); err == nil {
		t.Fatal("expected save to fail")
	}
	draft := rc.View(order).Draft
	if draft == nil || draft.Status != "Refunded" {
		t.Fatal("expected draft retained after failed save")
	}

	// retry succeeds once the store recovers
	store.updateErr = nil
	if _, err := rc.Save(context.Background(), order); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	store := &fakeStore{}
	rc := NewReconciler(store)
	order := sampleOrder()

	if err := rc.Delete(context.Background(), order, false); !errors.Is(err, ErrConfirmRequired) {
		t.Fatalf("expected ErrConfirmRequired, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatal("store must not be contacted without confirmation")
	}

	if err := rc.Delete(context.Background(), order, true); err != nil {
		t.Fatalf("confirmed delete failed: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "ORD-1" {
		t.Fatalf("unexpected deletions %v", store.deleted)
	}
}

func TestEditsAcrossOrdersAreIndependent(t *testing.T) {
	rc := NewReconciler(&fakeStore{})
	first := sampleOrder()
	second := sampleOrder()
	second.OrderID = "ORD-2"

	rc.BeginEdit(first)
	rc.BeginEdit(second)
	rc.UpdateField(first, "status", "Refunded")
	rc.Cancel(first.OrderID)

	if rc.View(first).Editing() {
		t.Fatal("first draft should be gone")
	}
	if !rc.View(second).Editing() {
		t.Fatal("second draft must survive the first order's cancel")
	}
}
