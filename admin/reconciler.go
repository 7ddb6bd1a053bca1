package admin

import (
	"context"
	"errors"
	"sync"

	"clavis/models"
	"clavis/mq"
	"clavis/orders"
)

var (
	ErrNoDraft         = errors.New("no draft for this order")
	ErrConfirmRequired = errors.New("deletion requires explicit confirmation")
)

// OrderView pairs a canonical order with its draft, if one is being
// edited. Draft == nil means viewing.
type OrderView struct {
	Order models.Order       `json:"order"`
	Draft *models.OrderDraft `json:"draft,omitempty"`
}

func (v OrderView) Editing() bool { return v.Draft != nil }

// Reconciler manages per-order edit drafts for administrators. Drafts
// live in process and are keyed by order id; saves are last-write-wins
// against the backing store, with no conflict detection between
// concurrent administrators.
type Reconciler struct {
	mu     sync.RWMutex
	drafts map[string]*models.OrderDraft
	store  orders.Store
}

func NewReconciler(store orders.Store) *Reconciler {
	return &Reconciler{
		drafts: make(map[string]*models.OrderDraft),
		store:  store,
	}
}

// View returns the current view of an order: editing if a draft
// exists, viewing otherwise.
func (rc *Reconciler) View(order models.Order) OrderView {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return OrderView{Order: order, Draft: rc.drafts[order.OrderID]}
}

// BeginEdit derives a draft from the canonical order unless one
// already exists, and returns it.
func (rc *Reconciler) BeginEdit(order models.Order) *models.OrderDraft {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if draft, ok := rc.drafts[order.OrderID]; ok {
		return draft
	}
	draft := models.NewOrderDraft(order)
	rc.drafts[order.OrderID] = draft
	return draft
}

// UpdateField merges one field change into the order's draft, deriving
// the draft from canonical state if none exists yet. No validation
// happens here; that is deferred to Save.
func (rc *Reconciler) UpdateField(order models.Order, path, value string) (*models.OrderDraft, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	draft, ok := rc.drafts[order.OrderID]
	if !ok {
		draft = models.NewOrderDraft(order)
		rc.drafts[order.OrderID] = draft
	}
	if err := draft.Apply(path, value); err != nil {
		return nil, err
	}
	return draft, nil
}

// Save commits the draft: items parsed from the draft text, subtotal
// recomputed as pricePerItem times the item count, payment payload
// restricted to the selected method. On success the draft is dropped;
// on failure it is retained so the administrator can retry.
func (rc *Reconciler) Save(ctx context.Context, order models.Order) (models.Order, error) {
	rc.mu.RLock()
	draft, ok := rc.drafts[order.OrderID]
	rc.mu.RUnlock()
	if !ok {
		return models.Order{}, ErrNoDraft
	}

	items := draft.Items()
	merged := order
	merged.Status = draft.Status
	merged.Items = items
	merged.Totals = models.OrderTotals{
		Subtotal:     draft.PricePerItem * float64(len(items)),
		PricePerItem: draft.PricePerItem,
		Currency:     draft.Currency,
	}
	merged.Billing = draft.Billing
	merged.Payment = draft.Payment()

	if err := rc.store.Update(ctx, merged.OrderID, merged.UserID, merged); err != nil {
		return models.Order{}, err
	}

	rc.mu.Lock()
	delete(rc.drafts, order.OrderID)
	rc.mu.Unlock()

	mq.Emit(ctx, "updated", merged.OrderID, merged.UserID)
	return merged, nil
}

// Cancel discards the draft without touching the store.
func (rc *Reconciler) Cancel(orderID string) {
	rc.mu.Lock()
	delete(rc.drafts, orderID)
	rc.mu.Unlock()
}

// Delete removes the order, gated behind an explicit confirmation.
// Any draft for the order is discarded as well.
func (rc *Reconciler) Delete(ctx context.Context, order models.Order, confirmed bool) error {
	if !confirmed {
		return ErrConfirmRequired
	}
	if err := rc.store.Delete(ctx, order.OrderID, order.UserID); err != nil {
		return err
	}

	rc.mu.Lock()
	delete(rc.drafts, order.OrderID)
	rc.mu.Unlock()

	mq.Emit(ctx, "deleted", order.OrderID, order.UserID)
	return nil
}
