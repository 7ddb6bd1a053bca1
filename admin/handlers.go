package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"clavis/models"
	"clavis/orders"
	"clavis/utils"
)

// Handlers share one reconciler so drafts survive across requests.
var (
	store      orders.Store = orders.NewMongoStore()
	reconciler              = NewReconciler(store)
)

func requestCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}

// GetOverview returns the full snapshot; ?user= filters the order list
// to one user ("all" returns everything).
func GetOverview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	snapshot, err := LoadOverview(ctx, store)
	if err != nil {
		log.Println("GetOverview error:", err)
		http.Error(w, "Failed to load overview", http.StatusInternalServerError)
		return
	}

	if user := r.URL.Query().Get("user"); user != "" {
		snapshot.Orders = FilterByUser(snapshot.Orders, user)
	}

	utils.RespondWithJSON(w, http.StatusOK, snapshot)
}

func fetchOrder(ctx context.Context, w http.ResponseWriter, orderID string) (models.Order, bool) {
	order, err := store.Get(ctx, orderID)
	if errors.Is(err, orders.ErrNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return models.Order{}, false
	}
	if err != nil {
		log.Println("admin order lookup error:", err)
		http.Error(w, "Could not retrieve order", http.StatusInternalServerError)
		return models.Order{}, false
	}
	return order, true
}

// BeginEdit opens (or resumes) a draft for the order.
func BeginEdit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	order, ok := fetchOrder(ctx, w, ps.ByName("orderid"))
	if !ok {
		return
	}

	draft := reconciler.BeginEdit(order)
	utils.RespondWithJSON(w, http.StatusOK, OrderView{Order: order, Draft: draft})
}

// UpdateDraft merges a single {path, value} change into the draft.
func UpdateDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	var payload struct {
		Path  string `json:"path"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Path == "" {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	order, ok := fetchOrder(ctx, w, ps.ByName("orderid"))
	if !ok {
		return
	}

	draft, err := reconciler.UpdateField(order, payload.Path, payload.Value)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, draft)
}

// SaveOrder commits the draft and returns the refreshed overview.
func SaveOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	order, ok := fetchOrder(ctx, w, ps.ByName("orderid"))
	if !ok {
		return
	}

	merged, err := reconciler.Save(ctx, order)
	if errors.Is(err, ErrNoDraft) {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		// Draft retained so the edit can be retried.
		log.Println("SaveOrder error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	snapshot, err := LoadOverview(ctx, store)
	if err != nil {
		log.Println("SaveOrder overview refresh error:", err)
		http.Error(w, "Saved, but failed to refresh overview", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"order":    merged,
		"overview": snapshot,
	})
}

// CancelEdit discards the draft and reverts to the canonical view.
func CancelEdit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	order, ok := fetchOrder(ctx, w, ps.ByName("orderid"))
	if !ok {
		return
	}

	reconciler.Cancel(order.OrderID)
	utils.RespondWithJSON(w, http.StatusOK, OrderView{Order: order})
}

// DeleteOrder removes an order; requires ?confirm=true.
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := requestCtx(r)
	defer cancel()

	order, ok := fetchOrder(ctx, w, ps.ByName("orderid"))
	if !ok {
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := reconciler.Delete(ctx, order, confirmed); err != nil {
		if errors.Is(err, ErrConfirmRequired) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("DeleteOrder error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	snapshot, err := LoadOverview(ctx, store)
	if err != nil {
		log.Println("DeleteOrder overview refresh error:", err)
		http.Error(w, "Deleted, but failed to refresh overview", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"overview": snapshot})
}
