package cart

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"clavis/rdx"
	"clavis/utils"
)

func storeFromRequest(r *http.Request) (*Cart, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return nil, false
	}
	return New(NewRedisStorage(rdx.Conn), userID), true
}

// GetCart returns the caller's cart and saved payment method.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c, ok := storeFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":         c.Items(r.Context()),
		"paymentMethod": c.PaymentMethod(r.Context()),
	})
}

// AddToCart appends one item string; duplicates are ignored.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c, ok := storeFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Item string `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Item == "" {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	items := c.Add(r.Context(), payload.Item)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"items": items})
}

// RemoveFromCart drops one item string from the cart.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c, ok := storeFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Item string `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Item == "" {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	items := c.Remove(r.Context(), payload.Item)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// ClearCart empties the caller's cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c, ok := storeFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	c.Clear(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": []string{}})
}

// GetPaymentMethod returns the saved payment method tag.
func GetPaymentMethod(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c, ok := storeFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"method": c.PaymentMethod(r.Context())})
}

// SetPaymentMethod saves the last-selected payment method.
func SetPaymentMethod(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c, ok := storeFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Method string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !ValidMethods[payload.Method] {
		http.Error(w, "Unknown payment method", http.StatusBadRequest)
		return
	}

	c.SetPaymentMethod(r.Context(), payload.Method)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"method": payload.Method})
}
