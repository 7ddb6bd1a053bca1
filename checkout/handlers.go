package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"clavis/cart"
	"clavis/globals"
	"clavis/middleware"
	"clavis/models"
	"clavis/mq"
	"clavis/orders"
	"clavis/rdx"
	"clavis/utils"
)

// serviceTokenSource mints a short-lived bearer credential for the
// persistence collaborator, on behalf of the submitting user.
type serviceTokenSource struct {
	userID string
}

func (s *serviceTokenSource) Token(_ context.Context) (string, error) {
	claims := middleware.Claims{
		UserID: s.userID,
		Role:   "service",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		return "", fmt.Errorf("could not acquire access token: %w", err)
	}
	return token, nil
}

// storeSubmitter fronts the order store as the authenticated
// persistence collaborator: it rejects calls without a valid bearer
// credential, then persists and announces the order.
type storeSubmitter struct {
	store orders.Store
}

func (s *storeSubmitter) Submit(ctx context.Context, token string, order models.Order) (models.Order, error) {
	if _, err := middleware.ValidateJWT("Bearer " + token); err != nil {
		return models.Order{}, fmt.Errorf("invalid service token")
	}

	stored, err := s.store.Create(ctx, order)
	if err != nil {
		return models.Order{}, err
	}

	mq.Emit(ctx, "created", stored.OrderID, stored.UserID)
	return stored, nil
}

// SubmitOrder drives the checkout flow for the caller: POST /api/checkout.
func SubmitOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		log.Println("SubmitOrder decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	c := cart.New(cart.NewRedisStorage(rdx.Conn), userID)
	if cart.ValidMethods[form.Method] {
		// remember the chosen method for the next session
		c.SetPaymentMethod(ctx, form.Method)
	}

	flow := NewFlow(&serviceTokenSource{userID: userID}, &storeSubmitter{store: orders.NewMongoStore()})
	stored, err := flow.Submit(ctx, userID, c, form)

	switch {
	case err == nil:
		utils.RespondWithJSON(w, http.StatusCreated, utils.M{
			"state": flow.State(),
			"order": stored,
		})
	case errors.Is(err, ErrCartEmpty):
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"state": flow.State(),
			"error": flow.Message(),
		})
	case errors.Is(err, ErrValidation):
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
			"state":  flow.State(),
			"error":  flow.Message(),
			"fields": flow.FieldErrors(),
		})
	default:
		log.Println("SubmitOrder flow error:", err)
		utils.RespondWithJSON(w, http.StatusBadGateway, utils.M{
			"state": flow.State(),
			"error": flow.Message(),
		})
	}
}
