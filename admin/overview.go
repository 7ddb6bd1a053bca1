package admin

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clavis/db"
	"clavis/models"
	"clavis/orders"
)

// LoadOverview fetches the full admin read-model in one pass: user
// list, order list and the aggregate totals. Callers re-fetch after
// every successful mutation instead of patching locally, so the
// snapshot always reflects the store's authoritative state.
func LoadOverview(ctx context.Context, store orders.Store) (models.OverviewSnapshot, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := db.UserCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return models.OverviewSnapshot{}, fmt.Errorf("user listing failed: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return models.OverviewSnapshot{}, fmt.Errorf("user decoding failed: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}

	orderList, err := store.All(ctx)
	if err != nil {
		return models.OverviewSnapshot{}, err
	}

	var revenue float64
	for _, order := range orderList {
		revenue += order.Totals.Subtotal
	}

	return models.OverviewSnapshot{
		Totals: models.OverviewTotals{
			Users:   len(users),
			Orders:  len(orderList),
			Revenue: revenue,
		},
		Users:  users,
		Orders: orderList,
	}, nil
}

// FilterByUser projects the order list down to one user. "all" (or an
// empty id) is the identity projection.
func FilterByUser(list []models.Order, userID string) []models.Order {
	if userID == "" || userID == "all" {
		return list
	}
	filtered := []models.Order{}
	for _, order := range list {
		if order.UserID == userID {
			filtered = append(filtered, order)
		}
	}
	return filtered
}
