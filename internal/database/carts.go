package database

import (
	"context"
	"time"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetCartByUserID returns the user's cart, or NotFound when none has been
// created yet.
func (db *Database) GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := db.carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("Cart not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "fetching cart: %v", err)
	}
	return &cart, nil
}

// CreateCart inserts a cart for a user that does not have one yet.
func (db *Database) CreateCart(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	res, err := db.carts.InsertOne(ctx, cart)
	if err != nil {
		return apperr.Storef(err, "creating cart: %v", err)
	}
	cart.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// SaveCartItems replaces the user's cart entries. An empty slice empties the
// cart without deleting it.
func (db *Database) SaveCartItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	res, err := db.carts.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"items": items, "updated_at": time.Now()}},
	)
	if err != nil {
		return apperr.Storef(err, "saving cart: %v", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFoundf("Cart not found")
	}
	return nil
}
