package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart holds a user's staged purchase quantities. Each account has at most
// one cart, and each product appears in at most one entry.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// CartItem is one staged product reference with its desired quantity.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Qty       int                `bson:"qty" json:"qty"`
}

// CartItemView is a cart entry with product display fields resolved at read
// time. The display fields stay zero when the referenced product is gone.
type CartItemView struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Qty       int                `json:"qty"`
	Name      string             `json:"name,omitempty"`
	Price     float64            `json:"price,omitempty"`
	Images    []string           `json:"images,omitempty"`
}

// CartView is the presentation shape of a cart.
type CartView struct {
	ID         primitive.ObjectID `json:"id"`
	UserID     primitive.ObjectID `json:"user_id"`
	Items      []CartItemView     `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice float64            `json:"total_price"`
}

// CartAddForm is the add-to-cart request body.
type CartAddForm struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CartQtyForm is the update-quantity request body.
type CartQtyForm struct {
	Qty int `json:"qty"`
}
