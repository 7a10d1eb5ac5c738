package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Stock is advisory only: checkout never
// decrements it.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Description string             `bson:"description" json:"description"`
	Images      []string           `bson:"images" json:"images"`
	CategoryID  primitive.ObjectID `bson:"category_id" json:"category_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Category groups products under a unique name.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CategoryRef is the slice of a category attached to product reads.
type CategoryRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// ProductDetail is a product with its category resolved at read time.
type ProductDetail struct {
	Product
	Category *CategoryRef `json:"category,omitempty"`
}

// ProductForm is the product creation request body.
type ProductForm struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
}

// ProductUpdate carries a partial product update; nil fields are left as-is.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	Category    *string  `json:"category"`
}

// CategoryForm is the category create/update request body.
type CategoryForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
