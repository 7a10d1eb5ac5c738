package database

import (
	"context"
	"regexp"
	"time"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateProduct inserts a new catalog entry.
func (db *Database) CreateProduct(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Images == nil {
		product.Images = []string{}
	}

	res, err := db.products.InsertOne(ctx, product)
	if err != nil {
		return apperr.Storef(err, "creating product: %v", err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetProductByID returns the product with the given id.
func (db *Database) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := db.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("Product not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "fetching product: %v", err)
	}
	return &product, nil
}

// GetAllProducts lists the whole catalog.
func (db *Database) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return db.findProducts(ctx, bson.M{})
}

// SearchProducts finds products whose name contains query, case-insensitive.
func (db *Database) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	filter := bson.M{"name": primitive.Regex{
		Pattern: regexp.QuoteMeta(query),
		Options: "i",
	}}
	return db.findProducts(ctx, filter)
}

// GetProductsByIDs returns the products matching ids, in no particular order.
// Missing ids are simply absent from the result.
func (db *Database) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	return db.findProducts(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (db *Database) findProducts(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cur, err := db.products.Find(ctx, filter)
	if err != nil {
		return nil, apperr.Storef(err, "listing products: %v", err)
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperr.Storef(err, "decoding products: %v", err)
	}
	return products, nil
}

// UpdateProduct applies a partial update and returns the updated product.
func (db *Database) UpdateProduct(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate, categoryID *primitive.ObjectID) (*models.Product, error) {
	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Stock != nil {
		set["stock"] = *update.Stock
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Images != nil {
		set["images"] = update.Images
	}
	if categoryID != nil {
		set["category_id"] = *categoryID
	}

	var product models.Product
	err := db.products.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("Product not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "updating product: %v", err)
	}
	return &product, nil
}

// DeleteProduct removes the product.
func (db *Database) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Storef(err, "deleting product: %v", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("Product not found")
	}
	return nil
}

// CountProducts returns the catalog size.
func (db *Database) CountProducts(ctx context.Context) (int64, error) {
	n, err := db.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Storef(err, "counting products: %v", err)
	}
	return n, nil
}
