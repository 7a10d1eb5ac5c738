package database

import (
	"context"
	"time"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateCategory inserts a new category. Names are unique.
func (db *Database) CreateCategory(ctx context.Context, category *models.Category) error {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := db.categories.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflictf("Category already exists")
		}
		return apperr.Storef(err, "creating category: %v", err)
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetCategoryByID returns the category with the given id.
func (db *Database) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := db.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("Category not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "fetching category: %v", err)
	}
	return &category, nil
}

// GetCategoryByName looks a category up by its unique name.
func (db *Database) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := db.categories.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("Category not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "fetching category: %v", err)
	}
	return &category, nil
}

// GetCategoriesByIDs returns the categories matching ids.
func (db *Database) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	cur, err := db.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Storef(err, "fetching categories: %v", err)
	}
	var categories []models.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, apperr.Storef(err, "decoding categories: %v", err)
	}
	return categories, nil
}

// GetAllCategories lists every category, newest first.
func (db *Database) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	cur, err := db.categories.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, apperr.Storef(err, "listing categories: %v", err)
	}
	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, apperr.Storef(err, "decoding categories: %v", err)
	}
	return categories, nil
}

// UpdateCategory applies a partial update and returns the updated category.
func (db *Database) UpdateCategory(ctx context.Context, id primitive.ObjectID, form models.CategoryForm) (*models.Category, error) {
	set := bson.M{"updated_at": time.Now()}
	if form.Name != "" {
		set["name"] = form.Name
	}
	if form.Description != "" {
		set["description"] = form.Description
	}

	var category models.Category
	err := db.categories.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("Category not found")
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflictf("Category already exists")
		}
		return nil, apperr.Storef(err, "updating category: %v", err)
	}
	return &category, nil
}

// DeleteCategory removes the category. Products referencing it are left
// dangling; they drop out of read-time joins.
func (db *Database) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Storef(err, "deleting category: %v", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("Category not found")
	}
	return nil
}
