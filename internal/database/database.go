// Package database is the Mongo-backed store for the storefront. The handle
// is constructed explicitly at process start and closed on shutdown; nothing
// holds the connection as ambient package state.
package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const databaseName = "storefront"

// Database wraps the Mongo client and the collections the storefront uses.
type Database struct {
	client     *mongo.Client
	users      *mongo.Collection
	products   *mongo.Collection
	categories *mongo.Collection
	carts      *mongo.Collection
	orders     *mongo.Collection
}

// Connect dials Mongo and verifies the connection. Callers treat a failure
// here as fatal.
func Connect(ctx context.Context, uri string) (*Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	return &Database{
		client:     client,
		users:      db.Collection("users"),
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
		carts:      db.Collection("carts"),
		orders:     db.Collection("orders"),
	}, nil
}

// Close releases the underlying client.
func (db *Database) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the data model relies on:
// one account per email, one category per name, one cart per account.
func (db *Database) EnsureIndexes(ctx context.Context) error {
	unique := func(c *mongo.Collection, field string) error {
		_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return err
	}

	if err := unique(db.users, "email"); err != nil {
		return err
	}
	if err := unique(db.categories, "name"); err != nil {
		return err
	}
	return unique(db.carts, "user_id")
}
