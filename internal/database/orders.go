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

// CreateOrder inserts a new order snapshot.
func (db *Database) CreateOrder(ctx context.Context, order *models.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := db.orders.InsertOne(ctx, order)
	if err != nil {
		return apperr.Storef(err, "creating order: %v", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetAllOrders lists every order, newest first.
func (db *Database) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return db.findOrders(ctx, bson.M{}, 0)
}

// GetOrdersByUserID lists one user's orders, newest first.
func (db *Database) GetOrdersByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return db.findOrders(ctx, bson.M{"user_id": userID}, 0)
}

// GetRecentOrders returns the most recently created orders, up to limit.
func (db *Database) GetRecentOrders(ctx context.Context, limit int64) ([]models.Order, error) {
	return db.findOrders(ctx, bson.M{}, limit)
}

func (db *Database) findOrders(ctx context.Context, filter bson.M, limit int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := db.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Storef(err, "listing orders: %v", err)
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, apperr.Storef(err, "decoding orders: %v", err)
	}
	return orders, nil
}

// GetOrderByID returns the order with the given id.
func (db *Database) GetOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := db.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("Order not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "fetching order: %v", err)
	}
	return &order, nil
}

// UpdateOrderStatus sets the order's status verbatim and returns the updated
// order. Callers validate the status against the enum.
func (db *Database) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := db.orders.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("Order not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "updating order status: %v", err)
	}
	return &order, nil
}

// CountOrders returns the total number of orders.
func (db *Database) CountOrders(ctx context.Context) (int64, error) {
	n, err := db.orders.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Storef(err, "counting orders: %v", err)
	}
	return n, nil
}

// TotalSales sums total_price across every order, cancelled ones included.
func (db *Database) TotalSales(ctx context.Context) (float64, error) {
	cur, err := db.orders.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
	})
	if err != nil {
		return 0, apperr.Storef(err, "summing sales: %v", err)
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, apperr.Storef(err, "decoding sales sum: %v", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
