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

// CreateUser inserts a new account. The email must already be lowercased and
// the password hashed by the caller.
func (db *Database) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Wishlist == nil {
		user.Wishlist = []primitive.ObjectID{}
	}

	res, err := db.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflictf("Email already registered")
		}
		return apperr.Storef(err, "creating user: %v", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetUserByEmail looks an account up by its (lowercased) email.
func (db *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := db.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("User not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "fetching user: %v", err)
	}
	return &user, nil
}

// GetUserByID returns the account with the given id.
func (db *Database) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := db.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("User not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "fetching user: %v", err)
	}
	return &user, nil
}

// GetUsersByIDs returns the accounts matching ids, in no particular order.
func (db *Database) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cur, err := db.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Storef(err, "fetching users: %v", err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, apperr.Storef(err, "decoding users: %v", err)
	}
	return users, nil
}

// GetAllUsers lists every account. Password hashes are stripped by the JSON
// encoding, not here.
func (db *Database) GetAllUsers(ctx context.Context) ([]models.User, error) {
	cur, err := db.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Storef(err, "listing users: %v", err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, apperr.Storef(err, "decoding users: %v", err)
	}
	return users, nil
}

// UpdateUserProfile sets the provided profile fields and returns the updated
// account. Empty fields are left untouched.
func (db *Database) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, form models.ProfileForm) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if form.Name != "" {
		set["name"] = form.Name
	}
	if form.Email != "" {
		set["email"] = form.Email
	}
	if form.Image != "" {
		set["image"] = form.Image
	}

	var user models.User
	err := db.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("User not found")
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflictf("Email already registered")
		}
		return nil, apperr.Storef(err, "updating profile: %v", err)
	}
	return &user, nil
}

// UpdateUserRole sets the account's role and returns the updated account.
func (db *Database) UpdateUserRole(ctx context.Context, id primitive.ObjectID, role models.Role) (*models.User, error) {
	var user models.User
	err := db.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFoundf("User not found")
	}
	if err != nil {
		return nil, apperr.Storef(err, "updating role: %v", err)
	}
	return &user, nil
}

// DeleteUser removes the account.
func (db *Database) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Storef(err, "deleting user: %v", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFoundf("User not found")
	}
	return nil
}

// CreditBalance adds amount to the wallet and returns the new balance.
func (db *Database) CreditBalance(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error) {
	var user models.User
	err := db.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"balance": amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return 0, apperr.NotFoundf("User not found")
	}
	if err != nil {
		return 0, apperr.Storef(err, "adding payment: %v", err)
	}
	return user.Balance, nil
}

// DebitBalance decrements the wallet by amount only if the current balance
// covers it. The conditional filter makes the read-check-debit sequence safe
// against concurrent checkouts; a false return means the balance no longer
// suffices.
func (db *Database) DebitBalance(ctx context.Context, id primitive.ObjectID, amount float64) (bool, error) {
	res, err := db.users.UpdateOne(ctx,
		bson.M{"_id": id, "balance": bson.M{"$gte": amount}},
		bson.M{
			"$inc": bson.M{"balance": -amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return false, apperr.Storef(err, "debiting balance: %v", err)
	}
	return res.MatchedCount > 0, nil
}

// SetWishlist replaces the account's wishlist.
func (db *Database) SetWishlist(ctx context.Context, id primitive.ObjectID, wishlist []primitive.ObjectID) error {
	if wishlist == nil {
		wishlist = []primitive.ObjectID{}
	}
	res, err := db.users.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"wishlist": wishlist, "updated_at": time.Now()}},
	)
	if err != nil {
		return apperr.Storef(err, "updating wishlist: %v", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFoundf("User not found")
	}
	return nil
}

// CountUsers returns the total number of accounts.
func (db *Database) CountUsers(ctx context.Context) (int64, error) {
	n, err := db.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Storef(err, "counting users: %v", err)
	}
	return n, nil
}
