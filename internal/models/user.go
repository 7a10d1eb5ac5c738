package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account with a wallet balance and a wishlist of
// product references. The password hash never leaves the server.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email     string               `bson:"email" json:"email"`
	Name      string               `bson:"name" json:"name"`
	Password  string               `bson:"password" json:"-"`
	Role      Role                 `bson:"role" json:"role"`
	Balance   float64              `bson:"balance" json:"balance"`
	Image     string               `bson:"image,omitempty" json:"image,omitempty"`
	Wishlist  []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// UserRef carries the display fields attached to orders on read.
type UserRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email,omitempty"`
}

// RegisterForm is the registration request body.
type RegisterForm struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginForm is the login request body.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileForm carries the fields a user may change on their profile.
type ProfileForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}
