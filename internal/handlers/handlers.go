// Package handlers maps every HTTP route to a single store operation (plus
// the checkout workflow) and converts classified errors to JSON responses.
package handlers

import (
	"context"
	"log"

	"dukaan/internal/apperr"
	"dukaan/internal/models"
	"dukaan/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DBInterface is everything the handlers and services need from the store.
type DBInterface interface {
	// User methods
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUserProfile(ctx context.Context, id primitive.ObjectID, form models.ProfileForm) (*models.User, error)
	UpdateUserRole(ctx context.Context, id primitive.ObjectID, role models.Role) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	CreditBalance(ctx context.Context, id primitive.ObjectID, amount float64) (float64, error)
	DebitBalance(ctx context.Context, id primitive.ObjectID, amount float64) (bool, error)
	SetWishlist(ctx context.Context, id primitive.ObjectID, wishlist []primitive.ObjectID) error
	CountUsers(ctx context.Context) (int64, error)
	// Product methods
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate, categoryID *primitive.ObjectID) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	CountProducts(ctx context.Context) (int64, error)
	// Category methods
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error)
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, form models.CategoryForm) (*models.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
	// Cart methods
	GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	CreateCart(ctx context.Context, cart *models.Cart) error
	SaveCartItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error
	// Order methods
	CreateOrder(ctx context.Context, order *models.Order) error
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	GetOrdersByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	GetRecentOrders(ctx context.Context, limit int64) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (float64, error)
}

// Handler holds the store and the services behind the HTTP surface.
type Handler struct {
	db       DBInterface
	cart     *services.CartService
	checkout *services.CheckoutService
	tokens   *services.TokenService
}

// NewHandler wires a Handler over the store and token service.
func NewHandler(db DBInterface, tokens *services.TokenService) *Handler {
	return &Handler{
		db:       db,
		cart:     services.NewCartService(db),
		checkout: services.NewCheckoutService(db),
		tokens:   tokens,
	}
}

// respondError logs the failure and answers with the mapped status and the
// classified message.
func respondError(c *gin.Context, op string, err error) {
	log.Printf("%s: %v", op, err)
	c.JSON(apperr.Status(err), gin.H{"message": err.Error()})
}

// objectIDParam parses a hex ObjectID route parameter.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperr.Validationf("Invalid %s", name)
	}
	return id, nil
}
