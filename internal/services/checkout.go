package services

import (
	"context"
	"log"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckoutStore is the slice of the data store checkout needs. It spans the
// account, catalog, cart and order stores; checkout is the only workflow
// that touches all of them in one logical unit.
type CheckoutStore interface {
	GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	DebitBalance(ctx context.Context, id primitive.ObjectID, amount float64) (bool, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	SaveCartItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error
}

// CheckoutInput is everything checkout takes from the caller. Prices come
// from the catalog at checkout time, never from the request.
type CheckoutInput struct {
	UserID          primitive.ObjectID
	ShippingAddress string
	PaymentMethod   string
	ShippingPrice   float64
	TaxPrice        float64
}

// CheckoutService converts a cart into an order against the wallet balance.
type CheckoutService struct {
	store CheckoutStore
}

// NewCheckoutService creates a CheckoutService over store.
func NewCheckoutService(store CheckoutStore) *CheckoutService {
	return &CheckoutService{store: store}
}

// PlaceOrder runs the checkout workflow: resolve the cart against current
// catalog prices, validate the payment method and balance, debit the wallet,
// snapshot the order and empty the cart. Every validation failure returns
// before any store is mutated.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	if in.UserID.IsZero() || in.ShippingAddress == "" || in.PaymentMethod == "" {
		return nil, apperr.Validationf("userId, address and payment are required")
	}

	cart, err := s.store.GetCartByUserID(ctx, in.UserID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Validationf("Cart is empty")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperr.Validationf("Cart is empty")
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	priceByID := make(map[primitive.ObjectID]float64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	var itemsPrice float64
	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		price, ok := priceByID[item.ProductID]
		if !ok {
			return nil, apperr.NotFoundf("Product not found")
		}
		itemsPrice += price * float64(item.Qty)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			Price:     price,
		})
	}
	totalPrice := itemsPrice + in.ShippingPrice + in.TaxPrice

	if in.PaymentMethod != models.PaymentMethodBalance {
		return nil, apperr.UnsupportedPaymentf("Only 'Balance Wallet' payment is accepted. Please choose 'Balance' or add funds to your wallet.")
	}

	user, err := s.store.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.Balance < totalPrice {
		return nil, apperr.InsufficientFundsf("Insufficient balance. You have $%.2f but need $%.2f", user.Balance, totalPrice)
	}

	// The conditional decrement re-checks the balance at the store, so a
	// concurrent checkout cannot drive it negative.
	debited, err := s.store.DebitBalance(ctx, in.UserID, totalPrice)
	if err != nil {
		return nil, err
	}
	if !debited {
		return nil, apperr.InsufficientFundsf("Insufficient balance. You have $%.2f but need $%.2f", user.Balance, totalPrice)
	}

	order := &models.Order{
		OrderNumber:     newOrderNumber(),
		UserID:          in.UserID,
		Items:           orderItems,
		TotalPrice:      totalPrice,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		ShippingPrice:   in.ShippingPrice,
		TaxPrice:        in.TaxPrice,
		Status:          models.OrderStatusPending,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.store.SaveCartItems(ctx, in.UserID, []models.CartItem{}); err != nil {
		log.Printf("CheckoutService.PlaceOrder - clearing cart for %s: %v", in.UserID.Hex(), err)
	}
	return order, nil
}

func newOrderNumber() string {
	return "ORD-" + uuid.New().String()[:8]
}
