package services

import (
	"context"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartStore is the slice of the data store the cart operations need.
type CartStore interface {
	GetCartByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	CreateCart(ctx context.Context, cart *models.Cart) error
	SaveCartItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error
	GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

// CartService manages per-user carts. Carts are created lazily on first add
// and never deleted, only emptied.
type CartService struct {
	store CartStore
}

// NewCartService creates a CartService over store.
func NewCartService(store CartStore) *CartService {
	return &CartService{store: store}
}

// AddToCart stages qty of a product, merging into an existing entry for the
// same product instead of duplicating it. A zero qty defaults to 1. The
// returned flag reports whether the cart was created by this call.
func (cs *CartService) AddToCart(ctx context.Context, userID, productID primitive.ObjectID, qty int) (*models.Cart, bool, error) {
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, false, apperr.Validationf("Quantity must be at least 1")
	}

	cart, err := cs.store.GetCartByUserID(ctx, userID)
	if apperr.IsKind(err, apperr.KindNotFound) {
		cart = &models.Cart{
			UserID: userID,
			Items:  []models.CartItem{{ProductID: productID, Qty: qty}},
		}
		if err := cs.store.CreateCart(ctx, cart); err != nil {
			return nil, false, err
		}
		return cart, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Qty: qty})
	}

	if err := cs.store.SaveCartItems(ctx, userID, cart.Items); err != nil {
		return nil, false, err
	}
	return cart, false, nil
}

// UpdateQuantity sets the exact quantity on an existing entry.
func (cs *CartService) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, apperr.Validationf("Quantity must be at least 1")
	}

	cart, err := cs.store.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Qty = qty
			if err := cs.store.SaveCartItems(ctx, userID, cart.Items); err != nil {
				return nil, err
			}
			return cart, nil
		}
	}
	return nil, apperr.NotFoundf("Item not found in cart")
}

// Remove drops the entry for a product. Removing a product that is not in
// the cart is a no-op.
func (cs *CartService) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	cart, err := cs.store.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := cs.store.SaveCartItems(ctx, userID, cart.Items); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart.
func (cs *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := cs.store.GetCartByUserID(ctx, userID); err != nil {
		return err
	}
	return cs.store.SaveCartItems(ctx, userID, []models.CartItem{})
}

// GetCart returns the cart with product display fields resolved at read
// time. Entries whose product no longer exists keep their reference and
// quantity but no display fields.
func (cs *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.CartView, error) {
	cart, err := cs.store.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := cs.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	view := &models.CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]models.CartItemView, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		iv := models.CartItemView{ProductID: item.ProductID, Qty: item.Qty}
		if p, ok := byID[item.ProductID]; ok {
			iv.Name = p.Name
			iv.Price = p.Price
			iv.Images = p.Images
		}
		view.Items = append(view.Items, iv)
		view.TotalItems += item.Qty
		view.TotalPrice += iv.Price * float64(item.Qty)
	}
	return view, nil
}
