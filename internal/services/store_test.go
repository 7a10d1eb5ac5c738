package services

import (
	"context"
	"sync"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory stand-in for the Mongo store, mirroring its
// error classification.
type fakeStore struct {
	mu       sync.Mutex
	carts    map[primitive.ObjectID]*models.Cart
	products map[primitive.ObjectID]models.Product
	users    map[primitive.ObjectID]*models.User
	orders   []*models.Order

	// getUserHook lets a test skew what GetUserByID reports, to exercise
	// the stale-read path of the conditional debit.
	getUserHook func(*models.User)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carts:    map[primitive.ObjectID]*models.Cart{},
		products: map[primitive.ObjectID]models.Product{},
		users:    map[primitive.ObjectID]*models.User{},
	}
}

func (s *fakeStore) addProduct(name string, price float64) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	s.products[id] = models.Product{ID: id, Name: name, Price: price, Images: []string{name + ".jpg"}}
	return id
}

func (s *fakeStore) addUser(balance float64) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	s.users[id] = &models.User{ID: id, Name: "buyer", Balance: balance}
	return id
}

func (s *fakeStore) setPrice(id primitive.ObjectID, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[id]
	p.Price = price
	s.products[id] = p
}

func (s *fakeStore) balance(id primitive.ObjectID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id].Balance
}

func (s *fakeStore) GetCartByUserID(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil, apperr.NotFoundf("Cart not found")
	}
	cp := *cart
	cp.Items = append([]models.CartItem{}, cart.Items...)
	return &cp, nil
}

func (s *fakeStore) CreateCart(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart.ID = primitive.NewObjectID()
	cp := *cart
	cp.Items = append([]models.CartItem{}, cart.Items...)
	s.carts[cart.UserID] = &cp
	return nil
}

func (s *fakeStore) SaveCartItems(_ context.Context, userID primitive.ObjectID, items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		return apperr.NotFoundf("Cart not found")
	}
	cart.Items = append([]models.CartItem{}, items...)
	return nil
}

func (s *fakeStore) GetProductsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := []models.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *fakeStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFoundf("User not found")
	}
	cp := *user
	if s.getUserHook != nil {
		s.getUserHook(&cp)
	}
	return &cp, nil
}

func (s *fakeStore) DebitBalance(_ context.Context, id primitive.ObjectID, amount float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok || user.Balance < amount {
		return false, nil
	}
	user.Balance -= amount
	return true, nil
}

func (s *fakeStore) CreateOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	cp := *order
	s.orders = append(s.orders, &cp)
	return nil
}
