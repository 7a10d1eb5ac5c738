package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeDB backs the handler tests with the same error classification the
// Mongo store uses.
type fakeDB struct {
	mu         sync.Mutex
	users      map[primitive.ObjectID]*models.User
	products   map[primitive.ObjectID]*models.Product
	categories map[primitive.ObjectID]*models.Category
	carts      map[primitive.ObjectID]*models.Cart
	orders     map[primitive.ObjectID]*models.Order
	orderSeq   []primitive.ObjectID
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:      map[primitive.ObjectID]*models.User{},
		products:   map[primitive.ObjectID]*models.Product{},
		categories: map[primitive.ObjectID]*models.Category{},
		carts:      map[primitive.ObjectID]*models.Cart{},
		orders:     map[primitive.ObjectID]*models.Order{},
	}
}

// --- User methods ---

func (db *fakeDB) CreateUser(_ context.Context, user *models.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == user.Email {
			return apperr.Conflictf("Email already registered")
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Wishlist == nil {
		user.Wishlist = []primitive.ObjectID{}
	}
	cp := *user
	db.users[user.ID] = &cp
	return nil
}

func (db *fakeDB) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFoundf("User not found")
}

func (db *fakeDB) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return nil, apperr.NotFoundf("User not found")
	}
	cp := *u
	return &cp, nil
}

func (db *fakeDB) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	users := []models.User{}
	for _, id := range ids {
		if u, ok := db.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (db *fakeDB) GetAllUsers(_ context.Context) ([]models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	users := []models.User{}
	for _, u := range db.users {
		users = append(users, *u)
	}
	return users, nil
}

func (db *fakeDB) UpdateUserProfile(_ context.Context, id primitive.ObjectID, form models.ProfileForm) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return nil, apperr.NotFoundf("User not found")
	}
	if form.Name != "" {
		u.Name = form.Name
	}
	if form.Email != "" {
		u.Email = form.Email
	}
	if form.Image != "" {
		u.Image = form.Image
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (db *fakeDB) UpdateUserRole(_ context.Context, id primitive.ObjectID, role models.Role) (*models.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return nil, apperr.NotFoundf("User not found")
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (db *fakeDB) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[id]; !ok {
		return apperr.NotFoundf("User not found")
	}
	delete(db.users, id)
	return nil
}

func (db *fakeDB) CreditBalance(_ context.Context, id primitive.ObjectID, amount float64) (float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return 0, apperr.NotFoundf("User not found")
	}
	u.Balance += amount
	return u.Balance, nil
}

func (db *fakeDB) DebitBalance(_ context.Context, id primitive.ObjectID, amount float64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok || u.Balance < amount {
		return false, nil
	}
	u.Balance -= amount
	return true, nil
}

func (db *fakeDB) SetWishlist(_ context.Context, id primitive.ObjectID, wishlist []primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return apperr.NotFoundf("User not found")
	}
	u.Wishlist = wishlist
	return nil
}

func (db *fakeDB) CountUsers(_ context.Context) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return int64(len(db.users)), nil
}

// --- Product methods ---

func (db *fakeDB) CreateProduct(_ context.Context, product *models.Product) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	cp := *product
	db.products[product.ID] = &cp
	return nil
}

func (db *fakeDB) GetProductByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.products[id]
	if !ok {
		return nil, apperr.NotFoundf("Product not found")
	}
	cp := *p
	return &cp, nil
}

func (db *fakeDB) GetProductsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	products := []models.Product{}
	for _, id := range ids {
		if p, ok := db.products[id]; ok {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (db *fakeDB) GetAllProducts(_ context.Context) ([]models.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	products := []models.Product{}
	for _, p := range db.products {
		products = append(products, *p)
	}
	return products, nil
}

func (db *fakeDB) SearchProducts(_ context.Context, query string) ([]models.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	products := []models.Product{}
	for _, p := range db.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (db *fakeDB) UpdateProduct(_ context.Context, id primitive.ObjectID, update models.ProductUpdate, categoryID *primitive.ObjectID) (*models.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p, ok := db.products[id]
	if !ok {
		return nil, apperr.NotFoundf("Product not found")
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Stock != nil {
		p.Stock = *update.Stock
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Images != nil {
		p.Images = update.Images
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	cp := *p
	return &cp, nil
}

func (db *fakeDB) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.products[id]; !ok {
		return apperr.NotFoundf("Product not found")
	}
	delete(db.products, id)
	return nil
}

func (db *fakeDB) CountProducts(_ context.Context) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return int64(len(db.products)), nil
}

// --- Category methods ---

func (db *fakeDB) CreateCategory(_ context.Context, category *models.Category) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, c := range db.categories {
		if c.Name == category.Name {
			return apperr.Conflictf("Category already exists")
		}
	}
	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	cp := *category
	db.categories[category.ID] = &cp
	return nil
}

func (db *fakeDB) GetCategoryByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	c, ok := db.categories[id]
	if !ok {
		return nil, apperr.NotFoundf("Category not found")
	}
	cp := *c
	return &cp, nil
}

func (db *fakeDB) GetCategoryByName(_ context.Context, name string) (*models.Category, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, c := range db.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperr.NotFoundf("Category not found")
}

func (db *fakeDB) GetCategoriesByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	categories := []models.Category{}
	for _, id := range ids {
		if c, ok := db.categories[id]; ok {
			categories = append(categories, *c)
		}
	}
	return categories, nil
}

func (db *fakeDB) GetAllCategories(_ context.Context) ([]models.Category, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	categories := []models.Category{}
	for _, c := range db.categories {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].CreatedAt.After(categories[j].CreatedAt)
	})
	return categories, nil
}

func (db *fakeDB) UpdateCategory(_ context.Context, id primitive.ObjectID, form models.CategoryForm) (*models.Category, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	c, ok := db.categories[id]
	if !ok {
		return nil, apperr.NotFoundf("Category not found")
	}
	if form.Name != "" {
		c.Name = form.Name
	}
	if form.Description != "" {
		c.Description = form.Description
	}
	cp := *c
	return &cp, nil
}

func (db *fakeDB) DeleteCategory(_ context.Context, id primitive.ObjectID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.categories[id]; !ok {
		return apperr.NotFoundf("Category not found")
	}
	delete(db.categories, id)
	return nil
}

// --- Cart methods ---

func (db *fakeDB) GetCartByUserID(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	cart, ok := db.carts[userID]
	if !ok {
		return nil, apperr.NotFoundf("Cart not found")
	}
	cp := *cart
	cp.Items = append([]models.CartItem{}, cart.Items...)
	return &cp, nil
}

func (db *fakeDB) CreateCart(_ context.Context, cart *models.Cart) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	cart.ID = primitive.NewObjectID()
	cart.CreatedAt = time.Now()
	cart.UpdatedAt = cart.CreatedAt
	cp := *cart
	cp.Items = append([]models.CartItem{}, cart.Items...)
	db.carts[cart.UserID] = &cp
	return nil
}

func (db *fakeDB) SaveCartItems(_ context.Context, userID primitive.ObjectID, items []models.CartItem) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	cart, ok := db.carts[userID]
	if !ok {
		return apperr.NotFoundf("Cart not found")
	}
	cart.Items = append([]models.CartItem{}, items...)
	cart.UpdatedAt = time.Now()
	return nil
}

// --- Order methods ---

func (db *fakeDB) CreateOrder(_ context.Context, order *models.Order) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	cp := *order
	db.orders[order.ID] = &cp
	db.orderSeq = append(db.orderSeq, order.ID)
	return nil
}

func (db *fakeDB) listOrders(filter func(*models.Order) bool, limit int64) []models.Order {
	orders := []models.Order{}
	// orderSeq is append-only, so walking it backwards is newest-first
	for i := len(db.orderSeq) - 1; i >= 0; i-- {
		o := db.orders[db.orderSeq[i]]
		if filter != nil && !filter(o) {
			continue
		}
		orders = append(orders, *o)
		if limit > 0 && int64(len(orders)) == limit {
			break
		}
	}
	return orders
}

func (db *fakeDB) GetAllOrders(_ context.Context) ([]models.Order, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.listOrders(nil, 0), nil
}

func (db *fakeDB) GetOrdersByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.listOrders(func(o *models.Order) bool { return o.UserID == userID }, 0), nil
}

func (db *fakeDB) GetRecentOrders(_ context.Context, limit int64) ([]models.Order, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.listOrders(nil, limit), nil
}

func (db *fakeDB) GetOrderByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	o, ok := db.orders[id]
	if !ok {
		return nil, apperr.NotFoundf("Order not found")
	}
	cp := *o
	return &cp, nil
}

func (db *fakeDB) UpdateOrderStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	o, ok := db.orders[id]
	if !ok {
		return nil, apperr.NotFoundf("Order not found")
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func (db *fakeDB) CountOrders(_ context.Context) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return int64(len(db.orders)), nil
}

func (db *fakeDB) TotalSales(_ context.Context) (float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var total float64
	for _, o := range db.orders {
		total += o.TotalPrice
	}
	return total, nil
}
