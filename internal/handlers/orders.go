package handlers

import (
	"net/http"

	"dukaan/internal/apperr"
	"dukaan/internal/models"
	"dukaan/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateOrder runs checkout: the cart becomes an order snapshot and the
// wallet is debited.
func (h *Handler) CreateOrder(c *gin.Context) {
	var form models.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, "CreateOrder", apperr.Validationf("Invalid request body"))
		return
	}
	if form.UserID == "" || form.ShippingAddress == "" || form.PaymentMethod == "" {
		respondError(c, "CreateOrder", apperr.Validationf("userId, address and payment are required"))
		return
	}
	if !requireSelfOrAdminBody(c, form.UserID) {
		return
	}
	userID, err := primitive.ObjectIDFromHex(form.UserID)
	if err != nil {
		respondError(c, "CreateOrder", apperr.Validationf("Invalid userId"))
		return
	}

	order, err := h.checkout.PlaceOrder(c.Request.Context(), services.CheckoutInput{
		UserID:          userID,
		ShippingAddress: form.ShippingAddress,
		PaymentMethod:   form.PaymentMethod,
		ShippingPrice:   form.ShippingPrice,
		TaxPrice:        form.TaxPrice,
	})
	if err != nil {
		respondError(c, "CreateOrder", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetAllOrders lists every order, newest first, with user and product
// display fields resolved.
func (h *Handler) GetAllOrders(c *gin.Context) {
	orders, err := h.db.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, "GetAllOrders", err)
		return
	}
	views, err := h.orderViews(c, orders, true)
	if err != nil {
		respondError(c, "GetAllOrders", err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetUserOrders lists one user's orders, newest first.
func (h *Handler) GetUserOrders(c *gin.Context) {
	userID, err := objectIDParam(c, "userId")
	if err != nil {
		respondError(c, "GetUserOrders", err)
		return
	}
	orders, err := h.db.GetOrdersByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "GetUserOrders", err)
		return
	}
	views, err := h.orderViews(c, orders, false)
	if err != nil {
		respondError(c, "GetUserOrders", err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetOrderByID returns a single order with product display fields resolved.
func (h *Handler) GetOrderByID(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "GetOrderByID", err)
		return
	}
	order, err := h.db.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetOrderByID", err)
		return
	}
	views, err := h.orderViews(c, []models.Order{*order}, false)
	if err != nil {
		respondError(c, "GetOrderByID", err)
		return
	}
	c.JSON(http.StatusOK, views[0])
}

// UpdateOrderStatus persists a new status verbatim. Any value in the enum is
// accepted regardless of the current status.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "UpdateOrderStatus", err)
		return
	}
	var form models.OrderStatusForm
	if err := c.ShouldBindJSON(&form); err != nil || !form.Status.Valid() {
		respondError(c, "UpdateOrderStatus", apperr.Validationf("Invalid order status"))
		return
	}

	order, err := h.db.UpdateOrderStatus(c.Request.Context(), id, form.Status)
	if err != nil {
		respondError(c, "UpdateOrderStatus", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// orderViews is the read-time join attaching product display fields, and
// optionally the user's name and email, to stored order snapshots.
func (h *Handler) orderViews(c *gin.Context, orders []models.Order, withUser bool) ([]models.OrderView, error) {
	ctx := c.Request.Context()

	productSeen := map[primitive.ObjectID]bool{}
	productIDs := []primitive.ObjectID{}
	userSeen := map[primitive.ObjectID]bool{}
	userIDs := []primitive.ObjectID{}
	for _, o := range orders {
		for _, item := range o.Items {
			if !productSeen[item.ProductID] {
				productSeen[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
		if withUser && !userSeen[o.UserID] {
			userSeen[o.UserID] = true
			userIDs = append(userIDs, o.UserID)
		}
	}

	products, err := h.db.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	userByID := map[primitive.ObjectID]models.User{}
	if withUser {
		users, err := h.db.GetUsersByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			userByID[u.ID] = u
		}
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		view := models.OrderView{Order: o, Items: make([]models.OrderItemView, 0, len(o.Items))}
		for _, item := range o.Items {
			iv := models.OrderItemView{ProductID: item.ProductID, Qty: item.Qty, Price: item.Price}
			if p, ok := productByID[item.ProductID]; ok {
				iv.Name = p.Name
				iv.Images = p.Images
			}
			view.Items = append(view.Items, iv)
		}
		if withUser {
			if u, ok := userByID[o.UserID]; ok {
				view.User = &models.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
			}
		}
		views = append(views, view)
	}
	return views, nil
}
