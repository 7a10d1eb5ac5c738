package handlers

import (
	"net/http"
	"strings"

	"dukaan/internal/apperr"
	"dukaan/internal/models"
	"dukaan/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new account. Emails are stored lowercased; the role
// defaults to "user" unless a valid one is supplied.
func (h *Handler) Register(c *gin.Context) {
	var form models.RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, "Register", apperr.Validationf("Invalid request body"))
		return
	}
	if form.Email == "" || form.Name == "" || form.Password == "" {
		respondError(c, "Register", apperr.Validationf("email, name and password are required"))
		return
	}

	email := strings.ToLower(form.Email)
	if _, err := h.db.GetUserByEmail(c.Request.Context(), email); err == nil {
		respondError(c, "Register", apperr.Conflictf("Email already registered"))
		return
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		respondError(c, "Register", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, "Register", apperr.Storef(err, "hashing password: %v", err))
		return
	}

	role := models.RoleUser
	if form.Role.Valid() {
		role = form.Role
	}

	user := &models.User{
		Email:    email,
		Name:     form.Name,
		Password: string(hash),
		Role:     role,
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		respondError(c, "Register", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

type loginResponse struct {
	models.User
	Token    string `json:"token"`
	ExpireIn int    `json:"expirein"`
}

// Login verifies credentials and issues a session token, delivered both as
// an httpOnly cookie and in the response body.
func (h *Handler) Login(c *gin.Context) {
	var form models.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, "Login", apperr.Validationf("Invalid request body"))
		return
	}
	if form.Email == "" || form.Password == "" {
		respondError(c, "Login", apperr.Validationf("email and password are required"))
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), strings.ToLower(form.Email))
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			respondError(c, "Login", apperr.Authenticationf("User not found"))
			return
		}
		respondError(c, "Login", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		respondError(c, "Login", apperr.Authenticationf("Incorrect password"))
		return
	}

	token, err := h.tokens.Sign(user.ID, user.Role)
	if err != nil {
		respondError(c, "Login", apperr.Storef(err, "signing token: %v", err))
		return
	}

	expireIn := int(services.TokenTTL.Seconds())
	c.SetCookie("token", token, expireIn, "/", "", false, true)
	c.JSON(http.StatusOK, loginResponse{User: *user, Token: token, ExpireIn: expireIn})
}

// GetUsers lists every account. Password hashes never serialize.
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.db.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, "GetUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser removes an account.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "DeleteUser", err)
		return
	}
	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteUser", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// UpdateProfile changes name, email and image.
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "UpdateProfile", err)
		return
	}
	var form models.ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, "UpdateProfile", apperr.Validationf("Invalid request body"))
		return
	}
	form.Email = strings.ToLower(form.Email)

	user, err := h.db.UpdateUserProfile(c.Request.Context(), id, form)
	if err != nil {
		respondError(c, "UpdateProfile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateRole sets the account's role; the value must be in the closed enum.
func (h *Handler) UpdateRole(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "UpdateRole", err)
		return
	}
	var body struct {
		Role models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !body.Role.Valid() {
		respondError(c, "UpdateRole", apperr.Validationf("Invalid role"))
		return
	}

	user, err := h.db.UpdateUserRole(c.Request.Context(), id, body.Role)
	if err != nil {
		respondError(c, "UpdateRole", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// AddPayment credits the wallet. Credits must be positive so the balance
// invariant holds.
func (h *Handler) AddPayment(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "AddPayment", err)
		return
	}
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Amount <= 0 {
		respondError(c, "AddPayment", apperr.Validationf("amount must be positive"))
		return
	}

	balance, err := h.db.CreditBalance(c.Request.Context(), id, body.Amount)
	if err != nil {
		respondError(c, "AddPayment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance, "message": "Payment added successfully"})
}

// GetWishlist returns the wishlist with products resolved.
func (h *Handler) GetWishlist(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "GetWishlist", err)
		return
	}
	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetWishlist", err)
		return
	}
	products, err := h.db.GetProductsByIDs(c.Request.Context(), user.Wishlist)
	if err != nil {
		respondError(c, "GetWishlist", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ToggleWishlist adds the product to the wishlist, or removes it when
// already present.
func (h *Handler) ToggleWishlist(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "ToggleWishlist", err)
		return
	}
	productID, err := objectIDParam(c, "productId")
	if err != nil {
		respondError(c, "ToggleWishlist", err)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ToggleWishlist", err)
		return
	}

	wishlist := make([]primitive.ObjectID, 0, len(user.Wishlist)+1)
	removed := false
	for _, pid := range user.Wishlist {
		if pid == productID {
			removed = true
			continue
		}
		wishlist = append(wishlist, pid)
	}
	message := "Removed from wishlist"
	if !removed {
		wishlist = append(wishlist, productID)
		message = "Added to wishlist"
	}

	if err := h.db.SetWishlist(c.Request.Context(), id, wishlist); err != nil {
		respondError(c, "ToggleWishlist", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "wishlist": wishlist})
}
