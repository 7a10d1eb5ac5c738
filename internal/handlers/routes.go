package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the full API surface on r. The server and the tests
// share this table so the routing they see cannot drift apart.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	user := api.Group("/user")
	user.POST("/register", h.Register)
	user.POST("/login", h.Login)
	user.GET("/getUsers", h.RequireAuth(), h.RequireAdmin(), h.GetUsers)
	user.DELETE("/:id", h.RequireAuth(), h.RequireAdmin(), h.DeleteUser)
	user.PUT("/:id/profile", h.RequireAuth(), h.RequireSelfOrAdmin("id"), h.UpdateProfile)
	user.PUT("/:id/role", h.RequireAuth(), h.RequireAdmin(), h.UpdateRole)
	user.POST("/:id/payment", h.RequireAuth(), h.RequireSelfOrAdmin("id"), h.AddPayment)
	user.GET("/:id/wishlist", h.RequireAuth(), h.RequireSelfOrAdmin("id"), h.GetWishlist)
	user.POST("/:id/wishlist/:productId", h.RequireAuth(), h.RequireSelfOrAdmin("id"), h.ToggleWishlist)

	products := api.Group("/products")
	products.GET("", h.GetProducts)
	products.GET("/:id", h.GetProductByID)
	products.POST("", h.RequireAuth(), h.RequireAdmin(), h.CreateProduct)
	products.PUT("/:id", h.RequireAuth(), h.RequireAdmin(), h.UpdateProduct)
	products.DELETE("/:id", h.RequireAuth(), h.RequireAdmin(), h.DeleteProduct)

	categories := api.Group("/categories")
	categories.GET("", h.GetCategories)
	categories.GET("/:id", h.GetCategoryByID)
	categories.POST("", h.RequireAuth(), h.RequireAdmin(), h.CreateCategory)
	categories.PUT("/:id", h.RequireAuth(), h.RequireAdmin(), h.UpdateCategory)
	categories.DELETE("/:id", h.RequireAuth(), h.RequireAdmin(), h.DeleteCategory)

	cart := api.Group("/cart", h.RequireAuth())
	cart.POST("/add", h.AddToCart)
	cart.GET("/:userId", h.RequireSelfOrAdmin("userId"), h.GetCart)
	cart.PUT("/:userId/:productId", h.RequireSelfOrAdmin("userId"), h.UpdateCartItem)
	cart.DELETE("/:userId/:productId", h.RequireSelfOrAdmin("userId"), h.RemoveCartItem)
	cart.DELETE("/:userId", h.RequireSelfOrAdmin("userId"), h.ClearCart)

	orders := api.Group("/orders", h.RequireAuth())
	orders.POST("", h.CreateOrder)
	orders.GET("", h.RequireAdmin(), h.GetAllOrders)
	orders.GET("/user/:userId", h.RequireSelfOrAdmin("userId"), h.GetUserOrders)
	orders.GET("/:id", h.GetOrderByID)
	orders.PUT("/:id/status", h.RequireAdmin(), h.UpdateOrderStatus)

	api.GET("/stats", h.RequireAuth(), h.RequireAdmin(), h.GetDashboardStats)
}
