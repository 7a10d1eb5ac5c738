package handlers

import (
	"net/http"

	"dukaan/internal/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats is the read-only admin fan-in: entity counts, the sum of
// every order's total price (cancelled orders included) and the five most
// recent orders with the buyer's name attached.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	totalSales, err := h.db.TotalSales(ctx)
	if err != nil {
		respondError(c, "GetDashboardStats", err)
		return
	}
	totalOrders, err := h.db.CountOrders(ctx)
	if err != nil {
		respondError(c, "GetDashboardStats", err)
		return
	}
	totalProducts, err := h.db.CountProducts(ctx)
	if err != nil {
		respondError(c, "GetDashboardStats", err)
		return
	}
	totalUsers, err := h.db.CountUsers(ctx)
	if err != nil {
		respondError(c, "GetDashboardStats", err)
		return
	}

	recent, err := h.db.GetRecentOrders(ctx, 5)
	if err != nil {
		respondError(c, "GetDashboardStats", err)
		return
	}
	recentViews, err := h.orderViews(c, recent, true)
	if err != nil {
		respondError(c, "GetDashboardStats", err)
		return
	}

	c.JSON(http.StatusOK, models.DashboardStats{
		TotalSales:    totalSales,
		TotalOrders:   totalOrders,
		TotalProducts: totalProducts,
		TotalUsers:    totalUsers,
		RecentOrders:  recentViews,
	})
}
