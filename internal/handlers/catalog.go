package handlers

import (
	"net/http"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateProduct adds a catalog entry. The category reference must resolve.
func (h *Handler) CreateProduct(c *gin.Context) {
	var form models.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, "CreateProduct", apperr.Validationf("Invalid request body"))
		return
	}
	if form.Name == "" || form.Price == 0 || form.Description == "" || form.Category == "" {
		respondError(c, "CreateProduct", apperr.Validationf("All required fields must be filled"))
		return
	}
	if form.Price < 0 {
		respondError(c, "CreateProduct", apperr.Validationf("Price must not be negative"))
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(form.Category)
	if err != nil {
		respondError(c, "CreateProduct", apperr.Validationf("Invalid category id"))
		return
	}
	if _, err := h.db.GetCategoryByID(c.Request.Context(), categoryID); err != nil {
		respondError(c, "CreateProduct", err)
		return
	}

	images := []string{}
	if form.Image != "" {
		images = append(images, form.Image)
	}
	product := &models.Product{
		Name:        form.Name,
		Price:       form.Price,
		Stock:       form.CountInStock,
		Description: form.Description,
		Images:      images,
		CategoryID:  categoryID,
	}
	if err := h.db.CreateProduct(c.Request.Context(), product); err != nil {
		respondError(c, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProducts lists the catalog with categories resolved. With ?query= it
// becomes a case-insensitive substring name search.
func (h *Handler) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		products []models.Product
		err      error
	)
	if query := c.Query("query"); query != "" {
		products, err = h.db.SearchProducts(ctx, query)
	} else {
		products, err = h.db.GetAllProducts(ctx)
	}
	if err != nil {
		respondError(c, "GetProducts", err)
		return
	}

	details, err := h.withCategories(c, products)
	if err != nil {
		respondError(c, "GetProducts", err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetProductByID returns one product with its category resolved.
func (h *Handler) GetProductByID(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "GetProductByID", err)
		return
	}
	product, err := h.db.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetProductByID", err)
		return
	}
	details, err := h.withCategories(c, []models.Product{*product})
	if err != nil {
		respondError(c, "GetProductByID", err)
		return
	}
	c.JSON(http.StatusOK, details[0])
}

// UpdateProduct applies a partial catalog update.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "UpdateProduct", err)
		return
	}
	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, "UpdateProduct", apperr.Validationf("Invalid request body"))
		return
	}
	if update.Price != nil && *update.Price < 0 {
		respondError(c, "UpdateProduct", apperr.Validationf("Price must not be negative"))
		return
	}

	var categoryID *primitive.ObjectID
	if update.Category != nil {
		cid, err := primitive.ObjectIDFromHex(*update.Category)
		if err != nil {
			respondError(c, "UpdateProduct", apperr.Validationf("Invalid category id"))
			return
		}
		if _, err := h.db.GetCategoryByID(c.Request.Context(), cid); err != nil {
			respondError(c, "UpdateProduct", err)
			return
		}
		categoryID = &cid
	}

	product, err := h.db.UpdateProduct(c.Request.Context(), id, update, categoryID)
	if err != nil {
		respondError(c, "UpdateProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a catalog entry.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "DeleteProduct", err)
		return
	}
	if err := h.db.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// withCategories is the read-time category join for product responses.
func (h *Handler) withCategories(c *gin.Context, products []models.Product) ([]models.ProductDetail, error) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, p := range products {
		if !seen[p.CategoryID] {
			seen[p.CategoryID] = true
			ids = append(ids, p.CategoryID)
		}
	}
	categories, err := h.db.GetCategoriesByIDs(c.Request.Context(), ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	details := make([]models.ProductDetail, 0, len(products))
	for _, p := range products {
		detail := models.ProductDetail{Product: p}
		if cat, ok := byID[p.CategoryID]; ok {
			detail.Category = &models.CategoryRef{ID: cat.ID, Name: cat.Name}
		}
		details = append(details, detail)
	}
	return details, nil
}
