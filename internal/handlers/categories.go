package handlers

import (
	"net/http"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateCategory adds a category with a unique name.
func (h *Handler) CreateCategory(c *gin.Context) {
	var form models.CategoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, "CreateCategory", apperr.Validationf("Invalid request body"))
		return
	}
	if form.Name == "" || form.Description == "" {
		respondError(c, "CreateCategory", apperr.Validationf("Name and description are required"))
		return
	}

	if _, err := h.db.GetCategoryByName(c.Request.Context(), form.Name); err == nil {
		respondError(c, "CreateCategory", apperr.Conflictf("Category already exists"))
		return
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		respondError(c, "CreateCategory", err)
		return
	}

	category := &models.Category{Name: form.Name, Description: form.Description}
	if err := h.db.CreateCategory(c.Request.Context(), category); err != nil {
		respondError(c, "CreateCategory", err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategories lists every category, newest first.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.db.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, "GetCategories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID returns one category.
func (h *Handler) GetCategoryByID(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "GetCategoryByID", err)
		return
	}
	category, err := h.db.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetCategoryByID", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory applies a partial category update.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "UpdateCategory", err)
		return
	}
	var form models.CategoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, "UpdateCategory", apperr.Validationf("Invalid request body"))
		return
	}

	category, err := h.db.UpdateCategory(c.Request.Context(), id, form)
	if err != nil {
		respondError(c, "UpdateCategory", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category. Products keeping a reference to it are
// deliberately left alone.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		respondError(c, "DeleteCategory", err)
		return
	}
	if err := h.db.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteCategory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
