package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/pagination"
	"bizledger/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categories services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// nameRequest is the payload for creating or renaming a named resource.
// Emptiness is validated in the service so the message stays exact.
type nameRequest struct {
	Name string `json:"name"`
}

// bulkDeleteRequest is the payload for bulk-delete endpoints. An empty
// or absent list is allowed; the stores treat it as a successful no-op.
type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"omitempty,dive,uuid"`
}

// ListCategories handles GET /:email/categories
// @Summary     List categories
// @Description List the caller's categories
// @Tags        categories
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "data + paging metadata"
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse "User Not Found"
// @Router      /{email}/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid pagination parameters"))
		return
	}

	result, err := h.categories.ListCategories(uid, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategoryByID handles GET /:email/categories/:id
// @Summary     Get a category
// @Tags        categories
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       id path string true "Category ID"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse "Category Not Found"
// @Router      /{email}/categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := pathID(c, "Category")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categories.GetCategoryByID(uid, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

// CreateCategory handles POST /:email/categories
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       request body nameRequest true "Category name"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /{email}/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid request body"))
		return
	}

	category, err := h.categories.CreateCategory(uid, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category})
}

// UpdateCategory handles PATCH /:email/categories/:id
// @Summary     Rename a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       id path string true "Category ID"
// @Param       request body nameRequest true "New name"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse "Category Not Found"
// @Router      /{email}/categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := pathID(c, "Category")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid request body"))
		return
	}

	category, err := h.categories.UpdateCategory(uid, id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

// DeleteCategory handles DELETE /:email/categories/:id
// @Summary     Delete a category
// @Tags        categories
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       id path string true "Category ID"
// @Success     200 {object} map[string]interface{} "deleted row"
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse "Category Not Found"
// @Router      /{email}/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := pathID(c, "Category")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categories.DeleteCategory(uid, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

// BulkDeleteCategories handles POST /:email/categories/bulk-delete
// @Summary     Bulk-delete categories
// @Description Deletes the intersection of the given ids and the caller's rows; foreign ids are silently skipped
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       request body bulkDeleteRequest true "IDs to delete"
// @Success     200 {object} map[string]interface{} "rows actually deleted"
// @Failure     400 {object} ErrorResponse
// @Router      /{email}/categories/bulk-delete [post]
func (h *CategoryHandler) BulkDeleteCategories(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "ids must be a list of UUIDs"))
		return
	}

	deleted, err := h.categories.BulkDeleteCategories(uid, req.IDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": deleted})
}
