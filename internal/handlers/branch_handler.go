package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/pagination"
	"bizledger/internal/services"
)

// BranchHandler handles branch-related requests. The surface mirrors the
// category endpoints.
type BranchHandler struct {
	branches services.BranchServicer
}

// NewBranchHandler creates a new BranchHandler.
func NewBranchHandler(branches services.BranchServicer) *BranchHandler {
	return &BranchHandler{branches: branches}
}

// ListBranches handles GET /:email/branches
// @Summary     List branches
// @Tags        branches
// @Produce     json
// @Param       email path string true "Owner email"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "User Not Found"
// @Router      /{email}/branches [get]
func (h *BranchHandler) ListBranches(c *gin.Context) {
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

	result, err := h.branches.ListBranches(uid, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBranchByID handles GET /:email/branches/:id
// @Summary     Get a branch
// @Tags        branches
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       id path string true "Branch ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Branch Not Found"
// @Router      /{email}/branches/{id} [get]
func (h *BranchHandler) GetBranchByID(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := pathID(c, "Branch")
	if err != nil {
		respondWithError(c, err)
		return
	}

	branch, err := h.branches.GetBranchByID(uid, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branch})
}

// CreateBranch handles POST /:email/branches
// @Summary     Create a branch
// @Tags        branches
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       request body nameRequest true "Branch name"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /{email}/branches [post]
func (h *BranchHandler) CreateBranch(c *gin.Context) {
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

	branch, err := h.branches.CreateBranch(uid, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": branch})
}

// UpdateBranch handles PATCH /:email/branches/:id
// @Summary     Rename a branch
// @Tags        branches
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       id path string true "Branch ID"
// @Param       request body nameRequest true "New name"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Branch Not Found"
// @Router      /{email}/branches/{id} [patch]
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := pathID(c, "Branch")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid request body"))
		return
	}

	branch, err := h.branches.UpdateBranch(uid, id, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branch})
}

// DeleteBranch handles DELETE /:email/branches/:id
// @Summary     Delete a branch
// @Tags        branches
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       id path string true "Branch ID"
// @Success     200 {object} map[string]interface{} "deleted row"
// @Failure     404 {object} ErrorResponse "Branch Not Found"
// @Router      /{email}/branches/{id} [delete]
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	uid, err := userID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := pathID(c, "Branch")
	if err != nil {
		respondWithError(c, err)
		return
	}

	branch, err := h.branches.DeleteBranch(uid, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": branch})
}

// BulkDeleteBranches handles POST /:email/branches/bulk-delete
// @Summary     Bulk-delete branches
// @Tags        branches
// @Accept      json
// @Produce     json
// @Param       email path string true "Owner email"
// @Param       request body bulkDeleteRequest true "IDs to delete"
// @Success     200 {object} map[string]interface{} "rows actually deleted"
// @Router      /{email}/branches/bulk-delete [post]
func (h *BranchHandler) BulkDeleteBranches(c *gin.Context) {
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

	deleted, err := h.branches.BulkDeleteBranches(uid, req.IDs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": deleted})
}
