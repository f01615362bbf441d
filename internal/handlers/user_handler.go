package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/services"
)

// UserHandler handles user provisioning.
type UserHandler struct {
	users services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServicer) *UserHandler {
	return &UserHandler{users: users}
}

// syncUserRequest is the payload the upstream identity provider posts
// when a user signs up or changes their profile.
type syncUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// SyncUser handles POST /users
// @Summary     Sync a user from the identity provider
// @Description Upserts a user by email; repeated syncs are idempotent
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body syncUserRequest true "User identity"
// @Success     201 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse
// @Router      /users [post]
func (h *UserHandler) SyncUser(c *gin.Context) {
	var req syncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "A valid email is required"))
		return
	}

	user, err := h.users.SyncUser(req.Email, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user})
}
