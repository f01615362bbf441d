package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/services"
)

const userIDKey = "userID"

// identityParams binds the path-embedded identity token. Authentication
// happens upstream; this layer only requires a well-formed address.
type identityParams struct {
	Email string `uri:"email" binding:"required,email"`
}

// Identity resolves the :email path parameter to a user record, once per
// request, and stores the resolved user ID in the Gin context. Every
// downstream store call takes that ID explicitly; nothing re-resolves
// the email. A missing user is 404 on every path.
func Identity(users services.UserServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params identityParams
		if err := c.ShouldBindUri(&params); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Email Id is required"})
			return
		}

		user, err := users.GetUserByEmail(params.Email)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// UserID returns the user ID resolved by Identity.
func UserID(c *gin.Context) (string, bool) {
	id, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	return id.(string), true
}

func abortWithError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.AbortWithStatusJSON(appErr.StatusCode, gin.H{"error": appErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternalServer.Message})
}
