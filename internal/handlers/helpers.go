package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bizledger/internal/errors"
	"bizledger/internal/logger"
	"bizledger/internal/middleware"
	"bizledger/internal/services"
	"bizledger/internal/uuid"
	"bizledger/internal/validator"
)

// userID extracts the user ID resolved by middleware.Identity.
// Returns ErrUnauthorized if the route was wired without it.
func userID(c *gin.Context) (string, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	return id, nil
}

// pathID validates the :id path parameter as a UUID. Malformed ids are
// rejected here, before any store access.
func pathID(c *gin.Context, resource string) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, resource+" id is required")
	}
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+resource+" Id")
	}
	return id, nil
}

// parseDate parses a strict yyyy-MM-dd value; anything else is rejected
// rather than best-effort coerced.
func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(validator.DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+field+" date (want yyyy-MM-dd)")
	}
	return t, nil
}

// parseTransactionFilter reads the optional from/to/categoryId/branchId
// query parameters shared by listing, summary and export endpoints.
func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if from := c.Query("from"); from != "" {
		t, err := parseDate(from, "from")
		if err != nil {
			return filter, err
		}
		filter.FromDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseDate(to, "to")
		if err != nil {
			return filter, err
		}
		filter.ToDate = &t
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		if !uuid.IsValid(categoryID) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid Category Id")
		}
		filter.CategoryID = &categoryID
	}
	if branchID := c.Query("branchId"); branchID != "" {
		if !uuid.IsValid(branchID) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid Branch Id")
		}
		filter.BranchID = &branchID
	}

	return filter, nil
}

// respondWithError writes the {"error": "<message>"} envelope. AppErrors
// carry their own status; anything else is logged in full and surfaced
// as a generic internal error so no detail leaks to the client.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{"error": appErr.Message})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{"error": apperrors.ErrInternalServer.Message})
}

// ErrorResponse documents the error envelope for swagger.
type ErrorResponse struct {
	Error string `json:"error"`
}
