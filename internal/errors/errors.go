// Package errors provides custom error types for the bizledger API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors. "not found" and "not owned" are deliberately the same
// outcome so the API never reveals whether another user's row exists.
var ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User Not Found", StatusCode: http.StatusNotFound}

// Category and branch errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category Not Found", StatusCode: http.StatusNotFound}
	ErrBranchNotFound   = &AppError{Code: "BRANCH_NOT_FOUND", Message: "Branch Not Found", StatusCode: http.StatusNotFound}
)

// Transaction errors, one sentinel per resource family.
var (
	ErrTransactionNotFound         = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction Not Found", StatusCode: http.StatusNotFound}
	ErrSalesTransactionNotFound    = &AppError{Code: "SALES_TRANSACTION_NOT_FOUND", Message: "Sales Transaction Not Found", StatusCode: http.StatusNotFound}
	ErrPurchaseTransactionNotFound = &AppError{Code: "PURCHASE_TRANSACTION_NOT_FOUND", Message: "Purchase Transaction Not Found", StatusCode: http.StatusNotFound}
)
