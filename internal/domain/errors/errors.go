// Package errors defines the application error taxonomy: not-found,
// business-rule violation, and fatal infrastructure failures.
package errors

import (
	"net/http"

	"freshfarm/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors by business code, so copies produced by WithDetails
// still compare equal to their predefined sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == other.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Not-found errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"Cart item not found",
		"",
	)

	ErrReviewNotFound = NewBaseError(
		http.StatusNotFound,
		"REVIEW_NOT_FOUND",
		"Review not found",
		"",
	)

	ErrMessageNotFound = NewBaseError(
		http.StatusNotFound,
		"MESSAGE_NOT_FOUND",
		"Message not found",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
		"",
	)

	ErrAccountDisabled = NewBaseError(
		http.StatusUnauthorized,
		"ACCOUNT_DISABLED",
		"This account has been deactivated",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"Username already taken",
		"",
	)

	ErrEmailRegistered = NewBaseError(
		http.StatusConflict,
		"EMAIL_REGISTERED",
		"Email already registered",
		"",
	)

	ErrPasswordIncorrect = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_INCORRECT",
		"Current password is incorrect",
		"",
	)

	ErrPasswordUnchanged = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_UNCHANGED",
		"New password must be different from current password",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	// Role gate violations. These are business-rule errors, deliberately
	// distinct from not-found: a farmer asking for a cart is rejected,
	// not told the cart is missing.
	ErrOnlyBuyers = NewBaseError(
		http.StatusBadRequest,
		"ONLY_BUYERS",
		"Only buyers can perform this action",
		"",
	)

	ErrOnlyFarmers = NewBaseError(
		http.StatusBadRequest,
		"ONLY_FARMERS",
		"Only farmers can perform this action",
		"",
	)

	ErrOnlyAdmins = NewBaseError(
		http.StatusBadRequest,
		"ONLY_ADMINS",
		"Only admins can access this resource",
		"",
	)

	// Commerce business rules
	ErrProductUnavailable = NewBaseError(
		http.StatusBadRequest,
		"PRODUCT_UNAVAILABLE",
		"Product is not available",
		"",
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_STOCK",
		"Insufficient stock",
		"",
	)

	ErrEmptyOrder = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_ORDER",
		"Order must contain at least one item",
		"",
	)

	ErrOrderNotCancellable = NewBaseError(
		http.StatusBadRequest,
		"ORDER_NOT_CANCELLABLE",
		"Only pending orders can be cancelled",
		"",
	)

	ErrOrderAccessDenied = NewBaseError(
		http.StatusBadRequest,
		"ORDER_ACCESS_DENIED",
		"You cannot access this order",
		"",
	)

	ErrNotProductOwner = NewBaseError(
		http.StatusBadRequest,
		"NOT_PRODUCT_OWNER",
		"You can only modify your own products",
		"",
	)

	ErrNotReviewAuthor = NewBaseError(
		http.StatusBadRequest,
		"NOT_REVIEW_AUTHOR",
		"You can only modify your own reviews",
		"",
	)

	ErrSelfDeletion = NewBaseError(
		http.StatusBadRequest,
		"SELF_DELETION",
		"Cannot delete your own account",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
