// Package errors provides custom error types for the herdbook API.
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

// Is reports whether target is an AppError carrying the same code, so that
// errors.Is(err, ErrLedgerEntryNotFound) holds for wrapped or re-messaged copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

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

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput       = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound           = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer     = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrBackendUnavailable = &AppError{Code: "BACKEND_UNAVAILABLE", Message: "The record store is temporarily unavailable", StatusCode: http.StatusServiceUnavailable}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Animal errors.
var (
	ErrAnimalNotFound     = &AppError{Code: "ANIMAL_NOT_FOUND", Message: "Animal not found", StatusCode: http.StatusNotFound}
	ErrDuplicateTagNumber = &AppError{Code: "DUPLICATE_TAG_NUMBER", Message: "An animal with this tag number already exists", StatusCode: http.StatusConflict}
)

// Domain record errors.
var (
	ErrProductionRecordNotFound = &AppError{Code: "PRODUCTION_RECORD_NOT_FOUND", Message: "Production record not found", StatusCode: http.StatusNotFound}
	ErrFeedingRecordNotFound    = &AppError{Code: "FEEDING_RECORD_NOT_FOUND", Message: "Feeding record not found", StatusCode: http.StatusNotFound}
	ErrBreedingRecordNotFound   = &AppError{Code: "BREEDING_RECORD_NOT_FOUND", Message: "Breeding record not found", StatusCode: http.StatusNotFound}
)

// Ledger errors.
var (
	ErrLedgerEntryNotFound    = &AppError{Code: "LEDGER_ENTRY_NOT_FOUND", Message: "Ledger entry not found", StatusCode: http.StatusNotFound}
	ErrDuplicateLedgerLink    = &AppError{Code: "DUPLICATE_LEDGER_LINK", Message: "A ledger entry is already linked to this record", StatusCode: http.StatusConflict}
	ErrLedgerEntryNotEditable = &AppError{Code: "LEDGER_ENTRY_NOT_EDITABLE", Message: "Linked ledger entries are maintained by their source record", StatusCode: http.StatusBadRequest}
)
