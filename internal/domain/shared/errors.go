package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInsufficientBalance = NewDomainError("INSUFFICIENT_BALANCE", "Insufficient balance available")
)

// NewInsufficientStockError builds the user-facing shortage message for a work.
// The message is in French because it is surfaced directly to end users.
func NewInsufficientStockError(title string, available, requested int) *DomainError {
	return NewDomainError(
		ErrInsufficientStock.Code,
		fmt.Sprintf("Stock insuffisant pour \"%s\". Disponible: %d, Demandé: %d", title, available, requested),
	)
}

// NewNotFoundError builds a NOT_FOUND error for a named resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(ErrNotFound.Code, fmt.Sprintf("%s not found", resource))
}

// NewInvalidStateError builds an INVALID_STATE error with a custom message
func NewInvalidStateError(message string) *DomainError {
	return NewDomainError(ErrInvalidState.Code, message)
}

// NewInvalidInputError builds an INVALID_INPUT error with a custom message
func NewInvalidInputError(message string) *DomainError {
	return NewDomainError(ErrInvalidInput.Code, message)
}

// NewInsufficientBalanceError builds an INSUFFICIENT_BALANCE error with a
// custom message
func NewInsufficientBalanceError(message string) *DomainError {
	return NewDomainError(ErrInsufficientBalance.Code, message)
}
