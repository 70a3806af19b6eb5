package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

// EmptyCartError signals a checkout attempted against a cart with no items.
type EmptyCartError struct {
	Message string
}

func (e *EmptyCartError) Error() string {
	return e.Message
}

func NewEmptyCartError(message string) *EmptyCartError {
	return &EmptyCartError{Message: message}
}

func IsEmptyCartError(err error) (*EmptyCartError, bool) {
	if ece, ok := err.(*EmptyCartError); ok {
		return ece, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

// DuplicateOrderNumberError is the internal conflict signal raised when two
// allocations race onto the same order number. The use case retries the whole
// allocate-and-insert transaction a bounded number of times before giving up.
type DuplicateOrderNumberError struct {
	Message string
	Cause   error
}

func (e *DuplicateOrderNumberError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DuplicateOrderNumberError) Unwrap() error {
	return e.Cause
}

func NewDuplicateOrderNumberError(message string, cause error) *DuplicateOrderNumberError {
	return &DuplicateOrderNumberError{Message: message, Cause: cause}
}

func IsDuplicateOrderNumberError(err error) (*DuplicateOrderNumberError, bool) {
	if de, ok := err.(*DuplicateOrderNumberError); ok {
		return de, true
	}
	return nil, false
}

// UnavailableError wraps a failure to reach the backing store. Transient; the
// caller may retry the whole checkout.
type UnavailableError struct {
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

func NewUnavailableError(message string, cause error) *UnavailableError {
	return &UnavailableError{Message: message, Cause: cause}
}

func IsUnavailableError(err error) (*UnavailableError, bool) {
	if ue, ok := err.(*UnavailableError); ok {
		return ue, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
