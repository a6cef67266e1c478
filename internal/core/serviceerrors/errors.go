package serviceerrors

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	KindInsufficientInventory
	KindPartialFailure
	KindStoreUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnprocessableEntity:
		return "unprocessable_entity"
	case KindInvalidRequest:
		return "invalid_argument"
	case KindInsufficientInventory:
		return "insufficient_inventory"
	case KindPartialFailure:
		return "partial_failure"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

// Adapters wrap these when a unit of work cannot tell whether its writes
// were applied.
var (
	ErrCommitOutcomeUnknown = errors.New("transaction commit outcome unknown")
	ErrRollbackIncomplete   = errors.New("transaction rollback incomplete")
)

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
	cause   error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

func NewInsufficientInventoryError(message string, details map[string]any) *ServiceError {
	return &ServiceError{Kind: KindInsufficientInventory, Message: message, Details: details}
}

func NewPartialFailureError(message string, details map[string]any, cause error) *ServiceError {
	return &ServiceError{Kind: KindPartialFailure, Message: message, Details: details, cause: cause}
}

// NewStoreUnavailableError names the step that failed; the cause is kept for
// logs and never rendered to clients.
func NewStoreUnavailableError(step string, cause error) *ServiceError {
	return &ServiceError{
		Kind:    KindStoreUnavailable,
		Message: fmt.Sprintf("store unavailable during %s", step),
		Details: map[string]any{"step": step},
		cause:   cause,
	}
}

// WithDetails returns a copy of err carrying details.
func WithDetails(err *ServiceError, details map[string]any) *ServiceError {
	copied := *err
	copied.Details = details
	return &copied
}
