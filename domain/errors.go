package domain

import (
	"errors"
	"fmt"

	"github.com/lb-conn/ekaer/domain/schema"
)

// ConfigurationError reports an invalid or missing client setting. It is
// returned before any network access.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// ValidationError reports a local field rule violation. Requests failing
// validation are never sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// TransportError reports a failed round trip: a network failure, a non-200
// status or an undecodable body. Body holds the raw response when one was
// received; Result holds the service result block when the body carried one.
type TransportError struct {
	StatusCode int
	Body       string
	Result     *schema.Result
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("transport failed with status %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("transport failed: %v", e.Err)
	case e.Result != nil && e.Result.Msg != "":
		return fmt.Sprintf("unexpected status code %d: %s (%s)", e.StatusCode, e.Result.Msg, e.Result.ReasonCode)
	default:
		return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BatchIndex marks a ServiceError raised for a whole batch rather than one item.
const BatchIndex = -1

// ServiceError carries a result the service reported as ERROR. Index is
// the batch item it belongs to, or BatchIndex when the whole batch was
// rejected.
type ServiceError struct {
	Index      int
	FuncCode   schema.FunctionCode
	ReasonCode string
	Message    string
}

// NewServiceError builds a batch-level ServiceError from a result block.
func NewServiceError(result schema.Result) *ServiceError {
	return &ServiceError{
		Index:      BatchIndex,
		FuncCode:   result.FuncCode,
		ReasonCode: result.ReasonCode,
		Message:    result.Msg,
	}
}

// NewItemServiceError builds a ServiceError for one batch item.
func NewItemServiceError(result schema.TradeCardOperationResult) *ServiceError {
	err := NewServiceError(result.Result)
	err.Index = result.Index
	return err
}

func (e *ServiceError) Error() string {
	if e.Index == BatchIndex {
		return fmt.Sprintf("service rejected request: %s [%s/%s]", e.Message, e.FuncCode, e.ReasonCode)
	}
	return fmt.Sprintf("service rejected item %d: %s [%s/%s]", e.Index, e.Message, e.FuncCode, e.ReasonCode)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsService reports whether err is or wraps a ServiceError.
func IsService(err error) bool {
	var target *ServiceError
	return errors.As(err, &target)
}

// IsTransport reports whether err is or wraps a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}
