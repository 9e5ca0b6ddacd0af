package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the base interface for all application errors
type AppError interface {
	error
	HTTPStatus() int
	Code() string
}

// ConfigurationError represents a malformed or inconsistent entity registry.
// It is fatal: the process refuses to start when the registry cannot be
// loaded cleanly.
type ConfigurationError struct {
	Source  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("registry configuration error in %s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("registry configuration error: %s", e.Message)
}

func (e *ConfigurationError) HTTPStatus() int {
	return http.StatusInternalServerError
}

func (e *ConfigurationError) Code() string {
	return "CONFIGURATION_ERROR"
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(source, message string) *ConfigurationError {
	return &ConfigurationError{Source: source, Message: message}
}

// InvalidEntityError represents a facade call naming an undeclared entity.
// This is a programming error on the caller's side, not user input.
type InvalidEntityError struct {
	Entity string
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("unknown entity '%s'", e.Entity)
}

func (e *InvalidEntityError) HTTPStatus() int {
	return http.StatusNotFound
}

func (e *InvalidEntityError) Code() string {
	return "INVALID_ENTITY"
}

// NewInvalidEntityError creates a new InvalidEntityError
func NewInvalidEntityError(entity string) *InvalidEntityError {
	return &InvalidEntityError{Entity: entity}
}

// InvalidFieldError represents a filter or order field that is not declared
// on the entity being queried
type InvalidFieldError struct {
	Entity string
	Field  string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("entity '%s' has no field '%s'", e.Entity, e.Field)
}

func (e *InvalidFieldError) HTTPStatus() int {
	return http.StatusBadRequest
}

func (e *InvalidFieldError) Code() string {
	return "INVALID_FIELD"
}

// NewInvalidFieldError creates a new InvalidFieldError
func NewInvalidFieldError(entity, field string) *InvalidFieldError {
	return &InvalidFieldError{Entity: entity, Field: field}
}

// ValidationError represents user input that fails a declared constraint.
// Recoverable: callers surface it as a warning, not a failure.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

func (e *ValidationError) Code() string {
	return "VALIDATION_ERROR"
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// OperationNotAllowedError represents an operation outside the entity's
// declared operations set
type OperationNotAllowedError struct {
	Operation string
	Entity    string
}

func (e *OperationNotAllowedError) Error() string {
	return fmt.Sprintf("operation denied: cannot %s %s", e.Operation, e.Entity)
}

func (e *OperationNotAllowedError) HTTPStatus() int {
	return http.StatusForbidden
}

func (e *OperationNotAllowedError) Code() string {
	return "OPERATION_NOT_ALLOWED"
}

// NewOperationNotAllowedError creates a new OperationNotAllowedError
func NewOperationNotAllowedError(operation, entity string) *OperationNotAllowedError {
	return &OperationNotAllowedError{Operation: operation, Entity: entity}
}

// NotFoundError represents a record that was not found
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with ID '%s' not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

func (e *NotFoundError) Code() string {
	return "NOT_FOUND"
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// SystemError represents an unexpected failure reaching storage.
// The operation is aborted and the cause preserved for logs.
type SystemError struct {
	Message string
	Cause   error
}

func (e *SystemError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("system error: %s (caused by: %v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("system error: %s", e.Message)
}

func (e *SystemError) HTTPStatus() int {
	return http.StatusInternalServerError
}

func (e *SystemError) Code() string {
	return "SYSTEM_ERROR"
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{Message: message, Cause: cause}
}

// Helper functions for error checking

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configuration *ConfigurationError
	return errors.As(err, &configuration)
}

// IsInvalidEntity checks if an error is an InvalidEntityError
func IsInvalidEntity(err error) bool {
	var invalidEntity *InvalidEntityError
	return errors.As(err, &invalidEntity)
}

// IsInvalidField checks if an error is an InvalidFieldError
func IsInvalidField(err error) bool {
	var invalidField *InvalidFieldError
	return errors.As(err, &invalidField)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsSystem checks if an error is a SystemError
func IsSystem(err error) bool {
	var system *SystemError
	return errors.As(err, &system)
}

// GetHTTPStatus returns the HTTP status code for an error
// Returns 500 if the error doesn't implement AppError
func GetHTTPStatus(err error) int {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// GetErrorCode returns the error code for an error
// Returns "UNKNOWN_ERROR" if the error doesn't implement AppError
func GetErrorCode(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}
	return "UNKNOWN_ERROR"
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ToResponse converts an error to an ErrorResponse
func ToResponse(err error) ErrorResponse {
	return ErrorResponse{
		Code:    GetErrorCode(err),
		Message: err.Error(),
	}
}
