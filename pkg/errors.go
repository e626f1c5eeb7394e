// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LerianStudio/datagage/pkg/constant"
)

// EntityNotFoundError records an error indicating an entity was not found in any case that caused it.
// You can use it to representing a Database not found, cache not found or any other repository.
type EntityNotFoundError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityNotFoundError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		if strings.TrimSpace(e.EntityType) != "" {
			return fmt.Sprintf("Entity %s not found", e.EntityType)
		}

		if e.Err != nil {
			return e.Err.Error()
		}

		return "entity not found"
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityNotFoundError) Unwrap() error {
	return e.Err
}

// ValidationError records an error indicating the request carried invalid data.
type ValidationError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string
	Message    string
	Code       string
	Err        error `json:"err,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if strings.TrimSpace(e.Code) != "" {
		return fmt.Sprintf("%s - %s", e.Code, e.Message)
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// UnprocessableOperationError indicates an operation that couldn't be performant because it's invalid.
type UnprocessableOperationError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e UnprocessableOperationError) Error() string {
	return e.Message
}

// ServiceUnavailableError indicates a dependency refused the call, e.g. an open circuit breaker.
type ServiceUnavailableError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e ServiceUnavailableError) Error() string {
	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ServiceUnavailableError) Unwrap() error {
	return e.Err
}

// InternalServerError indicates a precondition failed during an operation.
type InternalServerError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e InternalServerError) Error() string {
	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e InternalServerError) Unwrap() error {
	return e.Err
}

// ConnectionError reports a transport, authentication or timeout failure while connecting to a data source.
type ConnectionError struct {
	EngineType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e ConnectionError) Error() string {
	if strings.TrimSpace(e.Message) == "" && e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError reports a query rejected by the engine, including unsupported document operations.
type QueryError struct {
	EngineType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e QueryError) Error() string {
	if strings.TrimSpace(e.Message) == "" && e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e QueryError) Unwrap() error {
	return e.Err
}

// SchemaError reports a failure while reading structural metadata from a data source.
type SchemaError struct {
	EngineType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e SchemaError) Error() string {
	if strings.TrimSpace(e.Message) == "" && e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e SchemaError) Unwrap() error {
	return e.Err
}

// UnsupportedEngineError is returned for engine types with no registered implementation.
type UnsupportedEngineError struct {
	EngineType string
	Title      string
	Message    string
	Code       string
}

// Error implements the error interface.
func (e UnsupportedEngineError) Error() string {
	return e.Message
}

// NewConnectionError wraps an engine fault raised while connecting.
func NewConnectionError(engineType string, err error) ConnectionError {
	return ConnectionError{
		EngineType: engineType,
		Code:       constant.ErrConnectionFailed.Error(),
		Title:      "Connection Failed",
		Message:    errMessage(err),
		Err:        err,
	}
}

// NewQueryError wraps an engine fault raised while executing a query.
func NewQueryError(engineType string, err error) QueryError {
	return QueryError{
		EngineType: engineType,
		Code:       constant.ErrQueryFailed.Error(),
		Title:      "Query Failed",
		Message:    errMessage(err),
		Err:        err,
	}
}

// NewUnsupportedOperationError names a document operation the engine does not run.
func NewUnsupportedOperationError(engineType, operation string) QueryError {
	return QueryError{
		EngineType: engineType,
		Code:       constant.ErrUnsupportedOperation.Error(),
		Title:      "Unsupported Operation",
		Message:    "Unsupported operation: " + operation,
	}
}

// NewSchemaError wraps an engine fault raised during introspection.
func NewSchemaError(engineType string, err error) SchemaError {
	return SchemaError{
		EngineType: engineType,
		Code:       constant.ErrSchemaFailed.Error(),
		Title:      "Schema Introspection Failed",
		Message:    errMessage(err),
		Err:        err,
	}
}

// NewUnsupportedEngineError names an engine type that cannot be served.
func NewUnsupportedEngineError(engineType string) UnsupportedEngineError {
	return UnsupportedEngineError{
		EngineType: engineType,
		Code:       constant.ErrUnsupportedEngine.Error(),
		Title:      "Unsupported Database Type",
		Message:    constant.UnsupportedEngineMessage + engineType,
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

// ResponseError is a struct used to return errors to the client.
type ResponseError struct {
	Code    int    `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error returns the message of the ResponseError.
func (r ResponseError) Error() string {
	return r.Message
}

// ValidationKnownFieldsError records an error that occurred during a validation of known fields.
type ValidationKnownFieldsError struct {
	EntityType string           `json:"entityType,omitempty"`
	Title      string           `json:"title,omitempty"`
	Code       string           `json:"code,omitempty"`
	Message    string           `json:"message,omitempty"`
	Fields     FieldValidations `json:"fields,omitempty"`
}

// Error returns the error message for a ValidationKnownFieldsError.
func (r ValidationKnownFieldsError) Error() string {
	return r.Message
}

// FieldValidations is a map of known fields and their validation errors.
type FieldValidations map[string]string

// ValidationUnknownFieldsError records an error that occurred during a validation of known fields.
type ValidationUnknownFieldsError struct {
	EntityType string        `json:"entityType,omitempty"`
	Title      string        `json:"title,omitempty"`
	Code       string        `json:"code,omitempty"`
	Message    string        `json:"message,omitempty"`
	Fields     UnknownFields `json:"fields,omitempty"`
}

// Error returns the error message for a ValidationUnknownFieldsError.
func (r ValidationUnknownFieldsError) Error() string {
	return r.Message
}

// UnknownFields is a map of unknown fields and their error messages.
type UnknownFields map[string]any

// ValidateInternalError validates the error and returns an appropriate InternalServerError.
func ValidateInternalError(err error, entityType string) error {
	return InternalServerError{
		EntityType: entityType,
		Code:       constant.ErrInternalServer.Error(),
		Title:      "Internal Server Error",
		Message:    "The server encountered an unexpected error. Please try again later or contact support.",
		Err:        err,
	}
}

// ValidateBadRequestFieldsError validates the error and returns the appropriate bad request error code, title, message, and the invalid fields.
//
// Parameters:
// - requiredFields: A map of missing required fields and their error messages.
// - knownInvalidFields: A map of known invalid fields and their validation errors.
// - entityType: The type of the entity associated with the error.
// - unknownFields: A map of unknown fields and their error messages.
func ValidateBadRequestFieldsError(requiredFields, knownInvalidFields map[string]string, entityType string, unknownFields map[string]any) error {
	if len(unknownFields) == 0 && len(knownInvalidFields) == 0 && len(requiredFields) == 0 {
		return errors.New("expected knownInvalidFields, unknownFields and requiredFields to be non-empty")
	}

	if len(unknownFields) > 0 {
		return ValidationUnknownFieldsError{
			EntityType: entityType,
			Code:       constant.ErrUnexpectedFieldsInTheRequest.Error(),
			Title:      "Unexpected Fields in the Request",
			Message:    "The request body contains more fields than expected. Please send only the allowed fields as per the documentation. The unexpected fields are listed in the fields object.",
			Fields:     unknownFields,
		}
	}

	if len(requiredFields) > 0 {
		return ValidationKnownFieldsError{
			EntityType: entityType,
			Code:       constant.ErrMissingFieldsInRequest.Error(),
			Title:      "Missing Fields in Request",
			Message:    "Your request is missing one or more required fields. Please refer to the documentation to ensure all necessary fields are included in your request.",
			Fields:     requiredFields,
		}
	}

	return ValidationKnownFieldsError{
		EntityType: entityType,
		Code:       constant.ErrBadRequest.Error(),
		Title:      "Bad Request",
		Message:    "The server could not understand the request due to malformed syntax. Please check the listed fields and try again.",
		Fields:     knownInvalidFields,
	}
}

// ValidateBusinessError validates the error and returns the appropriate business error code, title, and message.
func ValidateBusinessError(err error, entityType string, args ...any) error {
	errorMap := map[error]error{
		constant.ErrMissingRequiredFields: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrMissingRequiredFields.Error(),
			Title:      "Missing Required Fields",
			Message:    fmt.Sprintf("One or more required fields are missing: %v. Please provide them and try again.", args),
		},
		constant.ErrInvalidPathParameter: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidPathParameter.Error(),
			Title:      "Invalid Path Parameter",
			Message:    fmt.Sprintf("One or more path parameters are in an incorrect format. Please check the following parameters %v and ensure they meet the required format before trying again.", args...),
		},
		constant.ErrEntityNotFound: EntityNotFoundError{
			EntityType: entityType,
			Code:       constant.ErrEntityNotFound.Error(),
			Title:      "Entity Not Found",
			Message:    "No entity was found for the given ID. Please make sure to use the correct ID for the entity you are trying to manage.",
		},
		constant.ErrInvalidQueryParameter: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidQueryParameter.Error(),
			Title:      "Invalid Query Parameter",
			Message:    fmt.Sprintf("One or more query parameters are in an incorrect format. Please check the following parameters '%v' and ensure they meet the required format before trying again.", args),
		},
		constant.ErrPaginationLimitExceeded: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrPaginationLimitExceeded.Error(),
			Title:      "Pagination Limit Exceeded",
			Message:    fmt.Sprintf("The pagination limit exceeds the maximum allowed of %v items per page. Please verify the limit and try again.", args...),
		},
		constant.ErrInvalidEngineType: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidEngineType.Error(),
			Title:      "Invalid Database Type",
			Message:    fmt.Sprintf("The database type %v is not recognized. Please use one of the documented types.", args...),
		},
		constant.ErrConnectionTestFailed: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrConnectionTestFailed.Error(),
			Title:      "Connection Test Failed",
			Message:    fmt.Sprintf(constant.ConnectionFailedPrefix+"%v", args...),
		},
		constant.ErrInvalidDocumentQuery: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidDocumentQuery.Error(),
			Title:      "Invalid Document Query",
			Message:    fmt.Sprintf("The document query is malformed: %v. Provide a collection, an operation and optional filter, projection and options.", args...),
		},
		constant.ErrEmptyQuery: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrEmptyQuery.Error(),
			Title:      "Empty Query",
			Message:    "The query expression is empty. Please provide a query and try again.",
		},
		constant.ErrDataSourceUnavailable: ServiceUnavailableError{
			EntityType: entityType,
			Code:       constant.ErrDataSourceUnavailable.Error(),
			Title:      "Data Source Unavailable",
			Message:    fmt.Sprintf("The data source %v is temporarily unavailable after repeated failures. Please try again later.", args...),
		},
	}

	if mappedError, found := errorMap[err]; found {
		return mappedError
	}

	return err
}

// IsBusinessError reports whether err fails the same way on every attempt:
// a missing record, a rejected payload, an unsupported engine, or a query or
// introspection the database itself refused. A connection fault anywhere in the
// chain makes it a technical error.
func IsBusinessError(err error) bool {
	if err == nil {
		return false
	}

	var connErr ConnectionError
	if errors.As(err, &connErr) {
		return false
	}

	var (
		notFoundErr      EntityNotFoundError
		validationErr    ValidationError
		unprocessableErr UnprocessableOperationError
		unsupportedErr   UnsupportedEngineError
		queryErr         QueryError
		schemaErr        SchemaError
		knownFieldsErr   ValidationKnownFieldsError
		unknownFieldsErr ValidationUnknownFieldsError
	)

	return errors.As(err, &notFoundErr) ||
		errors.As(err, &validationErr) ||
		errors.As(err, &unprocessableErr) ||
		errors.As(err, &unsupportedErr) ||
		errors.As(err, &queryErr) ||
		errors.As(err, &schemaErr) ||
		errors.As(err, &knownFieldsErr) ||
		errors.As(err, &unknownFieldsErr)
}
