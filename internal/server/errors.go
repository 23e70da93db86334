package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MissingFieldsMessage is returned when name, dreamJob or timeframe is absent.
const MissingFieldsMessage = "Missing required fields: name, dreamJob, and timeframe are required"

// internalPredictionMessage is the only detail clients see for unexpected failures.
const internalPredictionMessage = "Internal server error during prediction"

// ErrValidation indicates the request is well-formed JSON but lacks required answers
type ErrValidation struct {
	Fields  []string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrMalformedInput indicates the request body could not be parsed
type ErrMalformedInput struct {
	Cause error
}

func (e *ErrMalformedInput) Error() string {
	return "Invalid request body: " + e.Cause.Error()
}

func (e *ErrMalformedInput) Unwrap() error {
	return e.Cause
}

// ErrInternal indicates an unexpected failure while serving a prediction
type ErrInternal struct {
	Op    string
	Cause error
}

func (e *ErrInternal) Error() string {
	return fmt.Sprintf("internal error during %s: %v", e.Op, e.Cause)
}

func (e *ErrInternal) Unwrap() error {
	return e.Cause
}

// missingFieldsError builds the validation error for absent required answers.
func missingFieldsError(fields []string) *ErrValidation {
	return &ErrValidation{Fields: fields, Message: MissingFieldsMessage}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var malformed *ErrMalformedInput
	switch {
	case errors.As(err, &validation), errors.As(err, &malformed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the error text safe to send to clients. Anything that maps
// to a 5xx is replaced by a generic message.
func PublicMessage(err error) string {
	if HTTPStatus(err) >= http.StatusInternalServerError {
		return internalPredictionMessage
	}
	return err.Error()
}

// fieldList renders missing fields for logs, e.g. "name, timeframe".
func fieldList(fields []string) string {
	return strings.Join(fields, ", ")
}
