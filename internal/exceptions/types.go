package exceptions

import (
	"errors"
	"fmt"
	"net/http"
)

type ServiceError struct {
	StatusCode int
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

func (se *ServiceError) Unwrap() error {
	return se.Cause
}

type RequestError interface {
	ToServiceError() *ServiceError
	Error() string
}

// StatusCode resolves the HTTP status for any error, defaulting to 500.
func StatusCode(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	var re RequestError
	if errors.As(err, &re) {
		return re.ToServiceError().StatusCode
	}
	return http.StatusInternalServerError
}

type ConflictError struct {
	Resource string
	Id       string
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("Found conflicting %s with id: %s", ce.Resource, ce.Id)
}

func (ce *ConflictError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusConflict,
		Cause:      ce,
	}
}

func Conflict(resource string, id string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Id:       id,
	}
}

type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusNotFound,
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

// MalformedIdError is raised before any lookup when an id cannot be parsed.
// It surfaces as a 404 like any other failed lookup.
type MalformedIdError struct {
	Resource string
	Id       string
}

func (me *MalformedIdError) Error() string {
	return fmt.Sprintf("%s ID %s is not a valid identifier", me.Resource, me.Id)
}

func (me *MalformedIdError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusNotFound,
		Cause:      me,
	}
}

func MalformedId(resource string, id string) *MalformedIdError {
	return &MalformedIdError{
		Resource: resource,
		Id:       id,
	}
}

// NotModifiedError covers both an update that changed nothing and an update
// whose target does not exist.
type NotModifiedError struct {
	Resource string
	Id       string
}

func (nme *NotModifiedError) Error() string {
	return fmt.Sprintf("%s with ID %s did not change", nme.Resource, nme.Id)
}

func (nme *NotModifiedError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusNotModified,
		Cause:      nme,
	}
}

func NotModified(resource string, id string) *NotModifiedError {
	return &NotModifiedError{
		Resource: resource,
		Id:       id,
	}
}

type InvalidInputError struct {
	Message string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func (ie *InvalidInputError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusBadRequest,
		Cause:      ie,
	}
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type UnprocessableError struct {
	Message string
	Fields  []FieldError
}

func (ue *UnprocessableError) Error() string {
	return ue.Message
}

func (ue *UnprocessableError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      ue,
	}
}

func Unprocessable(message string, fields ...FieldError) *UnprocessableError {
	return &UnprocessableError{
		Message: message,
		Fields:  fields,
	}
}

func InternalServer(message string) *ServiceError {
	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Cause:      errors.New(message),
	}
}
