package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

type UnavailableKind string

const (
	KindSource UnavailableKind = "source"
	KindModel  UnavailableKind = "model"
)

// UnavailableError marks a failed call to an external source, tool or
// language model.
type UnavailableError struct {
	Kind    UnavailableKind
	Name    string
	Message string
	Err     error
}

func (e *UnavailableError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg = e.Name + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func NewSourceUnavailable(name string, err error) *UnavailableError {
	return &UnavailableError{Kind: KindSource, Name: name, Message: "source unavailable", Err: err}
}

func NewModelUnavailable(msg string, err error) *UnavailableError {
	return &UnavailableError{Kind: KindModel, Message: msg, Err: err}
}

// StoreError wraps persistence failures. Its cause is never shown to API callers.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store " + e.Op + " failed: " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreFailure(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
