// Package errors holds the domain errors shared by the store, the
// code generation flow and the HTTP layer.
package errors

import stderrors "errors"

// DomainError is a coded, user-presentable failure.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on Code so wrapped copies still compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New builds an ad-hoc domain error.
func New(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// As extracts a DomainError from err.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}
