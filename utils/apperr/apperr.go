// Package apperr defines the error taxonomy shared by the workflow services
// and handlers. Handlers translate these into HTTP responses; services never
// touch fiber directly.
package apperr

import "errors"

type Kind int

const (
	// KindNotFound covers rows that are absent or outside the caller's
	// organization. Cross-organization access deliberately answers NotFound
	// so existence never leaks.
	KindNotFound Kind = iota
	KindValidation
	KindStateConflict
	KindStorage
)

type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func StateConflict(message string) *Error {
	return &Error{Kind: KindStateConflict, Message: message}
}

func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsNotFound(err error) bool      { k, ok := KindOf(err); return ok && k == KindNotFound }
func IsValidation(err error) bool    { k, ok := KindOf(err); return ok && k == KindValidation }
func IsStateConflict(err error) bool { k, ok := KindOf(err); return ok && k == KindStateConflict }
func IsStorage(err error) bool       { k, ok := KindOf(err); return ok && k == KindStorage }
