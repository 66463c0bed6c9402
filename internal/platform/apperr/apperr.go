// Package apperr define la taxonomía de errores de la app.
// Los dominios exponen sentinels con Kind; la capa web los traduce a HTTP.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindUnauthorized    Kind = "unauthorized"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindInternal        Kind = "internal"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error // causa opcional (driver, etc.)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap conserva la causa para logs; el mensaje es lo único que sale al cliente.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func InvalidArgument(msg string) *Error { return New(KindInvalidArgument, msg) }
func Unauthorized(msg string) *Error    { return New(KindUnauthorized, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func Conflict(msg string) *Error        { return New(KindConflict, msg) }
func Internal(msg string, err error) *Error {
	return Wrap(KindInternal, msg, err)
}

// KindOf resuelve el Kind de cualquier error; lo no clasificado es internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Message devuelve el mensaje seguro para el cliente.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
