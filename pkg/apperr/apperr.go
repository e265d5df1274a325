// Package apperr is the ledger's error taxonomy. Every failure crossing a
// service boundary carries a stable code so the API layer can map it to an
// HTTP status without string matching.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindInvalidState Kind = "INVALID_STATE" // operation illegal for current status
	KindAlreadySold  Kind = "ALREADY_SOLD"  // terminal idempotency guard
	KindAlreadyPaid  Kind = "ALREADY_PAID"  // terminal idempotency guard
	KindNotSold      Kind = "NOT_SOLD"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindValidation   Kind = "VALIDATION"
	KindUpstream     Kind = "UPSTREAM" // scoring/disbursement adapter failure, retryable
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func NotFound(entity string, id uint) *Error {
	return New(KindNotFound, "%s %d not found", entity, id)
}

// KindOf returns the taxonomy kind of err, or "" for untyped errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// Status maps an error to the HTTP status the API boundary reports.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvalidState, KindAlreadySold, KindAlreadyPaid, KindNotSold:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
