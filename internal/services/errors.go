// Package services holds the interaction and feed core: every operation
// validates input, runs its relation-row write and counter delta as one
// transactional unit against the Store, and reports failures through the
// typed error kinds below. Raw store errors never cross this boundary.
package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure for the transport layer
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindUnauthorized Kind = "unauthorized"
	KindInvalidInput Kind = "invalid_input"
	KindAlreadyLiked Kind = "already_liked"
	KindNotLiked     Kind = "not_liked"
	KindStoreFailure Kind = "store_failure"
)

// Error is the typed failure every service operation returns
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the Kind from a service error. Anything that is not a
// *Error counts as a store failure.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStoreFailure
}

func notFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "authentication required"}
}

func invalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func alreadyLiked() *Error {
	return &Error{Kind: KindAlreadyLiked, Message: "already liked"}
}

func notLiked() *Error {
	return &Error{Kind: KindNotLiked, Message: "not liked yet"}
}

func storeFailure(op string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Message: op + " failed", cause: err}
}

// isOwner is the authorization predicate shared by every mutate/delete
// operation: identity equality, never role comparison.
func isOwner(callerID, ownerID uint) bool {
	return callerID != 0 && callerID == ownerID
}
