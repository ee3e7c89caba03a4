package tmdb

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrConstruction indicates an entity was built without its identifying fields
	ErrConstruction = errors.New("invalid entity construction")
	// ErrNoSession indicates an account operation was attempted before login
	ErrNoSession = errors.New("no session: log in first")
	// ErrNoToken indicates the request token is missing or not yet validated
	ErrNoToken = errors.New("no valid request token")
	// ErrUnexpectedShape indicates a response lacked a field the accessor requires
	ErrUnexpectedShape = errors.New("unexpected response shape")
	// ErrIncomparable indicates an equality check across entity kinds
	ErrIncomparable = errors.New("entities of different kinds are not comparable")
	// ErrUnknownImageSize indicates a size token the configuration does not list for the image kind
	ErrUnknownImageSize = errors.New("unknown image size")
	// ErrInvalidOptions indicates invalid search or discover options
	ErrInvalidOptions = errors.New("invalid options")
)

// ConstructionError reports a missing or mistyped identifying field
type ConstructionError struct {
	Kind  string
	Field string
	Err   error
}

// Error implements the error interface
func (e *ConstructionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot construct %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("cannot construct %s: %s: %v", e.Kind, e.Field, e.Err)
}

// Unwrap exposes both ErrConstruction and the underlying validation error
func (e *ConstructionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConstruction}
	}
	return []error{ErrConstruction, e.Err}
}

// SessionError is returned by account operations that need a session
type SessionError struct {
	Operation string
}

// Error implements the error interface
func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, ErrNoSession)
}

// Unwrap returns ErrNoSession
func (e *SessionError) Unwrap() error {
	return ErrNoSession
}

// TokenError is returned by the login steps that need a request token
type TokenError struct {
	Operation string
	Reason    string
}

// Error implements the error interface
func (e *TokenError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Operation, ErrNoToken, e.Reason)
}

// Unwrap returns ErrNoToken
func (e *TokenError) Unwrap() error {
	return ErrNoToken
}

// ShapeError reports a response that is missing a field or holds it with the wrong type
type ShapeError struct {
	Kind  string
	Field string
	Err   error
}

// Error implements the error interface
func (e *ShapeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: field %q: %v", e.Kind, e.Field, ErrUnexpectedShape)
	}
	return fmt.Sprintf("%s: field %q: %v: %v", e.Kind, e.Field, ErrUnexpectedShape, e.Err)
}

// Unwrap exposes ErrUnexpectedShape and the conversion error, if any
func (e *ShapeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnexpectedShape}
	}
	return []error{ErrUnexpectedShape, e.Err}
}
