package handler

import "errors"

var (
	errNotAuthorized     = errors.New("user is not authorized")
	errNoAccess          = errors.New("no access")
	errInvalidPostID     = errors.New("invalid post ID")
	errInvalidID         = errors.New("invalid ID")
	errNotFound          = errors.New("not found")
	errMethodNotAllowed  = errors.New("method not allowed")
	errInvalidTokenClaim = errors.New("invalid token claims")
)
