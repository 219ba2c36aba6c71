package adapter

import "errors"

// Sentinel errors returned by the HTTP remote store client. They are mapped
// from response status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("remote rate limit exceeded")
	ErrInternalServerError = errors.New("remote internal error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("remote service unavailable")
	ErrGatewayTimeout      = errors.New("remote gateway timeout")

	ErrInvalidAddress   = errors.New("invalid adapter http address")
	ErrDecodingResponse = errors.New("error decoding remote response")
)
