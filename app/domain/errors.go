package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidRequest = errors.New("invalid request")
	ErrValidation     = errors.New("validation error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrAlreadyExists  = errors.New("already exists")
	ErrConnection     = errors.New("connection error")
	ErrPublish        = errors.New("publish error")
	ErrInternal       = errors.New("internal server error")
)
