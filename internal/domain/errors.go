package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateUser = errors.New("User exists already.")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidDate   = errors.New("invalid date")
)
