package graph

import (
	"errors"

	"github.com/eventsplanner/events-api/internal/domain"
)

// Error codes reported in the extensions.code field of a GraphQL error.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeDuplicateUser    = "DUPLICATE_USER"
	CodePersistence      = "PERSISTENCE_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

var errMutationOverGET = errors.New("Can only perform a mutation operation from a POST request.")

// Error is a resolver failure tagged with its kind. The message is the
// underlying error's, unchanged.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Extensions is picked up by the executor and rendered next to the message.
func (e *Error) Extensions() map[string]any {
	return map[string]any{"code": e.Code}
}

// classify maps a service error onto the resolver error taxonomy.
func classify(err error) *Error {
	var gqlErr *Error
	switch {
	case errors.As(err, &gqlErr):
		return gqlErr
	case errors.Is(err, domain.ErrDuplicateUser):
		return &Error{Code: CodeDuplicateUser, Err: domain.ErrDuplicateUser}
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidDate):
		return &Error{Code: CodeValidation, Err: err}
	default:
		return &Error{Code: CodePersistence, Err: err}
	}
}
