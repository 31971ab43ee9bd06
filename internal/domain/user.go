package domain

import "context"

// User is an account keyed by email. Only the password hash is ever stored.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}

// UserRepository defines persistence operations for users.
// Create must report ErrDuplicateUser when the email is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// UserInput carries the raw createUser arguments.
type UserInput struct {
	Email    string
	Password string
}
