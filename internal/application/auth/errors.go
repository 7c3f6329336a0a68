package auth

import "errors"

var (
	ErrFieldsRequired    = errors.New("Username, email and password are required")
	ErrInvalidUsername   = errors.New("Invalid username")
	ErrInvalidEmail      = errors.New("Invalid email")
	ErrWeakPassword      = errors.New("Password must be at least 8 characters with a letter, a number and a special character")
	ErrPasswordMismatch  = errors.New("Passwords must match")
	ErrUsernameTaken     = errors.New("Username already taken")
	ErrEmailTaken        = errors.New("Email already registered")
	ErrInvalidCredential = errors.New("Invalid username or password")
	ErrNotAuthenticated  = errors.New("Not authenticated")
)
