package auth

import "errors"

var (
	ErrPhonePasswordRequired = errors.New("Phone and password are required")
	ErrInvalidPhone          = errors.New("Invalid Phone")
	ErrIncorrectPassword     = errors.New("Incorrect Password")
	ErrNotAuthenticated      = errors.New("Not authenticated")
)
