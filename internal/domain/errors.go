package domain

import "errors"

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNoSession          = errors.New("no active session")
	ErrRecordNotFound     = errors.New("record not found")
	ErrInvalidInput       = errors.New("invalid input")
)
