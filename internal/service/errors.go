package service

import "errors"

var (
	// ErrEmailTaken means registration hit an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials means login failed on email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound means the task does not exist or belongs to another
	// user; callers cannot tell the two apart.
	ErrNotFound = errors.New("task not found")
)
