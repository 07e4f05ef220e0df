package util

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("permission denied")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoLab              = errors.New("exercise has no lab template")
	ErrSessionExpired     = errors.New("session expired")
)
