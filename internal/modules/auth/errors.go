package auth

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionInvalid     = errors.New("session rejected by catalog service")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
