package auth

import "errors"

var (
	ErrInvalidToken = errors.New("Invalid or missing token")
	ErrTokenExpired = errors.New("Token expired")
)
