package services

import "errors"

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrEmailInUse         = errors.New("an account already exists with this email")
	ErrAccountNotFound    = errors.New("no account found with this email")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account is awaiting approval")
	ErrUnauthorized       = errors.New("unauthorized")
)
