package application

import "errors"

var (
	// ErrInvalidPassword covers both the length policy and a wrong current password on change.
	ErrInvalidPassword     = errors.New("incorrect password")
	ErrUsernameAlreadyUsed = errors.New("login name already used")
	ErrEmailAlreadyUsed    = errors.New("email is already in use")
	// ErrSignupInProgress is returned when another signup holds the same login or email.
	ErrSignupInProgress = errors.New("signup for this login or email is already in progress")

	ErrActivationKeyNotFound = errors.New("no user was found for this activation key")
	ErrResetKeyNotFound      = errors.New("no user was found for this reset key")

	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountNotActivated = errors.New("account is not activated")
	ErrAccountNotFound     = errors.New("account not found")
)
