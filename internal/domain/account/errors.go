package account

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("unable to re-register account")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrInvalidRole          = errors.New("invalid account role")

	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)
