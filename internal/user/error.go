package user

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrMissingIdentity = errors.New("identity has no provider uid")
)
