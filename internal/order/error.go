package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUserRequired  = errors.New("order user is required")
	ErrUserNotFound  = errors.New("user not found")
)
