package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user does not exist")
	ErrMenuNotFound       = errors.New("menu does not exist")
	ErrDuplicateOrderCode = errors.New("order code is not unique among siblings")
	ErrInvalidOrderCode   = errors.New("order code must be numeric and not the reset code")
)
