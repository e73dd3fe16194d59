package domain

import "errors"

var (
	ErrOrderNotFound        = errors.New("service order not found")
	ErrDuplicateOrder       = errors.New("service order already exists")
	ErrAuthenticationFailed = errors.New("user not found")
	ErrUserNotFound         = errors.New("acting user not found")
	ErrUnknownUser          = errors.New("referenced user does not exist")
	ErrDuplicateEmail       = errors.New("duplicate user email")
	ErrDuplicateUser        = errors.New("duplicate user id")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPriority      = errors.New("invalid order priority")
	ErrInvalidRole          = errors.New("invalid user role")
	ErrEmptyMessage         = errors.New("message content is empty")
	ErrForbidden            = errors.New("access forbidden")
	ErrPersistence          = errors.New("persist record store")
)
