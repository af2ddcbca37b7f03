package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
