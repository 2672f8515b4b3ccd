package errorvalues

import "errors"

var (
	// Wrapped around field-level details by services, matched with
	// errors.Is at the handlers.
	ErrValidation = errors.New("invalid input")

	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrProfileNotFound = errors.New("profile doesn't exists")

	// Daily log guard: only one sleep log per user per calendar day.
	ErrLogExistsToday = errors.New("sleep log for today already exists")
	ErrLogNotFound    = errors.New("sleep log doesn't exists")

	ErrRewardNotFound = errors.New("reward doesn't exists")
	// Returned when a debit would drive the balance negative.
	ErrInsufficientPoints = errors.New("not enough points")
)
