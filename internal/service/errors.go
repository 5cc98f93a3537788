package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrGameClosed            = errors.New("game has already ended")
	ErrDuplicateRegistration = errors.New("this email is already registered for this game")
	ErrGameNotFound          = errors.New("game not found")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrAnnouncementNotFound  = errors.New("announcement not found")
	ErrWrongCredentials      = errors.New("wrong credentials")
	ErrAlreadyProcessed      = errors.New("request was already processed")
	ErrNotCancellable        = errors.New("registration cannot be cancelled")
	ErrInvalidTarget         = errors.New("invalid target list")
	ErrAccessCodeExhausted   = errors.New("could not allocate a unique access code")
	ErrSessionInvalid        = errors.New("session invalid or revoked")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translateNotFound maps a repository miss onto a domain error and wraps anything else.
func translateNotFound(err error, notFound error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
