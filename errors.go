package cerebro

import (
	"context"
	"errors"
)

// Sentinel errors for gate operations.
var (
	ErrNotFound         = errors.New("cerebro: resource not found")
	ErrDecryptFailed    = errors.New("cerebro: parameter decryption failed")
	ErrSignatureInvalid = errors.New("cerebro: signature verification failed")
	ErrInvalidFormat    = errors.New("cerebro: invalid parameter format")
	ErrMethodNotAllowed = errors.New("cerebro: method not allowed")
	ErrLoadFailed       = errors.New("cerebro: child load failed")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsCanceled checks if err means the request's context ended before the
// response was ready, usually because the client went away.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsBadRequest checks if err means the client sent unusable props.
func IsBadRequest(err error) bool {
	return IsDecryptionError(err) || errors.Is(err, ErrInvalidFormat)
}
