package cerebro

import (
	"errors"

	"github.com/ohquinton/Cerebro-sub001/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// wrapEncodingError maps encoding package errors onto cerebro sentinels so
// callers only need to know this package's errors.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	}
	return err
}
