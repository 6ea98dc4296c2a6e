// Package encoding seals gate props into URL-safe tokens.
//
// Props are packed with msgpack and then either signed (HMAC-SHA256,
// truncated to 128 bits) or encrypted (AES-256-GCM). Signed tokens are
// readable by the client but cannot be altered; encrypted tokens are opaque.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors returned by Decode. Callers match them with errors.Is.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid token format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

const sigLen = 16

// Encodable is implemented by props that can flatten themselves to a map.
type Encodable interface {
	HXEncode() map[string]any
}

// Decodable is implemented by props that can rebuild themselves from a map.
type Decodable interface {
	HXDecode(map[string]any) error
}

// Encoder signs or encrypts props. It is safe for concurrent use.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder. Keys shorter than 32 bytes are stretched
// with SHA-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: empty key")
	}
	if len(key) != 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encoder{key: key, gcm: gcm}, nil
}

// Encode packs v and returns a signed token, or an encrypted one when
// sensitive is true.
func (e *Encoder) Encode(v Encodable, sensitive bool) (string, error) {
	packed, err := msgpack.Marshal(v.HXEncode())
	if err != nil {
		return "", fmt.Errorf("encoding: marshal: %w", err)
	}
	if sensitive {
		return e.encrypt(packed)
	}
	return e.sign(packed), nil
}

// Decode verifies (or decrypts) a token and unpacks it into v.
func (e *Encoder) Decode(token string, sensitive bool, v Decodable) error {
	if token == "" {
		return ErrInvalidFormat
	}

	var (
		packed []byte
		err    error
	)
	if sensitive {
		packed, err = e.decrypt(token)
	} else {
		packed, err = e.verify(token)
	}
	if err != nil {
		return err
	}

	var data map[string]any
	if err := msgpack.Unmarshal(packed, &data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return v.HXDecode(data)
}

// sign produces base64(data) + "." + base64(mac).
func (e *Encoder) sign(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(e.mac(data))
}

func (e *Encoder) verify(token string) ([]byte, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	mac, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	if !hmac.Equal(mac, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) mac(data []byte) []byte {
	h := hmac.New(sha256.New, e.key)
	h.Write(data)
	return h.Sum(nil)[:sigLen]
}

func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(e.gcm.Seal(nonce, nonce, data, nil)), nil
}

func (e *Encoder) decrypt(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	n := e.gcm.NonceSize()
	if len(raw) < n {
		return nil, ErrInvalidFormat
	}

	data, err := e.gcm.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
