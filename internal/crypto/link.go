// Package crypto implements the reversible link cipher behind email
// verification and password reset links.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yogeshrakate/skill-matrix-backend/internal/domain"
)

var (
	ErrInvalidKey   = errors.New("encryption key must be 32 bytes for AES-256")
	ErrInvalidLink  = errors.New("link is invalid or has been tampered with")
	ErrInvalidEmail = errors.New("invalid email")
)

// LinkPayload is the plaintext sealed into a link token. Purpose lives inside
// the authenticated payload, so it cannot be swapped by editing the URL.
type LinkPayload struct {
	Email    string         `json:"email"`
	Purpose  domain.Purpose `json:"purpose"`
	IssuedAt int64          `json:"issued_at"`
}

// LinkCipher seals link payloads with AES-256-GCM under a process-wide key.
// It is stateless and safe for concurrent use.
type LinkCipher struct {
	key []byte
}

// NewLinkCipher expects the key as base64 of 32 raw bytes.
func NewLinkCipher(keyBase64 string) (*LinkCipher, error) {
	key, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}

	if len(key) != 32 {
		return nil, ErrInvalidKey
	}

	return &LinkCipher{key: key}, nil
}

// EncryptLink seals {email, purpose, issuedAt} and returns a token that is
// URL-safe by construction (raw URL base64, no padding).
func (c *LinkCipher) EncryptLink(email string, purpose domain.Purpose) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidEmail
	}
	if !purpose.Valid() {
		return "", fmt.Errorf("unknown link purpose %q", purpose)
	}

	plaintext, err := json.Marshal(LinkPayload{
		Email:    email,
		Purpose:  purpose,
		IssuedAt: time.Now().UTC().Unix(),
	})
	if err != nil {
		return "", err
	}

	gcm, err := c.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)

	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// DecryptLink opens a token produced by EncryptLink. Any structural problem,
// bit flip or wrong key comes back as ErrInvalidLink.
func (c *LinkCipher) DecryptLink(token string) (LinkPayload, error) {
	var payload LinkPayload

	ciphertext, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return payload, ErrInvalidLink
	}

	gcm, err := c.gcm()
	if err != nil {
		return payload, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return payload, ErrInvalidLink
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return payload, ErrInvalidLink
	}

	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return payload, ErrInvalidLink
	}
	if payload.Email == "" || !payload.Purpose.Valid() {
		return payload, ErrInvalidLink
	}

	return payload, nil
}

func (c *LinkCipher) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// GenerateKey returns a fresh random AES-256 key as base64.
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
