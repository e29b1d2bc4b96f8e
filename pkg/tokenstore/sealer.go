package tokenstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// ErrSealedValue reports a sealed blob that could not be opened, usually a
// wrong passphrase or a truncated record.
var ErrSealedValue = errors.New("tokenstore: cannot open sealed value")

// Sealer encrypts token values before they touch disk. A bearer token in a
// plaintext database file is as sensitive as the credentials that minted it.
//
// The key is derived from a passphrase with argon2id; values are sealed with
// AES-256-GCM, nonce prepended to the ciphertext.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a sealing key from passphrase and salt. The salt must be
// stable across restarts or previously sealed tokens become unreadable.
func NewSealer(passphrase, salt []byte) (*Sealer, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("tokenstore: empty sealing passphrase")
	}

	key := argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("tokenstore: init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("tokenstore: init gcm: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext with a fresh random nonce.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("tokenstore: nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < s.aead.NonceSize() {
		return nil, ErrSealedValue
	}
	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrSealedValue
	}
	return plaintext, nil
}
