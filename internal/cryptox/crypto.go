// Package cryptox implements the credential hasher: salted PBKDF2 digest
// derivation and password verification.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 iteration count. It is effectively a schema
	// version for data.json: digests on disk were derived with this count
	// and become unverifiable if it ever changes.
	Iterations = 100_000

	// SaltSize is the number of random bytes in a per-account salt.
	SaltSize = 16

	// DigestSize is the length of a derived digest (SHA-256 output).
	DigestSize = 32
)

// NewSalt returns SaltSize cryptographically random bytes. A fresh salt is
// generated once per account, at registration, and never changes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return salt, nil
}

// DeriveDigest applies PBKDF2-HMAC-SHA256 with the fixed iteration count to
// the given password and salt. Identical inputs always yield the identical
// DigestSize-byte digest.
func DeriveDigest(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, DigestSize, sha256.New)
}

// VerifyPassword recomputes the digest for (password, salt) and compares it
// against expected. Any mismatch, including a length mismatch, rejects.
func VerifyPassword(password, salt, expected []byte) bool {
	digest := DeriveDigest(password, salt)
	return subtle.ConstantTimeCompare(digest, expected) == 1
}
