package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Credential is the derived {salt, hash} pair stored for an account.
// Both fields are hex-encoded.
type Credential struct {
	Salt string
	Hash string
}

// Hash derives a Credential from password with a fresh random salt.
func (c Config) Hash(password string) (Credential, error) {
	if password == "" {
		return Credential{}, ErrInvalidInput
	}

	salt := make([]byte, c.Params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return Credential{}, fmt.Errorf("salt: %w", err)
	}

	return c.HashWithSalt(password, hex.EncodeToString(salt))
}

// HashWithSalt derives a Credential deterministically from password and a
// hex-encoded salt. Used by Verify and by callers that must recompute a
// stored credential.
func (c Config) HashWithSalt(password, saltHex string) (Credential, error) {
	if password == "" || saltHex == "" {
		return Credential{}, ErrInvalidInput
	}

	key := pbkdf2.Key(
		[]byte(password),
		[]byte(saltHex),
		c.Params.Iterations,
		c.Params.KeyLength,
		sha512.New,
	)

	return Credential{
		Salt: saltHex,
		Hash: hex.EncodeToString(key),
	}, nil
}

// Verify checks whether password matches the stored hex-encoded hash+salt.
// Returns (true, nil) for a match, (false, nil) for mismatch, and
// (false, ErrInvalidInput) when any argument is missing.
// The comparison is constant-time.
func (c Config) Verify(password, storedHashHex, storedSaltHex string) (bool, error) {
	if password == "" || storedHashHex == "" || storedSaltHex == "" {
		return false, ErrInvalidInput
	}

	expected, err := hex.DecodeString(storedHashHex)
	if err != nil {
		return false, ErrInvalidHash
	}

	derived, err := c.HashWithSalt(password, storedSaltHex)
	if err != nil {
		return false, err
	}
	got, err := hex.DecodeString(derived.Hash)
	if err != nil {
		return false, ErrInvalidHash
	}

	if len(got) != len(expected) {
		return false, nil
	}
	if subtle.ConstantTimeCompare(got, expected) == 1 {
		return true, nil
	}
	return false, nil
}
