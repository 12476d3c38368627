// Package cryptox implements password hashing and verification with scrypt,
// a memory-hard key-derivation function, using a per-user random salt.
package cryptox

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"golang.org/x/crypto/scrypt"
)

// Params holds the scrypt cost parameters and output sizes. The same values
// must be used for derivation and later verification: changing them
// invalidates every stored hash, so they are validated once at construction
// and never mutated.
type Params struct {
	N       int // CPU/memory cost, must be a power of two > 1
	R       int // block size
	P       int // parallelism
	KeyLen  int // derived hash length in bytes
	SaltLen int // generated salt length in bytes
}

// DefaultParams returns the production scrypt parameters.
func DefaultParams() Params {
	return Params{
		N:       1 << 14,
		R:       8,
		P:       1,
		KeyLen:  128,
		SaltLen: 16,
	}
}

var (
	ErrEmptyPassword = errors.New("empty password")
	ErrEmptySalt     = errors.New("empty salt")
)

// Hasher derives and verifies password hashes. It holds no mutable state and
// is safe for concurrent use.
type Hasher struct {
	params Params
}

// NewHasher validates the parameters and returns a Hasher. Invalid cost
// parameters are a fatal configuration error, not a per-request failure.
func NewHasher(p Params) (*Hasher, error) {
	if p.N <= 1 || p.N&(p.N-1) != 0 {
		return nil, fmt.Errorf("scrypt N must be a power of two > 1, got %d", p.N)
	}
	if p.R <= 0 || p.P <= 0 {
		return nil, fmt.Errorf("scrypt r and p must be positive, got r=%d p=%d", p.R, p.P)
	}
	if p.KeyLen <= 0 || p.SaltLen <= 0 {
		return nil, fmt.Errorf("key and salt lengths must be positive, got keyLen=%d saltLen=%d", p.KeyLen, p.SaltLen)
	}
	return &Hasher{params: p}, nil
}

// Params returns the hasher's cost parameters.
func (h *Hasher) Params() Params { return h.params }

// Derive hashes password with the given salt. If salt is nil, a fresh random
// salt of the configured length is generated. The password is processed as
// its UTF-8 byte representation. Returns the derived hash and the salt that
// was used.
func (h *Hasher) Derive(password string, salt []byte) (hash, usedSalt []byte, err error) {
	if password == "" {
		return nil, nil, ErrEmptyPassword
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(h.params.SaltLen)
	} else if len(salt) == 0 {
		return nil, nil, ErrEmptySalt
	}

	hash, err = scrypt.Key([]byte(password), salt, h.params.N, h.params.R, h.params.P, h.params.KeyLen)
	if err != nil {
		return nil, nil, fmt.Errorf("scrypt: %w", err)
	}
	return hash, salt, nil
}

// Verify recomputes the hash for password with the stored salt and compares
// it against expected in constant time. A wrong password yields (false, nil);
// only malformed inputs produce an error.
func (h *Hasher) Verify(password string, expected, salt []byte) (bool, error) {
	if password == "" {
		return false, ErrEmptyPassword
	}
	if len(salt) == 0 {
		return false, ErrEmptySalt
	}

	candidate, _, err := h.Derive(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(candidate, expected) == 1, nil
}
