package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned when a password does not match its hash
var ErrMismatch = errors.New("password does not match")

// ErrEmpty is returned when an empty credential reaches the hash-on-write path
var ErrEmpty = errors.New("empty credential")

// MaxLength is the longest password bcrypt accepts, in bytes
const MaxLength = 72

// ErrTooLong is returned for a password longer than MaxLength bytes
var ErrTooLong = errors.New("password too long")

//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks github.com/piresc/estamp/internal/pkg/password Hasher

// Hasher is a one-way password hash with verification
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) error
}

// BcryptHasher hashes passwords with bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher. A cost outside bcrypt's range uses the default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt digest of plain, or ErrTooLong past MaxLength bytes
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks plain against hash. A wrong password gives ErrMismatch.
func (h *BcryptHasher) Verify(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	return nil
}

// Credential is a password on its way to storage. Hashed says whether Value
// is already a digest, so nothing has to guess from the string's shape.
type Credential struct {
	Value  string
	Hashed bool
}

// Plain wraps a raw password that still needs hashing
func Plain(value string) Credential {
	return Credential{Value: value}
}

// FromHash wraps a value that was hashed earlier, such as a staged signup
func FromHash(value string) Credential {
	return Credential{Value: value, Hashed: true}
}

// Digest is the single hash-on-write entry point: it returns the value to persist
func Digest(h Hasher, c Credential) (string, error) {
	if c.Value == "" {
		return "", ErrEmpty
	}
	if c.Hashed {
		return c.Value, nil
	}
	if len(c.Value) > MaxLength {
		return "", ErrTooLong
	}
	return h.Hash(c.Value)
}
