package passhash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the default bcrypt work factor. At cost 12 one
	// hash takes roughly 250 ms on current server hardware. Raise it as
	// hardware improves; records produced at a lower cost stay verifiable
	// because the cost is read back out of the record.
	DefaultBcryptCost = 12

	// bcryptMaxSecretLen is bcrypt's hard input limit. Longer secrets are
	// rejected, never truncated.
	bcryptMaxSecretLen = 72

	// bcryptRecordLen is the fixed length of a modular-crypt bcrypt record:
	// "$2b$NN$" + 22 salt characters + 31 digest characters.
	bcryptRecordLen = 60
)

// BcryptOptions configures a [BcryptHasher].
type BcryptOptions struct {
	// Cost is the bcrypt work factor (logarithmic).
	// Valid range: [bcrypt.MinCost (4), bcrypt.MaxCost (31)].
	// Default: [DefaultBcryptCost] (12).
	Cost int
}

// DefaultBcryptOptions returns BcryptOptions with [DefaultBcryptCost].
func DefaultBcryptOptions() BcryptOptions {
	return BcryptOptions{Cost: DefaultBcryptCost}
}

// BcryptHasher hashes secrets with bcrypt.
//
// The backend generates and embeds its own 128-bit random salt, drawn from
// crypto/rand, so records never share a salt. Bcrypt rejects secrets longer
// than 72 bytes; interactive passwords never get near that limit, and
// callers that need longer inputs should use [Argon2Hasher].
//
// BcryptHasher is immutable after construction and safe for concurrent use.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher constructs a BcryptHasher.
// Returns [ErrInvalidOption] if Cost is outside [bcrypt.MinCost, bcrypt.MaxCost].
func NewBcryptHasher(opts BcryptOptions) (*BcryptHasher, error) {
	if opts.Cost < bcrypt.MinCost || opts.Cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, opts.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: opts.Cost}, nil
}

// Scheme returns [SchemeBcrypt].
func (h *BcryptHasher) Scheme() Scheme { return SchemeBcrypt }

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// MaxRecordLen returns the fixed modular-crypt record length (60 bytes).
func (h *BcryptHasher) MaxRecordLen() int { return bcryptRecordLen }

// Hash derives a bcrypt record from secret.
//
// Returns [ErrSecretTooLong] for secrets over 72 bytes and [ErrBackend] if
// the backend fails. The secret slice is not retained.
func (h *BcryptHasher) Hash(secret []byte) (string, error) {
	if len(secret) > bcryptMaxSecretLen {
		return "", fmt.Errorf("%w: bcrypt accepts at most %d bytes, got %d",
			ErrSecretTooLong, bcryptMaxSecretLen, len(secret))
	}
	record, err := bcrypt.GenerateFromPassword(secret, h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: bcrypt: %v", ErrBackend, err)
	}
	return string(record), nil
}

// Verify reports whether secret matches the bcrypt record.
// A wrong secret is (false, nil); a record that does not parse is
// [ErrMalformedRecord].
func (h *BcryptHasher) Verify(secret []byte, record string) (bool, error) {
	if !isBcryptRecord(record) {
		return false, fmt.Errorf("%w: record is not bcrypt", ErrSchemeMismatch)
	}
	err := bcrypt.CompareHashAndPassword([]byte(record), secret)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: bcrypt: %v", ErrMalformedRecord, err)
	}
}

// NeedsRehash reports whether the cost stored in record differs from the
// hasher's configured cost.
func (h *BcryptHasher) NeedsRehash(record string) (bool, error) {
	cost, err := h.recordCost(record)
	if err != nil {
		return false, err
	}
	return cost != h.cost, nil
}

// Inspect extracts the work factor from a bcrypt record.
//
// Returned [RecordInfo].Params:
//   - "cost" → int
func (h *BcryptHasher) Inspect(record string) (RecordInfo, error) {
	cost, err := h.recordCost(record)
	if err != nil {
		return RecordInfo{}, err
	}
	return RecordInfo{
		Scheme: SchemeBcrypt,
		Params: map[string]any{"cost": cost},
	}, nil
}

func (h *BcryptHasher) recordCost(record string) (int, error) {
	if !isBcryptRecord(record) {
		return 0, fmt.Errorf("%w: record is not bcrypt", ErrSchemeMismatch)
	}
	cost, err := bcrypt.Cost([]byte(record))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return cost, nil
}

func isBcryptRecord(record string) bool {
	s, ok := DetectScheme(record)
	return ok && s == SchemeBcrypt
}
