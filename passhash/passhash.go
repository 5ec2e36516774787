package passhash

import "strings"

// Scheme identifies a password-hashing scheme. The scheme tag is the first
// field of every encoded record, so a credential database can hold records
// produced by different schemes at different times.
type Scheme string

const (
	// SchemeBcrypt selects the bcrypt backend ($2a$/$2b$/$2y$ records).
	SchemeBcrypt Scheme = "bcrypt"
	// SchemeArgon2i selects the Argon2i backend.
	SchemeArgon2i Scheme = "argon2i"
	// SchemeArgon2id selects the Argon2id backend (default for new records).
	SchemeArgon2id Scheme = "argon2id"
)

// Hasher is the contract every hashing backend satisfies.
//
// All implementations are immutable after construction and safe for
// concurrent use. Hashing is deliberately CPU- and memory-expensive;
// callers should treat Hash and Verify as blocking operations.
//
// Secret ownership: implementations never retain the secret slice and wipe
// any internal buffer derived from it before returning. The caller remains
// responsible for wiping the secret itself (see [Wipe]).
type Hasher interface {
	// Hash derives a salted digest from secret and returns the encoded,
	// self-describing record. A fresh random salt is drawn from the
	// system's secure random source on every call, so hashing the same
	// secret twice produces two different records.
	Hash(secret []byte) (string, error)

	// Verify reports whether secret matches record. The scheme parameters
	// and salt are parsed out of record, never taken from the hasher's
	// own configuration, and the digests are compared in constant time.
	// A mismatch is (false, nil); only a structurally invalid record
	// produces an error.
	Verify(secret []byte, record string) (bool, error)

	// NeedsRehash reports whether record was produced with parameters that
	// differ from the hasher's current configuration. Callers typically
	// re-hash on the next successful authentication when this is true.
	NeedsRehash(record string) (bool, error)

	// Inspect parses the metadata out of record without verifying anything.
	Inspect(record string) (RecordInfo, error)

	// Scheme returns the scheme implemented by this hasher.
	Scheme() Scheme

	// MaxRecordLen returns the maximum encoded length of a record this
	// hasher can produce with its current configuration. Storage layers
	// size their buffers from this declared bound, not from incidental
	// backend buffer sizes.
	MaxRecordLen() int
}

// RecordInfo carries metadata parsed from an encoded record.
type RecordInfo struct {
	// Scheme is the hashing scheme that produced the record.
	Scheme Scheme

	// Params holds scheme-specific cost parameters read from the record.
	//
	// For bcrypt:
	//   "cost" → int
	//
	// For Argon2i and Argon2id:
	//   "version" → int
	//   "memory"  → uint32 (KiB)
	//   "time"    → uint32 (iterations)
	//   "threads" → uint8
	//   "key_len" → uint32 (digest length in bytes)
	Params map[string]any
}

// DetectScheme inspects a record's tag and returns the [Scheme] that
// produced it. It looks only at the leading field and does not validate
// the rest of the record.
//
// The second return value is false when the tag is not recognised.
func DetectScheme(record string) (Scheme, bool) {
	switch {
	case strings.HasPrefix(record, "$argon2id$"):
		return SchemeArgon2id, true
	case strings.HasPrefix(record, "$argon2i$"):
		return SchemeArgon2i, true
	// bcrypt records start with $2a$, $2b$, or $2y$
	case strings.HasPrefix(record, "$2a$"),
		strings.HasPrefix(record, "$2b$"),
		strings.HasPrefix(record, "$2y$"):
		return SchemeBcrypt, true
	default:
		return "", false
	}
}
