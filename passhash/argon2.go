package passhash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	// DefaultArgon2Memory is the default memory cost in KiB (64 MiB).
	DefaultArgon2Memory uint32 = 64 * 1024

	// DefaultArgon2Time is the default number of iterations.
	DefaultArgon2Time uint32 = 3

	// DefaultArgon2Threads is the default degree of parallelism.
	DefaultArgon2Threads uint8 = 2

	// DefaultArgon2KeyLen is the default digest length in bytes.
	DefaultArgon2KeyLen uint32 = 32

	// DefaultArgon2SaltLen is the default random salt length in bytes.
	DefaultArgon2SaltLen uint32 = 16
)

// Argon2Options configures an [Argon2Hasher].
//
// Every parameter is written into the record (PHC string format), so
// changing options only affects newly produced records; old records stay
// verifiable with the parameters they carry.
type Argon2Options struct {
	// Memory is the memory cost in KiB.
	// Minimum: 8 × Threads. Default: [DefaultArgon2Memory] (64 MiB).
	Memory uint32

	// Time is the number of passes over memory.
	// Minimum: 1. Default: [DefaultArgon2Time] (3).
	Time uint32

	// Threads is the degree of parallelism.
	// Minimum: 1. Default: [DefaultArgon2Threads] (2).
	Threads uint8

	// KeyLen is the digest length in bytes.
	// Minimum: 4. Default: [DefaultArgon2KeyLen] (32).
	KeyLen uint32

	// SaltLen is the random salt length in bytes.
	// Minimum: 8. Default: [DefaultArgon2SaltLen] (16).
	SaltLen uint32
}

// DefaultArgon2Options returns the recommended Argon2 parameter set.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
		KeyLen:  DefaultArgon2KeyLen,
		SaltLen: DefaultArgon2SaltLen,
	}
}

func (o Argon2Options) validate() error {
	if o.Time < 1 {
		return fmt.Errorf("%w: argon2 time must be ≥ 1, got %d", ErrInvalidOption, o.Time)
	}
	if o.Threads < 1 {
		return fmt.Errorf("%w: argon2 threads must be ≥ 1, got %d", ErrInvalidOption, o.Threads)
	}
	if o.Memory < 8*uint32(o.Threads) {
		return fmt.Errorf("%w: argon2 memory (%d KiB) must be ≥ 8×threads (%d KiB)",
			ErrInvalidOption, o.Memory, 8*uint32(o.Threads))
	}
	if o.KeyLen < 4 {
		return fmt.Errorf("%w: argon2 key_len must be ≥ 4, got %d", ErrInvalidOption, o.KeyLen)
	}
	if o.SaltLen < 8 {
		return fmt.Errorf("%w: argon2 salt_len must be ≥ 8, got %d", ErrInvalidOption, o.SaltLen)
	}
	return nil
}

// Argon2Hasher hashes secrets with Argon2i or Argon2id.
//
// Argon2id is the recommended variant (RFC 9106): memory-hardness defeats
// GPU/ASIC search and the hybrid access pattern resists side channels.
// Argon2i is kept for verifying records produced by older tool versions.
//
// Records are PHC strings:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt-b64>$<digest-b64>
//
// with RawStdEncoding base64 (no padding). The salt is freshly drawn from
// crypto/rand for every Hash call.
//
// Argon2Hasher is immutable after construction and safe for concurrent use.
type Argon2Hasher struct {
	variant Scheme
	opts    Argon2Options
}

// NewArgon2idHasher constructs an Argon2id hasher.
// Use [DefaultArgon2Options] for the recommended parameters.
func NewArgon2idHasher(opts Argon2Options) (*Argon2Hasher, error) {
	return newArgon2Hasher(SchemeArgon2id, opts)
}

// NewArgon2iHasher constructs an Argon2i hasher. Prefer
// [NewArgon2idHasher] for new records.
func NewArgon2iHasher(opts Argon2Options) (*Argon2Hasher, error) {
	return newArgon2Hasher(SchemeArgon2i, opts)
}

func newArgon2Hasher(variant Scheme, opts Argon2Options) (*Argon2Hasher, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Argon2Hasher{variant: variant, opts: opts}, nil
}

// Scheme returns the Argon2 variant implemented by this hasher.
func (h *Argon2Hasher) Scheme() Scheme { return h.variant }

// Options returns the current parameter set.
func (h *Argon2Hasher) Options() Argon2Options { return h.opts }

// MaxRecordLen returns the longest record this hasher can produce with its
// current parameters. The bound is declared from the encoding itself,
// independent of any backend buffer size.
func (h *Argon2Hasher) MaxRecordLen() int {
	header := fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$",
		h.variant, argon2.Version, h.opts.Memory, h.opts.Time, h.opts.Threads)
	return len(header) +
		base64.RawStdEncoding.EncodedLen(int(h.opts.SaltLen)) + 1 +
		base64.RawStdEncoding.EncodedLen(int(h.opts.KeyLen))
}

// Hash derives an Argon2 record from secret with a fresh random salt.
// The derived digest buffer is wiped before returning; the secret slice is
// not retained and remains the caller's to wipe.
func (h *Argon2Hasher) Hash(secret []byte) (string, error) {
	salt := make([]byte, h.opts.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("%w: reading random salt: %v", ErrBackend, err)
	}
	digest := h.derive(secret, salt, h.opts.Time, h.opts.Memory, h.opts.Threads, h.opts.KeyLen)
	record := fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		h.variant,
		argon2.Version,
		h.opts.Memory, h.opts.Time, h.opts.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	Wipe(digest)
	return record, nil
}

// Verify reports whether secret matches the Argon2 record. The salt and
// cost parameters are taken from the record, so records hashed under older
// settings verify correctly. The comparison is constant time.
func (h *Argon2Hasher) Verify(secret []byte, record string) (bool, error) {
	p, err := parseArgon2Record(record)
	if err != nil {
		return false, err
	}
	if p.variant != h.variant {
		return false, fmt.Errorf("%w: record is %s, not %s", ErrSchemeMismatch, p.variant, h.variant)
	}
	computed := h.derive(secret, p.salt, p.time, p.memory, p.threads, uint32(len(p.digest)))
	match := subtle.ConstantTimeCompare(computed, p.digest) == 1
	Wipe(computed)
	return match, nil
}

// NeedsRehash reports whether any parameter stored in record differs from
// the hasher's current configuration.
func (h *Argon2Hasher) NeedsRehash(record string) (bool, error) {
	p, err := parseArgon2Record(record)
	if err != nil {
		return false, err
	}
	if p.variant != h.variant {
		return false, fmt.Errorf("%w: record is %s, not %s", ErrSchemeMismatch, p.variant, h.variant)
	}
	return p.memory != h.opts.Memory ||
		p.time != h.opts.Time ||
		p.threads != h.opts.Threads ||
		uint32(len(p.digest)) != h.opts.KeyLen, nil
}

// Inspect parses the record and returns its encoded parameters.
//
// Returned [RecordInfo].Params:
//   - "version" → int
//   - "memory"  → uint32 (KiB)
//   - "time"    → uint32
//   - "threads" → uint8
//   - "key_len" → uint32
func (h *Argon2Hasher) Inspect(record string) (RecordInfo, error) {
	p, err := parseArgon2Record(record)
	if err != nil {
		return RecordInfo{}, err
	}
	if p.variant != h.variant {
		return RecordInfo{}, fmt.Errorf("%w: record is %s, not %s", ErrSchemeMismatch, p.variant, h.variant)
	}
	return RecordInfo{
		Scheme: p.variant,
		Params: map[string]any{
			"version": int(p.version),
			"memory":  p.memory,
			"time":    p.time,
			"threads": p.threads,
			"key_len": uint32(len(p.digest)),
		},
	}, nil
}

// derive runs the variant's key derivation.
func (h *Argon2Hasher) derive(secret, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	if h.variant == SchemeArgon2i {
		return argon2.Key(secret, salt, time, memory, threads, keyLen)
	}
	return argon2.IDKey(secret, salt, time, memory, threads, keyLen)
}

// argon2Record holds the fields decoded from a PHC record string.
type argon2Record struct {
	variant Scheme
	version uint32
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	digest  []byte
}

// parseArgon2Record decodes a PHC string into its components. Every field
// is validated strictly: a record that would make the backend panic or
// behave differently from the one that produced it is rejected with
// [ErrMalformedRecord] rather than verified as a silent mismatch.
func parseArgon2Record(record string) (*argon2Record, error) {
	// "$argon2id$v=19$m=65536,t=3,p=2$<salt>$<digest>" splits into six
	// fields; the leading "$" contributes an empty first field.
	fields := strings.Split(record, "$")
	if len(fields) != 6 || fields[0] != "" {
		return nil, fmt.Errorf("%w: expected 5 '$'-delimited fields, got %d",
			ErrMalformedRecord, len(fields)-1)
	}

	var variant Scheme
	switch fields[1] {
	case string(SchemeArgon2i):
		variant = SchemeArgon2i
	case string(SchemeArgon2id):
		variant = SchemeArgon2id
	default:
		return nil, fmt.Errorf("%w: unknown argon2 variant %q", ErrMalformedRecord, fields[1])
	}

	version, err := parseUintField(fields[2], "v", 32)
	if err != nil {
		return nil, err
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrMalformedRecord, version)
	}

	costs := strings.Split(fields[3], ",")
	if len(costs) != 3 {
		return nil, fmt.Errorf("%w: expected m,t,p cost fields, got %q", ErrMalformedRecord, fields[3])
	}
	memory, err := parseUintField(costs[0], "m", 32)
	if err != nil {
		return nil, err
	}
	time, err := parseUintField(costs[1], "t", 32)
	if err != nil {
		return nil, err
	}
	threads, err := parseUintField(costs[2], "p", 8)
	if err != nil {
		return nil, err
	}
	// The backend panics on zero rounds or zero parallelism; reject them
	// here so a corrupt record surfaces as an error, not a crash.
	if time < 1 || threads < 1 {
		return nil, fmt.Errorf("%w: cost parameters out of range (t=%d, p=%d)",
			ErrMalformedRecord, time, threads)
	}

	salt, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: salt is not valid base64: %v", ErrMalformedRecord, err)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrMalformedRecord)
	}

	digest, err := base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil {
		return nil, fmt.Errorf("%w: digest is not valid base64: %v", ErrMalformedRecord, err)
	}
	if len(digest) < 4 {
		return nil, fmt.Errorf("%w: digest too short (%d bytes)", ErrMalformedRecord, len(digest))
	}

	return &argon2Record{
		variant: variant,
		version: uint32(version),
		memory:  uint32(memory),
		time:    uint32(time),
		threads: uint8(threads),
		salt:    salt,
		digest:  digest,
	}, nil
}

// parseUintField parses "key=value" with a strict key match and bit-size
// bound, so "m=-1", "m=99999999999" and "x=3" are all rejected.
func parseUintField(field, key string, bits int) (uint64, error) {
	rest, ok := strings.CutPrefix(field, key+"=")
	if !ok {
		return 0, fmt.Errorf("%w: expected %s=<n>, got %q", ErrMalformedRecord, key, field)
	}
	v, err := strconv.ParseUint(rest, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s value %q: %v", ErrMalformedRecord, key, rest, err)
	}
	return v, nil
}
