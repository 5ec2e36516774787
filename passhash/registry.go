package passhash

import (
	"fmt"
	"sync"
)

// Registry dispatches hashing operations across registered schemes.
//
// [Registry.Hash] produces records with the default scheme; [Registry.Verify]
// never assumes the default: it reads the scheme tag out of the record and
// dispatches to whichever hasher produced it. That is what lets a credential
// database hold bcrypt records from years ago next to argon2id records made
// today, with each verified by its own backend.
//
// All methods are safe for concurrent use; a [sync.RWMutex] serialises
// registration against lookups.
type Registry struct {
	mu      sync.RWMutex
	schemes map[Scheme]Hasher
	def     Scheme
}

// NewRegistry creates an empty Registry whose default scheme is name.
// Hashers must be registered with [Registry.Register] before use;
// [NewDefaultRegistry] is the batteries-included variant.
func NewRegistry(name Scheme) *Registry {
	return &Registry{
		schemes: make(map[Scheme]Hasher),
		def:     name,
	}
}

// NewDefaultRegistry creates a Registry with bcrypt, Argon2i, and Argon2id
// registered under their recommended parameters, defaulting to Argon2id for
// new records. This is the configuration the identity tools ship with.
func NewDefaultRegistry() (*Registry, error) {
	bc, err := NewBcryptHasher(DefaultBcryptOptions())
	if err != nil {
		return nil, fmt.Errorf("passhash: building default bcrypt hasher: %w", err)
	}
	a2i, err := NewArgon2iHasher(DefaultArgon2Options())
	if err != nil {
		return nil, fmt.Errorf("passhash: building default argon2i hasher: %w", err)
	}
	a2id, err := NewArgon2idHasher(DefaultArgon2Options())
	if err != nil {
		return nil, fmt.Errorf("passhash: building default argon2id hasher: %w", err)
	}

	r := NewRegistry(SchemeArgon2id)
	_ = r.Register(SchemeBcrypt, bc)
	_ = r.Register(SchemeArgon2i, a2i)
	_ = r.Register(SchemeArgon2id, a2id)
	return r, nil
}

// Register adds or replaces the hasher for a scheme.
func (r *Registry) Register(name Scheme, h Hasher) error {
	if name == "" {
		return ErrEmptySchemeName
	}
	if h == nil {
		return ErrNilHasher
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemes[name] = h
	return nil
}

// Hasher returns the hasher registered for name, or [ErrUnknownScheme].
func (r *Registry) Hasher(name Scheme) (Hasher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.schemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return h, nil
}

// Has reports whether a hasher is registered for name.
func (r *Registry) Has(name Scheme) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.schemes[name]
	return ok
}

// SetDefault changes the scheme used by [Registry.Hash]. The scheme must
// already be registered.
func (r *Registry) SetDefault(name Scheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schemes[name]; !ok {
		return fmt.Errorf("%w: %q is not registered", ErrUnknownScheme, name)
	}
	r.def = name
	return nil
}

// Default returns the scheme used for new records.
func (r *Registry) Default() Scheme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.def
}

// Hash produces a new record from secret with the default scheme.
// The caller keeps ownership of secret and wipes it after the call.
func (r *Registry) Hash(secret []byte) (string, error) {
	h, err := r.defaultHasher()
	if err != nil {
		return "", err
	}
	return h.Hash(secret)
}

// Verify checks secret against record, dispatching on the scheme tag
// embedded in the record.
//
// Returns [ErrMalformedRecord] when the tag is unrecognisable and
// [ErrUnknownScheme] when the tag is recognised but no hasher is registered
// for it. A legitimate mismatch is (false, nil).
func (r *Registry) Verify(secret []byte, record string) (bool, error) {
	h, err := r.hasherFor(record)
	if err != nil {
		return false, err
	}
	return h.Verify(secret, record)
}

// NeedsRehash reports whether record should be re-hashed: either it was
// produced by a scheme other than the current default, or by the default
// scheme with parameters that differ from its current configuration.
// Callers re-hash on the next successful authentication.
func (r *Registry) NeedsRehash(record string) (bool, error) {
	detected, ok := DetectScheme(record)
	if !ok {
		return false, fmt.Errorf("%w: unrecognised scheme tag", ErrMalformedRecord)
	}

	r.mu.RLock()
	def := r.def
	r.mu.RUnlock()

	if detected != def {
		return true, nil
	}
	h, err := r.Hasher(detected)
	if err != nil {
		return false, err
	}
	return h.NeedsRehash(record)
}

// Inspect extracts metadata from record, dispatching on its scheme tag.
func (r *Registry) Inspect(record string) (RecordInfo, error) {
	h, err := r.hasherFor(record)
	if err != nil {
		return RecordInfo{}, err
	}
	return h.Inspect(record)
}

func (r *Registry) defaultHasher() (Hasher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.schemes[r.def]
	if !ok {
		return nil, fmt.Errorf("%w: default scheme %q has not been registered",
			ErrUnknownScheme, r.def)
	}
	return h, nil
}

func (r *Registry) hasherFor(record string) (Hasher, error) {
	name, ok := DetectScheme(record)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognised scheme tag", ErrMalformedRecord)
	}
	return r.Hasher(name)
}
