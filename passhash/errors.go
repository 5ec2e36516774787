package passhash

import "errors"

// Sentinel errors returned by hashing and verification operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := h.Verify(secret, record)
//	if errors.Is(err, passhash.ErrMalformedRecord) {
//	    // the stored record is corrupt, not merely a wrong password
//	}
var (
	// ErrMalformedRecord is returned when a stored hash record cannot be
	// parsed: truncated, wrong field count, missing salt or digest, bad
	// base64, or an unparseable parameter. A well-formed record that simply
	// does not match the secret is NOT an error; Verify reports that as
	// (false, nil).
	ErrMalformedRecord = errors.New("passhash: malformed hash record")

	// ErrUnknownScheme is returned by the [Registry] when a record carries a
	// recognisable scheme tag for which no hasher has been registered.
	ErrUnknownScheme = errors.New("passhash: no hasher registered for scheme")

	// ErrSchemeMismatch is returned by a [Hasher]'s Verify, NeedsRehash, or
	// Inspect method when the record was produced by a different scheme than
	// the one the hasher implements.
	ErrSchemeMismatch = errors.New("passhash: record was produced by a different scheme")

	// ErrBackend is returned when the underlying hashing backend fails,
	// including a failure of the system random source during salt
	// generation. The operation is aborted; there is no fallback to a
	// weaker scheme.
	ErrBackend = errors.New("passhash: hashing backend failure")

	// ErrInvalidOption is returned by a constructor when a parameter value
	// falls outside the allowed range (e.g., a bcrypt cost below 4).
	ErrInvalidOption = errors.New("passhash: invalid option value")

	// ErrSecretTooLong is returned by [BcryptHasher.Hash] when the secret
	// exceeds bcrypt's 72-byte input limit. The secret is never silently
	// truncated.
	ErrSecretTooLong = errors.New("passhash: secret exceeds backend input limit")

	// ErrEmptySchemeName is returned by [Registry.Register] when the scheme
	// name is empty.
	ErrEmptySchemeName = errors.New("passhash: scheme name must not be empty")

	// ErrNilHasher is returned by [Registry.Register] when a nil [Hasher]
	// is supplied.
	ErrNilHasher = errors.New("passhash: hasher must not be nil")
)
