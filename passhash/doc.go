// Package passhash implements the credential-hashing core used by the
// identity-management utilities of a userland (login, su, passwd,
// useradd-class tools).
//
// # Architecture
//
// The central abstraction is the [Hasher] interface: it turns a plaintext
// secret into a salted, self-describing hash record, and later verifies a
// plaintext against a stored record. Two backends ship with this package:
//
//   - [BcryptHasher] — bcrypt in modular crypt format ($2b$...)
//   - [Argon2Hasher] — Argon2i or Argon2id in PHC string format
//     ($argon2id$v=19$m=…,t=…,p=…$<salt>$<digest>)
//
// A [Registry] dispatches between registered schemes. Records are fully
// self-describing: the scheme tag, cost parameters, and salt are all
// embedded in the encoded string, so [Registry.Verify] always derives the
// digest with the parameters stored in the record, never with the current
// defaults. Records produced at different cost settings, or by different
// schemes entirely, coexist in the same credential database and each
// declares how to verify itself.
//
// # Quick start
//
//	r, err := passhash.NewDefaultRegistry() // argon2id default
//	if err != nil { log.Fatal(err) }
//
//	record, _ := r.Hash(secret)
//	ok, _ := r.Verify(secret, record)
//
// # Secret lifetime
//
// Secrets are passed as []byte so they can be zeroized. Ownership is
// explicit: the caller keeps ownership of the secret buffer and must call
// [Wipe] on it once hashing or verification is done. Hash and Verify never
// retain a reference to the secret, and any digest buffer derived from it
// internally is wiped before the call returns.
//
// # Security properties
//
//   - Salts come from the operating system's secure random source
//     (crypto/rand) and are generated fresh for every Hash call; two calls
//     on the same plaintext produce different records.
//   - Digest comparison is constant time (crypto/subtle), so verification
//     time does not reveal how many leading digest bytes matched.
//   - There is no fallback path: if a backend fails, the error surfaces to
//     the caller. A secret is never stored or compared in plaintext.
//
// # Defaults
//
//   - bcrypt: cost 12.
//   - Argon2id: m=64 MiB, t=3 iterations, p=2 threads, 16-byte salt,
//     32-byte digest. Argon2id is the default scheme for new records.
//
// The cost parameters are tunable per hasher; raising them only affects
// newly produced records, because verification always reads the parameters
// back out of the record itself.
package passhash
