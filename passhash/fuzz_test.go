package passhash_test

import (
	"errors"
	"testing"

	"github.com/sysforge/credkit/passhash"
)

// FuzzArgon2Verify ensures that Verify never panics on an arbitrary record
// string: every outcome is a clean match/mismatch or ErrMalformedRecord /
// ErrSchemeMismatch. A corrupt credential-database entry must surface as a
// well-typed error, never as a crash or a silent false.
//
// Run with: go test -fuzz=FuzzArgon2Verify ./passhash/
func FuzzArgon2Verify(f *testing.F) {
	h, err := passhash.NewArgon2idHasher(fastArgon2Opts())
	if err != nil {
		f.Fatalf("NewArgon2idHasher: %v", err)
	}

	// Seed corpus: one valid record plus known-invalid shapes.
	valid, err := h.Hash([]byte("seed-secret"))
	if err != nil {
		f.Fatalf("Hash: %v", err)
	}
	seeds := []string{
		valid,
		"",
		"$",
		"$argon2id$",
		"$argon2id$v=19$m=8,t=1,p=1$$",
		"$argon2id$v=19$m=8,t=0,p=0$c2FsdHNhbHQ$ZGlnZXN0ZGln",
		"$argon2id$v=99$m=8,t=1,p=1$c2FsdHNhbHQ$ZGlnZXN0ZGln",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdHNhbHQ$ZGlnZXN0ZGln",
		"$2b$04$abcdefghijklmnopqrstuv",
		"not a record at all",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, record string) {
		ok, err := h.Verify([]byte("fuzz-secret"), record)
		if err == nil {
			return // structurally valid; match result is irrelevant here
		}
		if ok {
			t.Fatalf("Verify returned ok=true with error %v", err)
		}
		if !errors.Is(err, passhash.ErrMalformedRecord) && !errors.Is(err, passhash.ErrSchemeMismatch) {
			t.Fatalf("unexpected error type for record %q: %v", record, err)
		}
	})
}

// FuzzRegistryVerify exercises the detect-and-dispatch path with arbitrary
// secrets and records.
func FuzzRegistryVerify(f *testing.F) {
	r, err := passhash.NewDefaultRegistry()
	if err != nil {
		f.Fatalf("NewDefaultRegistry: %v", err)
	}

	f.Add([]byte("secret"), "$2b$04$abcdefghijklmnopqrstuv")
	f.Add([]byte(""), "$argon2id$v=19$m=8,t=1,p=1$c2FsdHNhbHQ$ZGlnZXN0ZGln")
	f.Add([]byte{0xff, 0x00}, "$y$j9T$salt$digest")

	f.Fuzz(func(t *testing.T, secret []byte, record string) {
		ok, err := r.Verify(secret, record)
		if ok && err != nil {
			t.Fatalf("Verify returned ok=true with error %v", err)
		}
	})
}
