package passhash_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sysforge/credkit/passhash"
)

// testBcryptCost is the minimum bcrypt work factor, used so the suite runs
// quickly. Production callers use DefaultBcryptCost.
const testBcryptCost = bcrypt.MinCost // 4

func newTestBcryptHasher(t *testing.T) *passhash.BcryptHasher {
	t.Helper()
	h, err := passhash.NewBcryptHasher(passhash.BcryptOptions{Cost: testBcryptCost})
	if err != nil {
		t.Fatalf("NewBcryptHasher: %v", err)
	}
	return h
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructor
// ──────────────────────────────────────────────────────────────────────────────

func TestNewBcryptHasher_Valid(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, 10, 12, bcrypt.MaxCost} {
		h, err := passhash.NewBcryptHasher(passhash.BcryptOptions{Cost: cost})
		if err != nil {
			t.Errorf("cost %d: unexpected error %v", cost, err)
		}
		if h != nil && h.Cost() != cost {
			t.Errorf("cost %d: got %d", cost, h.Cost())
		}
	}
}

func TestNewBcryptHasher_InvalidCost(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost - 1, 0, -1, bcrypt.MaxCost + 1, 99} {
		_, err := passhash.NewBcryptHasher(passhash.BcryptOptions{Cost: cost})
		if !errors.Is(err, passhash.ErrInvalidOption) {
			t.Errorf("cost %d: expected ErrInvalidOption, got %v", cost, err)
		}
	}
}

func TestDefaultBcryptOptions(t *testing.T) {
	if opts := passhash.DefaultBcryptOptions(); opts.Cost != passhash.DefaultBcryptCost {
		t.Errorf("got cost %d, want %d", opts.Cost, passhash.DefaultBcryptCost)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hash
// ──────────────────────────────────────────────────────────────────────────────

func TestBcryptHasher_Hash_ProducesRecord(t *testing.T) {
	h := newTestBcryptHasher(t)
	record, err := h.Hash([]byte("password123"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(record, "$2") {
		t.Fatalf("record does not look like bcrypt: %q", record)
	}
	if len(record) > h.MaxRecordLen() {
		t.Errorf("record length %d exceeds declared maximum %d", len(record), h.MaxRecordLen())
	}
}

func TestBcryptHasher_Hash_DistinctSalts(t *testing.T) {
	h := newTestBcryptHasher(t)
	r1, _ := h.Hash([]byte("same-secret"))
	r2, _ := h.Hash([]byte("same-secret"))
	if r1 == r2 {
		t.Error("two Hash calls on the same secret must produce different records (distinct salts)")
	}
}

func TestBcryptHasher_Hash_EmptySecret(t *testing.T) {
	h := newTestBcryptHasher(t)
	record, err := h.Hash(nil)
	if err != nil {
		t.Fatalf("Hash empty secret: %v", err)
	}
	ok, err := h.Verify(nil, record)
	if err != nil || !ok {
		t.Fatalf("Verify empty secret: ok=%v err=%v", ok, err)
	}
}

func TestBcryptHasher_Hash_SecretTooLong(t *testing.T) {
	h := newTestBcryptHasher(t)
	_, err := h.Hash(bytes.Repeat([]byte("a"), 73))
	if !errors.Is(err, passhash.ErrSecretTooLong) {
		t.Fatalf("expected ErrSecretTooLong, got %v", err)
	}
}

func TestBcryptHasher_Hash_DoesNotMutateSecret(t *testing.T) {
	h := newTestBcryptHasher(t)
	secret := []byte("hunter2")
	_, err := h.Hash(secret)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !bytes.Equal(secret, []byte("hunter2")) {
		t.Error("Hash must not mutate the caller's secret buffer")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestBcryptHasher_Verify_Correct(t *testing.T) {
	h := newTestBcryptHasher(t)
	record, _ := h.Hash([]byte("hunter2"))
	ok, err := h.Verify([]byte("hunter2"), record)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("Verify returned false for the correct secret")
	}
}

func TestBcryptHasher_Verify_Wrong(t *testing.T) {
	h := newTestBcryptHasher(t)
	record, _ := h.Hash([]byte("hunter2"))
	ok, err := h.Verify([]byte("hunter3"), record)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if ok {
		t.Error("Verify returned true for a wrong secret")
	}
}

func TestBcryptHasher_Verify_TruncatedRecord(t *testing.T) {
	h := newTestBcryptHasher(t)
	record, _ := h.Hash([]byte("hunter2"))
	_, err := h.Verify([]byte("hunter2"), record[:20])
	if !errors.Is(err, passhash.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestBcryptHasher_Verify_ForeignScheme(t *testing.T) {
	h := newTestBcryptHasher(t)
	_, err := h.Verify([]byte("pw"), "$argon2id$v=19$m=64,t=1,p=1$c2FsdHNhbHQ$ZGlnZXN0ZGlnZXN0ZGln")
	if !errors.Is(err, passhash.ErrSchemeMismatch) {
		t.Fatalf("expected ErrSchemeMismatch, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NeedsRehash / Inspect
// ──────────────────────────────────────────────────────────────────────────────

func TestBcryptHasher_NeedsRehash_SameCost(t *testing.T) {
	h := newTestBcryptHasher(t)
	record, _ := h.Hash([]byte("pw"))
	needs, err := h.NeedsRehash(record)
	if err != nil {
		t.Fatalf("NeedsRehash: %v", err)
	}
	if needs {
		t.Error("record at current cost must not need a rehash")
	}
}

func TestBcryptHasher_NeedsRehash_DifferentCost(t *testing.T) {
	low := newTestBcryptHasher(t)
	record, _ := low.Hash([]byte("pw"))

	high, err := passhash.NewBcryptHasher(passhash.BcryptOptions{Cost: testBcryptCost + 1})
	if err != nil {
		t.Fatalf("NewBcryptHasher: %v", err)
	}
	needs, err := high.NeedsRehash(record)
	if err != nil {
		t.Fatalf("NeedsRehash: %v", err)
	}
	if !needs {
		t.Error("record at a lower cost must need a rehash")
	}
}

func TestBcryptHasher_Inspect(t *testing.T) {
	h := newTestBcryptHasher(t)
	record, _ := h.Hash([]byte("pw"))
	info, err := h.Inspect(record)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Scheme != passhash.SchemeBcrypt {
		t.Errorf("Scheme = %q, want %q", info.Scheme, passhash.SchemeBcrypt)
	}
	cost, ok := info.Params["cost"].(int)
	if !ok {
		t.Fatalf("Params[\"cost\"] is not int: %T", info.Params["cost"])
	}
	if cost != testBcryptCost {
		t.Errorf("cost = %d, want %d", cost, testBcryptCost)
	}
}

func TestBcryptHasher_Inspect_Garbage(t *testing.T) {
	h := newTestBcryptHasher(t)
	_, err := h.Inspect("garbage")
	if !errors.Is(err, passhash.ErrSchemeMismatch) {
		t.Errorf("expected ErrSchemeMismatch, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Scheme / interface
// ──────────────────────────────────────────────────────────────────────────────

func TestBcryptHasher_Scheme(t *testing.T) {
	h := newTestBcryptHasher(t)
	if h.Scheme() != passhash.SchemeBcrypt {
		t.Errorf("got %q, want %q", h.Scheme(), passhash.SchemeBcrypt)
	}
}

func TestBcryptHasher_MaxRecordLen(t *testing.T) {
	h := newTestBcryptHasher(t)
	if h.MaxRecordLen() != 60 {
		t.Errorf("MaxRecordLen = %d, want 60", h.MaxRecordLen())
	}
}

func TestBcryptHasher_SatisfiesHasherInterface(t *testing.T) {
	var _ passhash.Hasher = newTestBcryptHasher(t)
}
