package hashing_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hasbyte1/go-hashing/hashing"
	"github.com/hasbyte1/go-hashing/hashing/primitive"
)

type secret string

type rawSecret []byte

type account struct {
	User string `json:"user"`
	ID   int    `json:"id"`
}

// ──────────────────────────────────────────────────────────────────────────────
// MakeHash / VerifyHash
// ──────────────────────────────────────────────────────────────────────────────

func TestMakeHash_RoundTrip(t *testing.T) {
	values := []any{
		"hunter2",
		"",
		[]byte("raw bytes"),
		42,
		3.5,
		true,
		nil,
		[]string{"a", "b"},
		account{User: "alice", ID: 7},
		map[string]any{"nested": map[string]int{"z": 1, "a": 2}},
	}
	for _, a := range hashing.Supported() {
		for _, v := range values {
			hash, err := hashing.MakeHash(v, string(a), fastOptions(a))
			if err != nil {
				t.Fatalf("%s MakeHash(%v): %v", a, v, err)
			}
			ok, err := hashing.VerifyHash(v, hash)
			if err != nil || !ok {
				t.Errorf("%s VerifyHash(%v): ok=%v err=%v", a, v, ok, err)
			}
		}
	}
}

func TestMakeHash_DefaultOptionsRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("default cost parameters are slow")
	}
	for _, a := range hashing.Supported() {
		hash, err := hashing.MakeHash("correct horse", string(a), nil)
		if err != nil {
			t.Fatalf("%s MakeHash: %v", a, err)
		}
		ok, err := hashing.VerifyHash("correct horse", hash)
		if err != nil || !ok {
			t.Errorf("%s VerifyHash: ok=%v err=%v", a, ok, err)
		}
	}
}

func TestMakeHash_EmptyAlgorithmIsArgon2id(t *testing.T) {
	hash, err := hashing.MakeHash("pw", "", fastArgon2())
	if err != nil {
		t.Fatalf("MakeHash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("expected argon2id hash, got %q", hash)
	}
}

func TestVerifyHash_Mismatch(t *testing.T) {
	pairs := [][2]any{
		{"hunter2", "hunter3"},
		{"7", 8},
		{account{User: "alice", ID: 7}, account{User: "alice", ID: 8}},
		{account{User: "alice", ID: 7}, map[string]any{"user": "bob", "id": 7}},
	}
	for _, a := range hashing.Supported() {
		for _, p := range pairs {
			hash, err := hashing.MakeHash(p[0], string(a), fastOptions(a))
			if err != nil {
				t.Fatalf("MakeHash: %v", err)
			}
			ok, err := hashing.VerifyHash(p[1], hash)
			if err != nil {
				t.Fatalf("VerifyHash: unexpected error %v", err)
			}
			if ok {
				t.Errorf("%s: %v verified against hash of %v", a, p[1], p[0])
			}
		}
	}
}

func TestVerifyHash_StructuredValueIsCanonical(t *testing.T) {
	hash, err := hashing.MakeHash(account{User: "alice", ID: 7}, "bcrypt", fastBcrypt())
	if err != nil {
		t.Fatal(err)
	}
	// Same logical record, different Go representation and key order.
	equivalent := map[string]any{"id": 7, "user": "alice"}
	ok, err := hashing.VerifyHash(equivalent, hash)
	if err != nil || !ok {
		t.Errorf("equivalent map should verify: ok=%v err=%v", ok, err)
	}
}

func TestVerifyHash_NamedTextTypes(t *testing.T) {
	hash, err := hashing.MakeHash(secret("pw"), "bcrypt", fastBcrypt())
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []any{"pw", []byte("pw"), rawSecret("pw"), secret("pw")} {
		if ok, err := hashing.VerifyHash(v, hash); err != nil || !ok {
			t.Errorf("VerifyHash(%T) against named string hash: ok=%v err=%v", v, ok, err)
		}
	}
}

func TestVerifyHash_MalformedHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"garbage",
		"$2a$04$tooShort",
		"$argon2id$v=19$broken",
		"$argon2id$v=19$m=64,t=4000000000,p=1$c2FsdHNhbHRzYWx0$a2V5a2V5a2V5a2V5",
	} {
		ok, err := hashing.VerifyHash("pw", hash)
		if ok {
			t.Errorf("VerifyHash(%q) returned true", hash)
		}
		if !errors.Is(err, hashing.ErrMalformedHash) {
			t.Errorf("VerifyHash(%q): expected ErrMalformedHash, got %v", hash, err)
		}
	}
}

func TestVerifyHash_Unserializable(t *testing.T) {
	_, err := hashing.VerifyHash(make(chan int), "$2a$04$x")
	if !errors.Is(err, hashing.ErrUnserializable) {
		t.Errorf("expected ErrUnserializable, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// MakeHash errors
// ──────────────────────────────────────────────────────────────────────────────

func TestMakeHash_InvalidAlgorithm(t *testing.T) {
	for _, name := range []string{"not-an-algorithm", "Not-An-Algorithm", "NOT-AN-ALGORITHM", "sha256"} {
		hash, err := hashing.MakeHash("pw", name, hashing.Options{})
		if !errors.Is(err, hashing.ErrInvalidAlgorithm) {
			t.Errorf("MakeHash(%q): expected ErrInvalidAlgorithm, got %v", name, err)
		}
		if hash != "" {
			t.Errorf("MakeHash(%q) returned %q on error", name, hash)
		}
	}
}

func TestMakeHash_AlgorithmCaseVariants(t *testing.T) {
	for _, name := range []string{"bcrypt", "BCRYPT", "BcRypt"} {
		hash, err := hashing.MakeHash("pw", name, fastBcrypt())
		if err != nil {
			t.Fatalf("MakeHash(%q): %v", name, err)
		}
		if a, _ := hashing.DetectAlgorithm(hash); a != hashing.Bcrypt {
			t.Errorf("MakeHash(%q) produced %q", name, a)
		}
	}
}

func TestMakeHash_HashingFailed(t *testing.T) {
	cases := []struct {
		name      string
		algorithm string
		data      any
		options   hashing.Options
		cause     error
	}{
		{"bcrypt cost too high", "bcrypt", "pw", hashing.Options{"cost": 32}, primitive.ErrInvalidParams},
		{"bcrypt cost too low", "bcrypt", "pw", hashing.Options{"cost": 3}, primitive.ErrInvalidParams},
		{"argon2 option for bcrypt", "bcrypt", "pw", hashing.Options{"time_cost": 2}, hashing.ErrInvalidOption},
		{"bcrypt option for argon2", "argon2id", "pw", hashing.Options{"cost": 10}, hashing.ErrInvalidOption},
		{"argon2 zero time", "argon2i", "pw", hashing.Options{"time_cost": 0, "memory_cost": 64}, primitive.ErrInvalidParams},
		{"argon2 time above cap", "argon2id", "pw", hashing.Options{"time_cost": 5000, "memory_cost": 64}, primitive.ErrInvalidParams},
		{"argon2 negative memory", "argon2id", "pw", hashing.Options{"memory_cost": -1}, hashing.ErrInvalidOption},
		{"argon2 threads overflow", "argon2id", "pw", hashing.Options{"threads": 256}, hashing.ErrInvalidOption},
		{"unserializable data", "bcrypt", func() {}, fastBcrypt(), hashing.ErrUnserializable},
		{"bcrypt input over 72 bytes", "bcrypt", strings.Repeat("x", 73), fastBcrypt(), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := hashing.MakeHash(tc.data, tc.algorithm, tc.options)
			if !errors.Is(err, hashing.ErrHashingFailed) {
				t.Fatalf("expected ErrHashingFailed, got %v", err)
			}
			if tc.cause != nil && !errors.Is(err, tc.cause) {
				t.Errorf("expected cause %v, got %v", tc.cause, err)
			}
			if hash != "" {
				t.Errorf("no hash must be returned on failure, got %q", hash)
			}
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NeedsRehash
// ──────────────────────────────────────────────────────────────────────────────

func TestNeedsRehash_BcryptCost(t *testing.T) {
	low, err := hashing.MakeHash("pw", "BCRYPT", hashing.Options{"cost": 10})
	if err != nil {
		t.Fatal(err)
	}
	needs, err := hashing.NeedsRehash(low, "BCRYPT", hashing.Options{"cost": 12})
	if err != nil || !needs {
		t.Errorf("cost 10 → 12: needs=%v err=%v, want true", needs, err)
	}

	current, err := hashing.MakeHash("pw", "BCRYPT", hashing.Options{"cost": 12})
	if err != nil {
		t.Fatal(err)
	}
	needs, err = hashing.NeedsRehash(current, "BCRYPT", hashing.Options{"cost": 12})
	if err != nil || needs {
		t.Errorf("cost 12 → 12: needs=%v err=%v, want false", needs, err)
	}
}

func TestNeedsRehash_Argon2(t *testing.T) {
	hash, _ := hashing.MakeHash("pw", "argon2id", fastArgon2())

	needs, err := hashing.NeedsRehash(hash, "argon2id", fastArgon2())
	if err != nil || needs {
		t.Errorf("same params: needs=%v err=%v", needs, err)
	}

	stronger := fastArgon2()
	stronger[hashing.OptionTimeCost] = 2
	needs, err = hashing.NeedsRehash(hash, "argon2id", stronger)
	if err != nil || !needs {
		t.Errorf("different time_cost: needs=%v err=%v", needs, err)
	}

	needs, err = hashing.NeedsRehash(hash, "bcrypt", fastBcrypt())
	if err != nil || !needs {
		t.Errorf("algorithm change: needs=%v err=%v", needs, err)
	}
}

func TestNeedsRehash_DefaultsAgainstHash(t *testing.T) {
	hash, _ := hashing.MakeHash("pw", "", fastArgon2())
	needs, err := hashing.NeedsRehash(hash, "", nil)
	if err != nil || !needs {
		t.Errorf("fast hash vs defaults: needs=%v err=%v, want true", needs, err)
	}
}

func TestNeedsRehash_InvalidAlgorithm(t *testing.T) {
	_, err := hashing.NeedsRehash("$2a$04$x", "md5", nil)
	if !errors.Is(err, hashing.ErrInvalidAlgorithm) {
		t.Errorf("expected ErrInvalidAlgorithm, got %v", err)
	}
}

func TestNeedsRehash_InvalidOption(t *testing.T) {
	_, err := hashing.NeedsRehash("$2a$04$x", "bcrypt", hashing.Options{"memory_cost": 1})
	if !errors.Is(err, hashing.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
}

func TestNeedsRehash_MalformedHash(t *testing.T) {
	needs, err := hashing.NeedsRehash("garbage", "bcrypt", nil)
	if err != nil || !needs {
		t.Errorf("unreadable hash: needs=%v err=%v, want true", needs, err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// HashInfo
// ──────────────────────────────────────────────────────────────────────────────

func TestHashInfo_Bcrypt(t *testing.T) {
	hash, err := hashing.MakeHash("pw", "BCRYPT", hashing.Options{"cost": 12})
	if err != nil {
		t.Fatal(err)
	}
	info := hashing.HashInfo(hash)
	if info.Algorithm != hashing.Bcrypt || info.Code != primitive.Bcrypt {
		t.Errorf("info = %+v", info)
	}
	if info.Options[hashing.OptionCost] != 12 {
		t.Errorf("cost = %d, want 12", info.Options[hashing.OptionCost])
	}
	if !info.Known() || info.Name() != "BCRYPT" {
		t.Errorf("Known=%v Name=%q", info.Known(), info.Name())
	}
}

func TestHashInfo_Argon2(t *testing.T) {
	opts := hashing.Options{"time_cost": 2, "memory_cost": 128, "threads": 2}
	for _, a := range []hashing.Algorithm{hashing.Argon2i, hashing.Argon2id} {
		hash, err := hashing.MakeHash("pw", string(a), opts)
		if err != nil {
			t.Fatal(err)
		}
		info := hashing.HashInfo(hash)
		if info.Algorithm != a {
			t.Errorf("Algorithm = %q, want %q", info.Algorithm, a)
		}
		for k, v := range opts {
			if info.Options[k] != v {
				t.Errorf("%s: %s = %d, want %d", a, k, info.Options[k], v)
			}
		}
	}
}

func TestHashInfo_Malformed(t *testing.T) {
	for _, hash := range []string{"", "garbage", "$argon2id$v=19$m=1"} {
		info := hashing.HashInfo(hash)
		if info.Known() || info.Name() != "unknown" || info.Code != primitive.Unknown {
			t.Errorf("HashInfo(%q) = %+v, want unknown", hash, info)
		}
		if info.Options == nil || len(info.Options) != 0 {
			t.Errorf("HashInfo(%q).Options = %v, want empty map", hash, info.Options)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Algorithm as Hasher
// ──────────────────────────────────────────────────────────────────────────────

func TestAlgorithm_Hasher(t *testing.T) {
	var h hashing.Hasher = hashing.Bcrypt
	hash, err := h.MakeHash("pw", fastBcrypt())
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := h.VerifyHash("pw", hash); err != nil || !ok {
		t.Errorf("VerifyHash: ok=%v err=%v", ok, err)
	}
	if needs, err := h.NeedsRehash(hash, fastBcrypt()); err != nil || needs {
		t.Errorf("NeedsRehash: needs=%v err=%v", needs, err)
	}
	if info := h.HashInfo(hash); info.Algorithm != hashing.Bcrypt {
		t.Errorf("HashInfo: %+v", info)
	}
}

func TestAlgorithm_InvalidValue(t *testing.T) {
	_, err := hashing.Algorithm("sha1").MakeHash("pw", nil)
	if !errors.Is(err, hashing.ErrInvalidAlgorithm) {
		t.Errorf("expected ErrInvalidAlgorithm, got %v", err)
	}
}
