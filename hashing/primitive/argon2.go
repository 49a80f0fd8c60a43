package primitive

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
	// Argon2KeyLen is the derived key length in bytes.
	Argon2KeyLen uint32 = 32

	// Argon2SaltLen is the random salt length in bytes.
	Argon2SaltLen uint32 = 16

	// MaxArgon2Memory bounds the memory cost (KiB) accepted for hashing and
	// for decoded hashes, so a forged hash string cannot demand an
	// arbitrary allocation during Verify.
	MaxArgon2Memory uint32 = 4 * 1024 * 1024

	// MaxArgon2Time bounds the number of passes the same way.
	MaxArgon2Time uint32 = 1024

	// argon2Version is the Argon2 version number encoded in hashes (0x13).
	argon2Version = argon2.Version // 0x13 = 19

	minArgon2KeyLen  = 4
	minArgon2SaltLen = 8
)

func validateArgon2(p Params) error {
	if p.Time < 1 {
		return fmt.Errorf("%w: argon2 time must be ≥ 1, got %d", ErrInvalidParams, p.Time)
	}
	if p.Time > MaxArgon2Time {
		return fmt.Errorf("%w: argon2 time %d exceeds %d", ErrInvalidParams, p.Time, MaxArgon2Time)
	}
	if p.Threads < 1 {
		return fmt.Errorf("%w: argon2 threads must be ≥ 1, got %d", ErrInvalidParams, p.Threads)
	}
	if p.Memory < 8*uint32(p.Threads) {
		return fmt.Errorf("%w: argon2 memory (%d KiB) must be ≥ 8×threads (%d KiB)",
			ErrInvalidParams, p.Memory, 8*uint32(p.Threads))
	}
	if p.Memory > MaxArgon2Memory {
		return fmt.Errorf("%w: argon2 memory (%d KiB) exceeds %d KiB",
			ErrInvalidParams, p.Memory, MaxArgon2Memory)
	}
	return nil
}

// derive runs the Argon2 variant selected by code.
func derive(code Code, text string, salt []byte, p Params, keyLen uint32) []byte {
	if code == Argon2i {
		return argon2.Key([]byte(text), salt, p.Time, p.Memory, p.Threads, keyLen)
	}
	return argon2.IDKey([]byte(text), salt, p.Time, p.Memory, p.Threads, keyLen)
}

func argon2Hash(text string, code Code, p Params) (string, error) {
	if err := validateArgon2(p); err != nil {
		return "", err
	}
	salt := make([]byte, Argon2SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("primitive: argon2: failed to generate salt: %w", err)
	}
	key := derive(code, text, salt, p, Argon2KeyLen)
	return encodePHC(code, p, salt, key), nil
}

func argon2Verify(text, hash string) (bool, error) {
	d, err := decodePHC(hash)
	if err != nil {
		return false, err
	}
	computed := derive(d.code, text, d.salt, d.params, uint32(len(d.key)))
	return subtle.ConstantTimeCompare(computed, d.key) == 1, nil
}

func argon2Info(hash string) (Info, error) {
	d, err := decodePHC(hash)
	if err != nil {
		return Info{}, err
	}
	return Info{Code: d.code, Params: d.params}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// PHC string format
// ──────────────────────────────────────────────────────────────────────────────

type phc struct {
	code   Code
	params Params
	salt   []byte
	key    []byte
}

// encodePHC serialises an Argon2 hash:
//
//	$argon2id$v=19$m=98304,t=6,p=1$<salt_base64>$<key_base64>
//
// Base64 is the standard alphabet without padding, as in the reference
// implementation.
func encodePHC(code Code, p Params, salt, key []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		code,
		argon2Version,
		p.Memory,
		p.Time,
		p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

// decodePHC parses and bounds-checks an Argon2 PHC string.
func decodePHC(encoded string) (*phc, error) {
	// The leading "$" produces an empty first element.
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5-segment PHC string, got %d segments",
			ErrMalformedHash, len(parts)-1)
	}

	var code Code
	switch parts[1] {
	case Argon2i.String():
		code = Argon2i
	case Argon2id.String():
		code = Argon2id
	default:
		return nil, fmt.Errorf("%w: unknown argon2 variant %q", ErrMalformedHash, parts[1])
	}

	if err := parseVersion(parts[2]); err != nil {
		return nil, err
	}
	params, err := parseCosts(parts[3])
	if err != nil {
		return nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrMalformedHash, err)
	}
	if len(salt) < minArgon2SaltLen {
		return nil, fmt.Errorf("%w: salt of %d bytes is too short", ErrMalformedHash, len(salt))
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid key base64: %v", ErrMalformedHash, err)
	}
	if len(key) < minArgon2KeyLen {
		return nil, fmt.Errorf("%w: key of %d bytes is too short", ErrMalformedHash, len(key))
	}

	return &phc{code: code, params: params, salt: salt, key: key}, nil
}

// parseVersion checks a "v=19" segment.
func parseVersion(seg string) error {
	raw, ok := strings.CutPrefix(seg, "v=")
	if !ok {
		return fmt.Errorf("%w: version segment %q", ErrMalformedHash, seg)
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v != argon2Version {
		return fmt.Errorf("%w: unsupported argon2 version %q", ErrMalformedHash, raw)
	}
	return nil
}

// parseCosts reads an "m=98304,t=6,p=1" segment.  Each of m, t and p must
// appear exactly once and the result must pass validateArgon2.
func parseCosts(seg string) (Params, error) {
	var (
		p    Params
		seen = map[string]bool{}
	)
	for _, field := range strings.Split(seg, ",") {
		name, raw, ok := strings.Cut(field, "=")
		if !ok || seen[name] {
			return Params{}, fmt.Errorf("%w: parameter %q in %q", ErrMalformedHash, field, seg)
		}
		seen[name] = true

		bits := 32
		if name == "p" {
			bits = 8
		}
		v, err := strconv.ParseUint(raw, 10, bits)
		if err != nil {
			return Params{}, fmt.Errorf("%w: parameter %q out of range", ErrMalformedHash, field)
		}
		switch name {
		case "m":
			p.Memory = uint32(v)
		case "t":
			p.Time = uint32(v)
		case "p":
			p.Threads = uint8(v)
		default:
			return Params{}, fmt.Errorf("%w: unknown parameter %q", ErrMalformedHash, name)
		}
	}
	if len(seen) != 3 {
		return Params{}, fmt.Errorf("%w: want m, t and p in %q", ErrMalformedHash, seg)
	}
	if err := validateArgon2(p); err != nil {
		return Params{}, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	return p, nil
}
