// Package primitive is the hashing library behind the hashing facade.
//
// It computes, verifies and parses self-describing password hashes:
//
//   - bcrypt in Modular Crypt Format ($2a$12$<salt+digest>)
//   - Argon2i and Argon2id in PHC string format ($argon2id$v=19$m=…,t=…,p=…$<salt>$<key>)
//
// Algorithms are addressed by a numeric [Code] rather than by name.  Name
// handling, option-set validation and data serialisation belong to the
// caller (see package hashing); this package only deals with text, codes
// and [Params].
package primitive

import "strings"

// Code is the numeric identifier of a hashing algorithm.
type Code int

const (
	// Unknown is reported for hashes whose format is not recognised.
	Unknown Code = iota
	// Bcrypt selects bcrypt.
	Bcrypt
	// Argon2i selects Argon2i.
	Argon2i
	// Argon2id selects Argon2id.
	Argon2id
)

// String returns the lower-case algorithm name used in encoded hashes.
func (c Code) String() string {
	switch c {
	case Bcrypt:
		return "bcrypt"
	case Argon2i:
		return "argon2i"
	case Argon2id:
		return "argon2id"
	default:
		return "unknown"
	}
}

// Params carries the cost parameters of one algorithm.  Only the fields that
// belong to the addressed algorithm are read; the rest are ignored.
type Params struct {
	// Cost is the bcrypt work factor (logarithmic).
	Cost int

	// Time is the number of Argon2 passes over memory.
	Time uint32

	// Memory is the Argon2 memory cost in KiB.
	Memory uint32

	// Threads is the Argon2 degree of parallelism.
	Threads uint8
}

// Info is the metadata decoded from an encoded hash.  It never contains
// secret material.
type Info struct {
	Code   Code
	Params Params
}

// Library is the contract the facade delegates to.
//
// Implementations must be safe for concurrent use.
type Library interface {
	// Hash derives a hash of text for the algorithm code using p.  A fresh
	// random salt is generated on every call.
	Hash(text string, code Code, p Params) (string, error)

	// Verify reports whether text matches hash.  The comparison runs in
	// constant time.  A mismatch is (false, nil); an unparseable hash is
	// (false, ErrMalformedHash).
	Verify(text, hash string) (bool, error)

	// NeedsRehash reports whether hash was produced by a different
	// algorithm than code, or by the same algorithm with different
	// parameters than p.
	NeedsRehash(hash string, code Code, p Params) (bool, error)

	// Info decodes the algorithm and parameters embedded in hash.
	Info(hash string) (Info, error)
}

// Default returns the golang.org/x/crypto backed [Library].
func Default() Library { return cryptoLibrary{} }

// Detect inspects the prefix of hash and returns the [Code] that produced
// it, or [Unknown].  It does not validate the rest of the string.
func Detect(hash string) Code {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		return Argon2id
	case strings.HasPrefix(hash, "$argon2i$"):
		return Argon2i
	// bcrypt hashes start with $2a$, $2b$, or $2y$
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return Bcrypt
	default:
		return Unknown
	}
}

type cryptoLibrary struct{}

func (cryptoLibrary) Hash(text string, code Code, p Params) (string, error) {
	switch code {
	case Bcrypt:
		return bcryptHash(text, p)
	case Argon2i, Argon2id:
		return argon2Hash(text, code, p)
	default:
		return "", unknownCode(code)
	}
}

func (cryptoLibrary) Verify(text, hash string) (bool, error) {
	switch code := Detect(hash); code {
	case Bcrypt:
		return bcryptVerify(text, hash)
	case Argon2i, Argon2id:
		return argon2Verify(text, hash)
	default:
		return false, unrecognised()
	}
}

func (l cryptoLibrary) NeedsRehash(hash string, code Code, p Params) (bool, error) {
	switch code {
	case Bcrypt, Argon2i, Argon2id:
	default:
		return false, unknownCode(code)
	}

	info, err := l.Info(hash)
	if err != nil {
		// A hash that cannot be read cannot satisfy the requested parameters.
		return true, nil
	}
	if info.Code != code {
		return true, nil
	}
	if code == Bcrypt {
		return info.Params.Cost != p.Cost, nil
	}
	return info.Params.Memory != p.Memory ||
		info.Params.Time != p.Time ||
		info.Params.Threads != p.Threads, nil
}

func (cryptoLibrary) Info(hash string) (Info, error) {
	switch code := Detect(hash); code {
	case Bcrypt:
		return bcryptInfo(hash)
	case Argon2i, Argon2id:
		return argon2Info(hash)
	default:
		return Info{}, unrecognised()
	}
}
