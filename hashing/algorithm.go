package hashing

import (
	"fmt"
	"slices"

	"github.com/hasbyte1/go-hashing/hashing/primitive"
)

// Algorithm is the canonical, upper-case identifier of a hashing algorithm.
//
// Values are compared case-sensitively; use [ParseAlgorithm] to turn user
// input ("bcrypt", "Argon2id", …) into an Algorithm.
type Algorithm string

const (
	// Bcrypt selects bcrypt.
	Bcrypt Algorithm = "BCRYPT"
	// Argon2i selects Argon2i.
	Argon2i Algorithm = "ARGON2I"
	// Argon2id selects Argon2id (recommended for new systems).
	Argon2id Algorithm = "ARGON2ID"

	// DefaultAlgorithm is used when no algorithm is given.
	DefaultAlgorithm = Argon2id
)

// primitiveCodes maps each supported algorithm to the library's numeric code.
// Read-only after package initialisation.
var primitiveCodes = map[Algorithm]primitive.Code{
	Bcrypt:   primitive.Bcrypt,
	Argon2i:  primitive.Argon2i,
	Argon2id: primitive.Argon2id,
}

// Supported returns the supported algorithms in a stable order:
// BCRYPT, ARGON2I, ARGON2ID.  The returned slice is a fresh copy.
func Supported() []Algorithm {
	return []Algorithm{Bcrypt, Argon2i, Argon2id}
}

// ParseAlgorithm normalises name to upper case and returns the matching
// [Algorithm].  It returns [ErrInvalidAlgorithm] when name is not one of
// [Supported].
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(upperASCII(name))
	if !slices.Contains(Supported(), a) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAlgorithm, name)
	}
	return a, nil
}

// String implements [fmt.Stringer].
func (a Algorithm) String() string { return string(a) }

// DetectAlgorithm inspects a hash string and returns the [Algorithm] that
// produced it.  It is a prefix heuristic and does not validate the hash.
//
// The second return value is false when the format is not recognised.
func DetectAlgorithm(hash string) (Algorithm, bool) {
	return algorithmOf(primitive.Detect(hash))
}

func primitiveCode(a Algorithm) (primitive.Code, error) {
	code, ok := primitiveCodes[a]
	if !ok {
		return primitive.Unknown, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
	return code, nil
}

func algorithmOf(code primitive.Code) (Algorithm, bool) {
	for a, c := range primitiveCodes {
		if c == code {
			return a, true
		}
	}
	return "", false
}

// upperASCII upper-cases ASCII letters only, so that non-ASCII input such as
// "argon2ıd" is never folded onto a supported name.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
