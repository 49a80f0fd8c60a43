package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	hash, err := hashing.MakeHash(data, "bcrypt", nil)
//	if errors.Is(err, hashing.ErrInvalidAlgorithm) {
//	    // algorithm name was not one of Supported()
//	}
var (
	// ErrInvalidAlgorithm is returned when an algorithm name, compared
	// case-insensitively, is not one of [Supported].  It is raised before
	// anything reaches the hashing library.
	ErrInvalidAlgorithm = errors.New("hashing: invalid algorithm")

	// ErrHashingFailed is returned by MakeHash when no hash could be
	// produced: bad option combination, out-of-range cost, input the
	// algorithm refuses (bcrypt's 72-byte limit) or an internal failure.
	// The underlying cause is wrapped alongside it.
	ErrHashingFailed = errors.New("hashing: could not hash the data")

	// ErrMalformedHash is returned by VerifyHash when the stored hash
	// cannot be parsed.  A hash that parses but does not match is reported
	// as (false, nil), never as an error.
	ErrMalformedHash = errors.New("hashing: malformed hash")

	// ErrInvalidOption is returned when an option name does not belong to
	// the selected algorithm or its value cannot be represented.
	ErrInvalidOption = errors.New("hashing: invalid option")

	// ErrUnserializable is returned when non-textual data cannot be encoded
	// to JSON before hashing.
	ErrUnserializable = errors.New("hashing: data cannot be serialised")

	// ErrUnknownAlgorithm signals a registry lookup failure for an algorithm
	// that passed validation.  Seeing it indicates a bug in this package.
	ErrUnknownAlgorithm = errors.New("hashing: algorithm not registered")
)
