package hashing

import "github.com/hasbyte1/go-hashing/hashing/primitive"

const unknownName = "unknown"

// Info carries metadata decoded from an encoded hash without verifying it.
//
// When the hash is malformed or its format is not recognised, Algorithm is
// empty, Code is [primitive.Unknown] and Options is an empty, non-nil map.
type Info struct {
	// Algorithm is the algorithm that produced the hash.
	Algorithm Algorithm

	// Code is the library's numeric code for Algorithm.
	Code primitive.Code

	// Options holds the cost parameters embedded in the hash, using the
	// same names accepted by MakeHash:
	//
	//	BCRYPT             cost
	//	ARGON2I, ARGON2ID  time_cost, memory_cost, threads
	Options Options
}

// Known reports whether the hash was recognised.
func (i Info) Known() bool { return i.Algorithm != "" }

// Name returns the algorithm name, or "unknown".
func (i Info) Name() string {
	if !i.Known() {
		return unknownName
	}
	return string(i.Algorithm)
}

func unknownInfo() Info {
	return Info{Code: primitive.Unknown, Options: Options{}}
}
