package hashing

// std backs the package-level functions and the Algorithm methods.
var std = newFacade()

// resolve maps an empty name to DefaultAlgorithm and validates the rest.
func resolve(name string) (Algorithm, error) {
	if name == "" {
		return DefaultAlgorithm, nil
	}
	return ParseAlgorithm(name)
}

// MakeHash hashes data with the named algorithm.
//
// algorithm is case-insensitive; "" selects [DefaultAlgorithm].  nil options
// selects [DefaultOptions] for the algorithm.  It returns
// [ErrInvalidAlgorithm] for an unsupported name and [ErrHashingFailed] when
// no hash could be produced.
func MakeHash(data any, algorithm string, options Options) (string, error) {
	alg, err := resolve(algorithm)
	if err != nil {
		return "", err
	}
	return std.makeHash(data, alg, options)
}

// VerifyHash reports whether data matches hash.  It works for every
// supported algorithm; the algorithm is read from hash.
func VerifyHash(data any, hash string) (bool, error) {
	return std.verifyHash(data, hash)
}

// NeedsRehash reports whether hash should be regenerated to match the named
// algorithm and options.  Names and defaults follow [MakeHash].
func NeedsRehash(hash, algorithm string, options Options) (bool, error) {
	alg, err := resolve(algorithm)
	if err != nil {
		return false, err
	}
	return std.needsRehash(hash, alg, options)
}

// HashInfo returns the metadata embedded in hash.  A malformed hash yields
// an unknown [Info] rather than an error.
func HashInfo(hash string) Info {
	return std.hashInfo(hash)
}

// MakeHash hashes data with a.  It is equivalent to
// MakeHash(data, string(a), options).
func (a Algorithm) MakeHash(data any, options Options) (string, error) {
	return MakeHash(data, string(a), options)
}

// VerifyHash is equivalent to the package-level [VerifyHash]; the receiver
// is not consulted because the algorithm is embedded in hash.
func (a Algorithm) VerifyHash(data any, hash string) (bool, error) {
	return VerifyHash(data, hash)
}

// NeedsRehash reports whether hash should be regenerated with a and options.
func (a Algorithm) NeedsRehash(hash string, options Options) (bool, error) {
	return NeedsRehash(hash, string(a), options)
}

// HashInfo is equivalent to the package-level [HashInfo].
func (a Algorithm) HashInfo(hash string) Info {
	return HashInfo(hash)
}
