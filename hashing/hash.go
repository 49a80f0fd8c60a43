package hashing

// Hash is a hasher bound to one algorithm.
//
// The algorithm is normalised to upper case by [New] and validated on each
// use, so an unsupported name surfaces as [ErrInvalidAlgorithm] from
// MakeHash or NeedsRehash rather than from the constructor.
//
// # Thread safety
//
// Hash is immutable after construction and safe for concurrent use.  Every
// instance owns its algorithm; constructing or re-binding one instance
// never affects another.
type Hash struct {
	algorithm string
	f         *facade
}

// New returns a [Hash] bound to algorithm ("" selects [DefaultAlgorithm]).
//
//	h := hashing.New("bcrypt", hashing.WithLogger(logger))
//	hash, err := h.MakeHash("secret", hashing.Options{"cost": 12})
func New(algorithm string, opts ...Option) *Hash {
	return &Hash{
		algorithm: normalise(algorithm),
		f:         newFacade(opts...),
	}
}

func normalise(algorithm string) string {
	if algorithm == "" {
		return string(DefaultAlgorithm)
	}
	return upperASCII(algorithm)
}

// HashAlgorithm returns the bound algorithm name in upper case.  The name
// is returned even when it is not supported.
func (h *Hash) HashAlgorithm() string { return h.algorithm }

// SetHashAlgorithm returns a new [Hash] bound to algorithm that shares h's
// logger, observer and library.  h itself is unchanged.
func (h *Hash) SetHashAlgorithm(algorithm string) *Hash {
	return &Hash{algorithm: normalise(algorithm), f: h.f}
}

// Supported returns the supported algorithms; see the package-level
// [Supported].
func (h *Hash) Supported() []Algorithm { return Supported() }

// MakeHash hashes data with the bound algorithm.  nil options selects the
// algorithm's defaults.
func (h *Hash) MakeHash(data any, options Options) (string, error) {
	alg, err := ParseAlgorithm(h.algorithm)
	if err != nil {
		return "", err
	}
	return h.f.makeHash(data, alg, options)
}

// VerifyHash reports whether data matches hash.  The bound algorithm is not
// consulted; any supported hash is verified.
func (h *Hash) VerifyHash(data any, hash string) (bool, error) {
	return h.f.verifyHash(data, hash)
}

// NeedsRehash reports whether hash should be regenerated with the bound
// algorithm and options.
func (h *Hash) NeedsRehash(hash string, options Options) (bool, error) {
	alg, err := ParseAlgorithm(h.algorithm)
	if err != nil {
		return false, err
	}
	return h.f.needsRehash(hash, alg, options)
}

// HashInfo returns the metadata embedded in hash.
func (h *Hash) HashInfo(hash string) Info {
	return h.f.hashInfo(hash)
}
