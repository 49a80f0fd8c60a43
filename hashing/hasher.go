package hashing

// Hasher is the capability shared by both API shapes: an [Algorithm] value
// (algorithm chosen per call by the receiver) and a bound [*Hash] (algorithm
// chosen at construction).
//
// A nil Options argument means the defaults of the algorithm in use.
//
// All implementations are safe for concurrent use.
type Hasher interface {
	// MakeHash hashes data and returns the encoded, self-describing hash.
	// Values of string or byte-slice kind are hashed as-is; others are hashed as
	// canonical JSON.  A fresh salt is generated for every call.
	MakeHash(data any, options Options) (string, error)

	// VerifyHash reports whether data matches hash in constant time.
	// The algorithm is read from the hash itself.  Mismatch is (false, nil);
	// an unparseable hash is (false, ErrMalformedHash).
	VerifyHash(data any, hash string) (bool, error)

	// NeedsRehash reports whether hash was produced by another algorithm
	// or with parameters other than options, so that it should be
	// regenerated after the next successful verification.
	NeedsRehash(hash string, options Options) (bool, error)

	// HashInfo decodes the algorithm and cost parameters embedded in hash.
	HashInfo(hash string) Info
}

var (
	_ Hasher = Algorithm("")
	_ Hasher = (*Hash)(nil)
)
