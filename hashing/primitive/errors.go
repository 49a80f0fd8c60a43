package primitive

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Library] implementations.  Compare with
// [errors.Is]; the returned errors wrap these with detail.
var (
	// ErrInvalidParams is returned by Hash when a parameter falls outside
	// the range the algorithm accepts (e.g. a bcrypt cost above 31).
	ErrInvalidParams = errors.New("primitive: invalid parameters")

	// ErrMalformedHash is returned when an encoded hash cannot be parsed:
	// unknown prefix, missing segments, bad encoding or out-of-range
	// embedded parameters.
	ErrMalformedHash = errors.New("primitive: malformed hash")

	// ErrUnknownCode is returned when an algorithm code is not one this
	// library implements.
	ErrUnknownCode = errors.New("primitive: unknown algorithm code")
)

func unknownCode(c Code) error {
	return fmt.Errorf("%w: %d", ErrUnknownCode, int(c))
}

func unrecognised() error {
	return fmt.Errorf("%w: unrecognised hash format", ErrMalformedHash)
}
