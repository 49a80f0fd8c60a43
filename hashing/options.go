package hashing

import (
	"fmt"
	"math"
	"slices"

	"github.com/hasbyte1/go-hashing/hashing/primitive"
)

// Options is an algorithm-specific set of named cost parameters.
//
// Recognised names:
//
//	BCRYPT             cost
//	ARGON2I, ARGON2ID  time_cost, memory_cost (KiB), threads
//
// Names missing from an Options value take their default from
// [DefaultOptions].  A nil Options means "all defaults".  A name that does
// not belong to the algorithm is rejected with [ErrInvalidOption].
type Options map[string]int

// Option names.
const (
	OptionCost       = "cost"
	OptionTimeCost   = "time_cost"
	OptionMemoryCost = "memory_cost"
	OptionThreads    = "threads"
)

const (
	// DefaultBcryptCost is the default bcrypt work factor.
	DefaultBcryptCost = 12

	// DefaultArgon2TimeCost is the default number of Argon2 passes.
	DefaultArgon2TimeCost = 6

	// DefaultArgon2MemoryCost is the default Argon2 memory cost in KiB (96 MiB).
	DefaultArgon2MemoryCost = 98304

	// DefaultArgon2Threads is the default Argon2 degree of parallelism.
	DefaultArgon2Threads = 1
)

// DefaultBcryptOptions returns {cost: 12}.
func DefaultBcryptOptions() Options {
	return Options{OptionCost: DefaultBcryptCost}
}

// DefaultArgon2Options returns {time_cost: 6, memory_cost: 98304, threads: 1}.
func DefaultArgon2Options() Options {
	return Options{
		OptionTimeCost:   DefaultArgon2TimeCost,
		OptionMemoryCost: DefaultArgon2MemoryCost,
		OptionThreads:    DefaultArgon2Threads,
	}
}

// DefaultOptions returns a fresh copy of the default option set for a.
// It returns nil for an algorithm that is not supported.
func DefaultOptions(a Algorithm) Options {
	switch a {
	case Bcrypt:
		return DefaultBcryptOptions()
	case Argon2i, Argon2id:
		return DefaultArgon2Options()
	default:
		return nil
	}
}

// Clone returns a shallow copy of o.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

func optionNames(a Algorithm) []string {
	if a == Bcrypt {
		return []string{OptionCost}
	}
	return []string{OptionTimeCost, OptionMemoryCost, OptionThreads}
}

// toParams merges o over the defaults for a and converts the result to
// library parameters.  Range checks beyond representability are left to the
// library.
func toParams(a Algorithm, o Options) (primitive.Params, error) {
	merged := DefaultOptions(a)
	if merged == nil {
		return primitive.Params{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
	names := optionNames(a)
	for k, v := range o {
		if !slices.Contains(names, k) {
			return primitive.Params{}, fmt.Errorf("%w: %q is not an option of %s (want one of %v)",
				ErrInvalidOption, k, a, names)
		}
		merged[k] = v
	}

	if a == Bcrypt {
		return primitive.Params{Cost: merged[OptionCost]}, nil
	}

	time, err := boundedOption(merged, OptionTimeCost, math.MaxUint32)
	if err != nil {
		return primitive.Params{}, err
	}
	memory, err := boundedOption(merged, OptionMemoryCost, math.MaxUint32)
	if err != nil {
		return primitive.Params{}, err
	}
	threads, err := boundedOption(merged, OptionThreads, math.MaxUint8)
	if err != nil {
		return primitive.Params{}, err
	}
	return primitive.Params{
		Time:    uint32(time),
		Memory:  uint32(memory),
		Threads: uint8(threads),
	}, nil
}

func boundedOption(o Options, name string, max uint64) (uint64, error) {
	v := o[name]
	if v < 0 || uint64(v) > max {
		return 0, fmt.Errorf("%w: %s %d must be in [0, %d]", ErrInvalidOption, name, v, max)
	}
	return uint64(v), nil
}

// fromParams is the inverse of toParams, used to report decoded hashes.
func fromParams(a Algorithm, p primitive.Params) Options {
	if a == Bcrypt {
		return Options{OptionCost: p.Cost}
	}
	return Options{
		OptionTimeCost:   int(p.Time),
		OptionMemoryCost: int(p.Memory),
		OptionThreads:    int(p.Threads),
	}
}
