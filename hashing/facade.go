package hashing

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hasbyte1/go-hashing/hashing/primitive"
)

// Operation names reported to an [Observer].
const (
	OpMakeHash    = "make_hash"
	OpVerifyHash  = "verify_hash"
	OpNeedsRehash = "needs_rehash"
	OpHashInfo    = "hash_info"
)

// Observer receives one call per completed hashing operation.  algorithm is
// the upper-case algorithm name, or "unknown" when it could not be
// determined.  err is nil on success; a mismatched VerifyHash is a success.
//
// Implementations must be safe for concurrent use.  See package metrics for
// a Prometheus implementation.
type Observer interface {
	ObserveHashing(operation, algorithm string, elapsed time.Duration, err error)
}

// Option configures the facade behind a [Hash].
type Option func(*facade)

// WithLogger sets the logger.  The default discards everything.  Data and
// hashes are never logged.
func WithLogger(l *zap.Logger) Option {
	return func(f *facade) {
		if l != nil {
			f.log = l
		}
	}
}

// WithObserver registers an [Observer] for every operation.
func WithObserver(o Observer) Option {
	return func(f *facade) { f.obs = o }
}

// WithLibrary replaces the hashing library.  The default is
// [primitive.Default].
func WithLibrary(lib primitive.Library) Option {
	return func(f *facade) {
		if lib != nil {
			f.lib = lib
		}
	}
}

// facade validates options, serialises data and delegates to the library.
// Algorithms arrive already resolved by the calling API.  It holds no
// mutable state.
type facade struct {
	lib primitive.Library
	log *zap.Logger
	obs Observer
}

func newFacade(opts ...Option) *facade {
	f := &facade{
		lib: primitive.Default(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *facade) makeHash(data any, alg Algorithm, opts Options) (hash string, err error) {
	start := time.Now()
	defer func() { f.observe(OpMakeHash, string(alg), start, err) }()

	code, err := primitiveCode(alg)
	if err != nil {
		return "", err
	}
	text, err := encode(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}
	params, err := toParams(alg, opts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}

	hash, err = f.lib.Hash(text, code, params)
	if err != nil {
		f.log.Warn("hashing failed", zap.Stringer("algorithm", alg), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}
	if hash == "" {
		f.log.Warn("hashing library returned an empty hash", zap.Stringer("algorithm", alg))
		return "", fmt.Errorf("%w: empty result", ErrHashingFailed)
	}

	f.log.Debug("hash created",
		zap.Stringer("algorithm", alg),
		zap.Duration("elapsed", time.Since(start)))
	return hash, nil
}

func (f *facade) verifyHash(data any, hash string) (ok bool, err error) {
	start := time.Now()
	defer func() { f.observe(OpVerifyHash, detectedName(hash), start, err) }()

	text, err := encode(data)
	if err != nil {
		return false, err
	}
	ok, err = f.lib.Verify(text, hash)
	if err != nil {
		f.log.Debug("hash verification failed", zap.Error(err))
		if errors.Is(err, primitive.ErrMalformedHash) {
			return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
		}
		return false, err
	}
	return ok, nil
}

func (f *facade) needsRehash(hash string, alg Algorithm, opts Options) (needs bool, err error) {
	start := time.Now()
	defer func() { f.observe(OpNeedsRehash, string(alg), start, err) }()

	code, err := primitiveCode(alg)
	if err != nil {
		return false, err
	}
	params, err := toParams(alg, opts)
	if err != nil {
		return false, err
	}
	needs, err = f.lib.NeedsRehash(hash, code, params)
	if err != nil {
		return false, err
	}

	f.log.Debug("rehash check",
		zap.Stringer("algorithm", alg),
		zap.String("stored", detectedName(hash)),
		zap.Bool("needs_rehash", needs))
	return needs, nil
}

func (f *facade) hashInfo(hash string) Info {
	start := time.Now()
	info, err := f.lib.Info(hash)
	alg, known := algorithmOf(info.Code)
	if err != nil || !known {
		f.observe(OpHashInfo, unknownName, start, nil)
		return unknownInfo()
	}
	f.observe(OpHashInfo, string(alg), start, nil)
	return Info{
		Algorithm: alg,
		Code:      info.Code,
		Options:   fromParams(alg, info.Params),
	}
}

func (f *facade) observe(op, algorithm string, start time.Time, err error) {
	if f.obs == nil {
		return
	}
	f.obs.ObserveHashing(op, algorithm, time.Since(start), err)
}

func detectedName(hash string) string {
	if a, ok := DetectAlgorithm(hash); ok {
		return string(a)
	}
	return unknownName
}
