// Package hashing is a small facade over password-hashing primitives.
//
// It normalises algorithm selection (BCRYPT, ARGON2I, ARGON2ID), validates
// algorithm names and option sets, and offers one API to hash data, verify
// data against a hash, decide whether a hash needs upgrading, and inspect a
// hash's parameters.  The cryptography itself lives in package
// [github.com/hasbyte1/go-hashing/hashing/primitive] on top of
// golang.org/x/crypto.
//
// # Two API shapes
//
// Per call, with the algorithm passed each time:
//
//	hash, err := hashing.MakeHash("my-secret", "bcrypt", hashing.Options{"cost": 12})
//	ok, err   := hashing.VerifyHash("my-secret", hash)
//
// Bound, with the algorithm fixed at construction:
//
//	h := hashing.New("argon2id", hashing.WithLogger(logger))
//	hash, err := h.MakeHash("my-secret", nil) // nil = defaults
//
// Both satisfy [Hasher].  Algorithm values satisfy it as well, so
// hashing.Bcrypt.MakeHash(data, nil) is the per-call form written as a
// method.
//
// # Data
//
// Strings and byte slices are hashed as-is.  Any other value (structs, maps,
// numbers) is hashed as canonical JSON with sorted object keys, so the same
// logical value always produces verifiable hashes.
//
// # Defaults
//
//   - BCRYPT:   cost 12
//   - ARGON2I, ARGON2ID: time_cost 6, memory_cost 98304 KiB, threads 1
//
// # Upgrading hashes
//
// Call NeedsRehash after every successful verification and store a new hash
// when it returns true:
//
//	if ok, _ := h.VerifyHash(password, stored); ok {
//	    if needs, _ := h.NeedsRehash(stored, nil); needs {
//	        fresh, _ := h.MakeHash(password, nil)
//	        persist(userID, fresh)
//	    }
//	}
//
// # Latency
//
// MakeHash and VerifyHash are deliberately slow and memory hungry; keep
// them off latency-sensitive paths.  They cannot be cancelled once started.
package hashing
