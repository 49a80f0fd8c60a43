package primitive

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinBcryptCost is the lowest accepted bcrypt work factor.
	MinBcryptCost = bcrypt.MinCost

	// MaxBcryptCost is the highest accepted bcrypt work factor.
	MaxBcryptCost = bcrypt.MaxCost
)

func validateBcrypt(p Params) error {
	if p.Cost < MinBcryptCost || p.Cost > MaxBcryptCost {
		return fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidParams, p.Cost, MinBcryptCost, MaxBcryptCost)
	}
	return nil
}

// bcryptHash returns the Modular Crypt Format string for text.
//
// bcrypt rejects input longer than 72 bytes with [bcrypt.ErrPasswordTooLong];
// the error is wrapped and returned unchanged in meaning.
func bcryptHash(text string, p Params) (string, error) {
	if err := validateBcrypt(p); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(text), p.Cost)
	if err != nil {
		return "", fmt.Errorf("primitive: bcrypt: %w", err)
	}
	return string(hash), nil
}

func bcryptVerify(text, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(text))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: bcrypt: %v", ErrMalformedHash, err)
	}
}

func bcryptInfo(hash string) (Info, error) {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return Info{}, fmt.Errorf("%w: bcrypt: %v", ErrMalformedHash, err)
	}
	return Info{Code: Bcrypt, Params: Params{Cost: cost}}, nil
}
