package crypt

import (
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

var ErrorEmptyPassword = errors.New("password must not be empty")
var ErrorPasswordMismatch = errors.New("password does not match")

// HashPassword returns a base64 encoded bcrypt digest, salted per call.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrorEmptyPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("generating encoded password: %w", err)
	}
	return base64.StdEncoding.EncodeToString(passwordBytes), nil
}

func ComparePassword(encodedHash, password string) error {
	hash, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return fmt.Errorf("decoding password hash: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrorPasswordMismatch
		}
		return fmt.Errorf("comparing password: %w", err)
	}
	return nil
}
