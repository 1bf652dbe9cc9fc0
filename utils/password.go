package utils

import (
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	HasherBcrypt = "bcrypt"
	HasherArgon2 = "argon2"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// PasswordHasher hashes new passwords with the configured algorithm and
// verifies hashes produced by either one.
type PasswordHasher struct {
	algorithm  string
	bcryptCost int
}

func NewPasswordHasher(algorithm string, bcryptCost int) *PasswordHasher {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if algorithm != HasherArgon2 {
		algorithm = HasherBcrypt
	}
	return &PasswordHasher{algorithm: algorithm, bcryptCost: bcryptCost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.algorithm == HasherArgon2 {
		argon := argon2.DefaultConfig()
		encoded, err := argon.HashEncoded([]byte(password))
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *PasswordHasher) Verify(encodedHash, password string) bool {
	if strings.HasPrefix(encodedHash, "$argon2") {
		ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
		return err == nil && ok
	}
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
