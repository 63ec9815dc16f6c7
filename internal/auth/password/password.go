// Package password provides bcrypt hashing for user credentials. Hashing is
// invoked explicitly by the service before persistence, never as an implicit
// storage-layer hook.
package password

import "golang.org/x/crypto/bcrypt"

const cost = 10

// Hash derives a bcrypt hash from a plaintext password.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks a plaintext password against a stored hash.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
