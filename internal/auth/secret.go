package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashSecret creates a bcrypt hash from the given plaintext secret (a
// confirmation code in the signup flow).
func HashSecret(secret string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifySecret checks if the provided plaintext secret matches the stored
// bcrypt hash.
func VerifySecret(hashedSecret, providedSecret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(providedSecret))
}
