package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword menghasilkan hash bcrypt dari password plain.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("gagal hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword membandingkan password plain dengan hash tersimpan.
func CheckPassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
