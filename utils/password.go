package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hache un mot de passe avec bcrypt
func HashPassword(password string) (string, error) {
	return hashWithCost(password, bcrypt.DefaultCost)
}

// MustHashPassword hache un mot de passe de fixture au coût minimal et panique en cas d'échec
func MustHashPassword(password string) string {
	hash, err := hashWithCost(password, bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}

func hashWithCost(password string, cost int) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword vérifie si un mot de passe correspond à son hash
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
