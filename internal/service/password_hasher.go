package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordHasher aplica bcrypt con costo configurable. El secreto en claro
// nunca se persiste ni se loguea.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("empty password")
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Compare devuelve ErrInvalidCredentials cuando el password no coincide
// con el hash almacenado. bcrypt compara en tiempo constante.
func (h *PasswordHasher) Compare(plaintext, hashed string) error {
	if plaintext == "" || hashed == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
