package domain

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// AdminSubject is the only principal: the routine belongs to one person.
const AdminSubject = "admin"

const (
	MinPasswordLen = 8
	bcryptCost     = 12
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrUnauthorized       = errors.New("unauthorized")
)

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(plainPassword string) (string, error) {
	if utf8.RuneCountInString(plainPassword) < MinPasswordLen {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, plainPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plainPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
