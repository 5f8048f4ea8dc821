package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
)

type CredentialStorage interface {
	PasswordHash(username domain.Username) (string, error)
}

type Auth struct {
	storage CredentialStorage
}

func NewAuth(storage CredentialStorage) *Auth {
	return &Auth{storage}
}

// Authenticate compares the submitted password against the stored bcrypt
// hash. An unknown user and a wrong password both report false, so a signin
// probe cannot tell the difference.
func (s *Auth) Authenticate(username domain.Username, password domain.Password) (bool, error) {
	hash, err := s.storage.PasswordHash(username)
	if err != nil {
		var statusErr *internal_errors.ErrorWithStatusCode
		if errors.As(err, &statusErr) {
			return false, nil
		}
		return false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}
