package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
)

// Authenticate checks login and password and returns a signed bearer token.
// login may also be the account email. The password is checked before the
// activation state so an unactivated account is only revealed to its owner.
func (s *Service) Authenticate(ctx context.Context, login, password string, rememberMe bool) (string, error) {
	creds, err := s.Repo.FindCredentials(ctx, normalize(login))
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup credentials: %w", err)
	}
	if !s.Encoder.Verify(password, creds.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	if !creds.Activated {
		return "", ErrAccountNotActivated
	}

	token, err := s.Tokens.CreateToken(creds.Login, creds.Roles, rememberMe)
	if err != nil {
		s.Logger.WithError(err).WithField("login", creds.Login).Error("generate token failed")
		return "", err
	}
	return token, nil
}

// GetAccount returns the account of the signed-in principal.
func (s *Service) GetAccount(ctx context.Context, login string) (*entity.Account, error) {
	acc, err := s.Repo.FindByLogin(ctx, normalize(login))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	return acc, nil
}
