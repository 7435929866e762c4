package application

import (
	"context"
	"errors"
	"fmt"

	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
)

// ChangePassword replaces the password of the signed-in account identified by login
// after checking currentPassword.
func (s *Service) ChangePassword(ctx context.Context, login, currentPassword, newPassword string) error {
	if !PasswordLengthValid(newPassword) {
		return ErrInvalidPassword
	}
	acc, err := s.Repo.FindByLogin(ctx, normalize(login))
	if errors.Is(err, repo.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup account: %w", err)
	}
	if !s.Encoder.Verify(currentPassword, acc.PasswordHash) {
		return ErrInvalidPassword
	}

	hash, err := s.Encoder.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	acc.ChangePassword(hash, acc.Login, s.now())
	if err := s.Repo.Update(ctx, acc); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}
	s.Logger.WithField("login", acc.Login).Info("changed password")
	return nil
}
