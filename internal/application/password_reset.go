package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
)

// RequestPasswordReset opens a reset window for the activated account owning email
// and sends the reset email. Unknown or non activated emails yield (nil, nil) so the
// caller cannot tell whether an account exists.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*entity.Account, error) {
	email = normalize(email)
	acc, err := s.Repo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		s.Logger.Warn("password reset requested for non existing mail")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account by email: %w", err)
	}
	if !acc.Activated() {
		s.Logger.WithField("login", acc.Login).Warn("password reset requested for non activated account")
		return nil, nil
	}

	key, err := s.keys.ResetKey()
	if err != nil {
		return nil, fmt.Errorf("generate reset key: %w", err)
	}
	acc.OpenReset(key, s.now())
	if err := s.Repo.Update(ctx, acc); err != nil {
		return nil, fmt.Errorf("store reset key: %w", err)
	}

	s.notify(ctx, acc, NotifyPasswordReset)
	return acc, nil
}

// CompletePasswordReset sets newPassword on the account holding key if its reset
// window is still open. A missing or expired key yields (nil, nil).
func (s *Service) CompletePasswordReset(ctx context.Context, newPassword, key string) (*entity.Account, error) {
	if !PasswordLengthValid(newPassword) {
		return nil, ErrInvalidPassword
	}
	if key == "" {
		return nil, nil
	}
	acc, err := s.Repo.FindByResetKey(ctx, key)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup reset key: %w", err)
	}
	now := s.now()
	if acc.Reset == nil || acc.Reset.Expired(now, ResetWindow) {
		s.Logger.WithField("login", acc.Login).Info("reset key expired")
		return nil, nil
	}

	hash, err := s.Encoder.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	acc.ChangePassword(hash, entity.SystemAccount, now)
	if err := s.Repo.Update(ctx, acc); err != nil {
		return nil, fmt.Errorf("store new password: %w", err)
	}
	s.Logger.WithField("login", acc.Login).Info("password reset completed")
	return acc, nil
}
