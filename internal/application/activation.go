package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
)

// Activate redeems an activation key. ok is false when no pending account carries
// key, which includes a key that was already redeemed.
func (s *Service) Activate(ctx context.Context, key string) (*entity.Account, bool, error) {
	if key == "" {
		return nil, false, nil
	}
	acc, err := s.Repo.FindByActivationKey(ctx, key)
	if errors.Is(err, repo.ErrNotFound) {
		s.Logger.Debug("activation key not found")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup activation key: %w", err)
	}

	acc.Activate(entity.SystemAccount, s.now())
	if err := s.Repo.Update(ctx, acc); err != nil {
		return nil, false, fmt.Errorf("activate account: %w", err)
	}
	s.Logger.WithField("login", acc.Login).Info("activated account")
	return acc, true, nil
}
