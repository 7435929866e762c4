package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
)

// SignupInput is the caller-supplied registration data.
// Authorities is accepted for wire compatibility and ignored.
type SignupInput struct {
	Login       string
	Password    string
	FirstName   string
	LastName    string
	Email       string
	ImageURL    string
	LangKey     string
	Authorities []string
}

// Signup creates a pending account and sends its activation email.
//
// A login or email held by a pending account is reclaimed: the pending account is
// deleted and the signup proceeds. Held by an activated account, the signup fails
// with ErrUsernameAlreadyUsed or ErrEmailAlreadyUsed. Without a SignupGuard the
// checks are not atomic with the insert; the store's unique indexes reject the loser.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.Account, error) {
	if !PasswordLengthValid(in.Password) {
		return nil, ErrInvalidPassword
	}
	login := normalize(in.Login)
	email := normalize(in.Email)

	if s.guard != nil {
		release, ok, err := s.guard.Acquire(ctx, "signup:login:"+login, "signup:email:"+email)
		if err != nil {
			return nil, fmt.Errorf("acquire signup lock: %w", err)
		}
		if !ok {
			return nil, ErrSignupInProgress
		}
		defer release()
	}

	if err := s.reclaim(ctx, s.Repo.FindByLogin, login, ErrUsernameAlreadyUsed); err != nil {
		return nil, err
	}
	if err := s.reclaim(ctx, s.Repo.FindByEmail, email, ErrEmailAlreadyUsed); err != nil {
		return nil, err
	}

	hash, err := s.Encoder.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	key, err := s.keys.ActivationKey()
	if err != nil {
		return nil, fmt.Errorf("generate activation key: %w", err)
	}

	langKey := strings.TrimSpace(in.LangKey)
	if langKey == "" {
		langKey = s.defaultLangKey
	}
	now := s.now()
	acc := &entity.Account{
		Login:          login,
		Email:          email,
		PasswordHash:   hash,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		ImageURL:       in.ImageURL,
		LangKey:        langKey,
		Status:         entity.Pending(key),
		Roles:          []string{entity.RoleUser},
		CreatedBy:      entity.SystemAccount,
		CreatedAt:      now,
		LastModifiedBy: entity.SystemAccount,
		LastModifiedAt: now,
	}
	if err := s.Repo.Create(ctx, acc); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateLogin):
			return nil, ErrUsernameAlreadyUsed
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailAlreadyUsed
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.Logger.WithFields(logrus.Fields{"login": acc.Login, "account_id": acc.ID}).Debug("created pending account")

	s.notify(ctx, acc, NotifyActivation)
	return acc, nil
}

// reclaimAttempts bounds how often reclaim retries a pending holder that changed under it.
const reclaimAttempts = 3

// reclaim frees value when it is held by a pending account and fails with used when
// an activated account holds it. The delete only succeeds against the version that was
// read, so an account activated in between is kept.
func (s *Service) reclaim(ctx context.Context, find func(context.Context, string) (*entity.Account, error), value string, used error) error {
	for attempt := 0; attempt < reclaimAttempts; attempt++ {
		existing, err := find(ctx, value)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lookup existing account: %w", err)
		}
		if existing.Activated() {
			return used
		}
		err = s.Repo.DeletePending(ctx, existing.ID, existing.Version)
		switch {
		case err == nil:
			s.Logger.WithFields(logrus.Fields{"login": existing.Login, "account_id": existing.ID}).Info("removed non activated account")
			return nil
		case errors.Is(err, repo.ErrNotFound), errors.Is(err, repo.ErrVersionConflict):
			continue
		default:
			return fmt.Errorf("delete pending account: %w", err)
		}
	}
	return used
}
