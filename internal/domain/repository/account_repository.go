package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned by Update when the stored version moved on.
	ErrVersionConflict = errors.New("version conflict")
	ErrDuplicateLogin  = errors.New("duplicate login")
	ErrDuplicateEmail  = errors.New("duplicate email")
)

// AccountRepository defines the persistence boundary for accounts and their role grants.
// Lookups by login and email are case-insensitive. Find* methods return ErrNotFound when
// nothing matches.
type AccountRepository interface {
	// Create inserts the account and its role grants as one unit and fills ID, Version and timestamps.
	Create(ctx context.Context, a *entity.Account) error
	// Update writes a, rejecting it with ErrVersionConflict unless a.Version matches; on
	// success a.Version holds the new value.
	Update(ctx context.Context, a *entity.Account) error
	// DeletePending removes the account only while it is still pending at version. It
	// returns ErrVersionConflict when the account moved on or was activated.
	DeletePending(ctx context.Context, id string, version int64) error

	FindByID(ctx context.Context, id string) (*entity.Account, error)
	FindByLogin(ctx context.Context, login string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByActivationKey(ctx context.Context, key string) (*entity.Account, error)
	FindByResetKey(ctx context.Context, key string) (*entity.Account, error)
	// FindCredentials matches identifier against logins first, then emails.
	FindCredentials(ctx context.Context, identifier string) (*entity.Credentials, error)
}
