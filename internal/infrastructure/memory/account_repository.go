package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

// AccountRepository keeps accounts in process memory. It enforces the same
// unique login/email and version rules as the postgres store.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*entity.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*entity.Account)}
}

func clone(a *entity.Account) *entity.Account {
	c := *a
	c.Roles = slices.Clone(a.Roles)
	if a.Reset != nil {
		r := *a.Reset
		c.Reset = &r
	}
	return &c
}

// conflict checks login and email uniqueness against every account except skipID.
func (r *AccountRepository) conflict(a *entity.Account, skipID string) error {
	for id, other := range r.accounts {
		if id == skipID {
			continue
		}
		if strings.EqualFold(other.Login, a.Login) {
			return repository.ErrDuplicateLogin
		}
		if strings.EqualFold(other.Email, a.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	return nil
}

func (r *AccountRepository) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.conflict(a, ""); err != nil {
		return err
	}
	a.ID = uuid.NewString()
	a.Version = 1
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.LastModifiedAt.IsZero() {
		a.LastModifiedAt = a.CreatedAt
	}
	r.accounts[a.ID] = clone(a)
	return nil
}

func (r *AccountRepository) Update(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.accounts[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.Version != a.Version {
		return repository.ErrVersionConflict
	}
	if err := r.conflict(a, a.ID); err != nil {
		return err
	}
	a.Version++
	r.accounts[a.ID] = clone(a)
	return nil
}

func (r *AccountRepository) DeletePending(_ context.Context, id string, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.Version != version || cur.Activated() {
		return repository.ErrVersionConflict
	}
	delete(r.accounts, id)
	return nil
}

func (r *AccountRepository) find(match func(*entity.Account) bool) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if match(a) {
			return clone(a), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool { return a.ID == id })
}

func (r *AccountRepository) FindByLogin(_ context.Context, login string) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool { return strings.EqualFold(a.Login, login) })
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool { return strings.EqualFold(a.Email, email) })
}

func (r *AccountRepository) FindByActivationKey(_ context.Context, key string) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool {
		k, ok := a.Status.ActivationKey()
		return ok && k == key
	})
}

func (r *AccountRepository) FindByResetKey(_ context.Context, key string) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool { return a.Reset != nil && a.Reset.Key == key })
}

func (r *AccountRepository) FindCredentials(ctx context.Context, identifier string) (*entity.Credentials, error) {
	a, err := r.FindByLogin(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		a, err = r.FindByEmail(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	return &entity.Credentials{
		AccountID:    a.ID,
		Login:        a.Login,
		PasswordHash: a.PasswordHash,
		Activated:    a.Activated(),
		Roles:        a.Roles,
	}, nil
}

// Count returns the number of stored accounts.
func (r *AccountRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
