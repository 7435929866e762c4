package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/infrastructure/memory"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

type recordedNotification struct {
	login string
	kind  NotificationKind
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []recordedNotification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, a *entity.Account, kind NotificationKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, recordedNotification{login: a.Login, kind: kind})
	return f.err
}

// seqKeys hands out predictable keys.
type seqKeys struct {
	mu sync.Mutex
	n  int
}

func (k *seqKeys) next(prefix string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.n++
	return fmt.Sprintf("%s%017d", prefix, k.n), nil
}

func (k *seqKeys) ActivationKey() (string, error) { return k.next("ACT") }
func (k *seqKeys) ResetKey() (string, error)      { return k.next("RST") }

type fakeGuard struct {
	busy     bool
	err      error
	keys     []string
	released int
}

func (g *fakeGuard) Acquire(_ context.Context, keys ...string) (func(), bool, error) {
	g.keys = append(g.keys, keys...)
	if g.err != nil {
		return nil, false, g.err
	}
	if g.busy {
		return nil, false, nil
	}
	return func() { g.released++ }, true, nil
}

type fixture struct {
	svc      *Service
	repo     *memory.AccountRepository
	notifier *fakeNotifier
	now      time.Time
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		repo:     memory.NewAccountRepository(),
		notifier: &fakeNotifier{},
		now:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	key, err := helpers.NewSigningKey(strings.Repeat("s", 64), "", nil)
	require.NoError(t, err)
	clock := func() time.Time { return f.now }
	tokens := helpers.NewTokenService(key, time.Hour, 24*time.Hour, nil, helpers.WithClock(clock))

	base := []Option{WithClock(clock), WithKeyGenerator(&seqKeys{})}
	f.svc = NewService(f.repo, helpers.NewBcryptEncoder(bcrypt.MinCost), tokens, f.notifier, nil, append(base, opts...)...)
	return f
}

func (f *fixture) signup(t *testing.T, login, email string) *entity.Account {
	t.Helper()
	acc, err := f.svc.Signup(context.Background(), SignupInput{Login: login, Email: email, Password: "password", FirstName: "F"})
	require.NoError(t, err)
	return acc
}

// activated signs up and activates an account.
func (f *fixture) activated(t *testing.T, login, email string) *entity.Account {
	t.Helper()
	acc := f.signup(t, login, email)
	key, ok := acc.Status.ActivationKey()
	require.True(t, ok)
	got, ok, err := f.svc.Activate(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)
	return got
}

var errBoom = errors.New("boom")
