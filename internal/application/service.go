package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// Password length policy, in bytes. The upper bound is bcrypt's input limit.
const (
	PasswordMinLength = 4
	PasswordMaxLength = 72
)

// ResetWindow is how long a reset key stays redeemable after it was requested.
const ResetWindow = 24 * time.Hour

const defaultNotifyTimeout = 3 * time.Second

// KeyGenerator issues activation and reset keys.
type KeyGenerator interface {
	ActivationKey() (string, error)
	ResetKey() (string, error)
}

// SignupGuard serializes signups competing for the same login or email.
// Acquire returns ok=false when another signup holds any of the keys.
type SignupGuard interface {
	Acquire(ctx context.Context, keys ...string) (release func(), ok bool, err error)
}

// Service holds the account lifecycle operations: signup, activation,
// password reset and change, and authentication.
type Service struct {
	Repo     repo.AccountRepository
	Encoder  helpers.PasswordEncoder
	Tokens   *helpers.TokenService
	Notifier Notifier
	Logger   *logrus.Logger

	keys           KeyGenerator
	guard          SignupGuard
	now            func() time.Time
	defaultLangKey string
	notifyTimeout  time.Duration
}

type Option func(*Service)

// WithClock injects a custom clock (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithKeyGenerator(k KeyGenerator) Option {
	return func(s *Service) {
		if k != nil {
			s.keys = k
		}
	}
}

// WithSignupGuard enables the single-flight lock around signup validation.
func WithSignupGuard(g SignupGuard) Option {
	return func(s *Service) { s.guard = g }
}

func WithDefaultLangKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.defaultLangKey = key
		}
	}
}

func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

func NewService(repo repo.AccountRepository, encoder helpers.PasswordEncoder, tokens *helpers.TokenService, notifier Notifier, logger *logrus.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	if notifier == nil {
		notifier = NopNotifier{Logger: logger}
	}
	s := &Service{
		Repo:           repo,
		Encoder:        encoder,
		Tokens:         tokens,
		Notifier:       notifier,
		Logger:         logger,
		keys:           helpers.KeyGenerator{},
		now:            time.Now,
		defaultLangKey: "en",
		notifyTimeout:  defaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PasswordLengthValid applies the length policy shared by signup, reset and change.
func PasswordLengthValid(password string) bool {
	return len(password) >= PasswordMinLength && len(password) <= PasswordMaxLength
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// notify sends kind for a and only logs failures. The send is detached from the
// caller's cancellation so a dropped client does not abort an enqueue in flight.
func (s *Service) notify(ctx context.Context, a *entity.Account, kind NotificationKind) {
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	if err := s.Notifier.Notify(c, a, kind); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"login": a.Login, "kind": kind}).Warn("account notification failed")
	}
}
