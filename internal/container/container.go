package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/internal/infrastructure/mail"
	pginfra "github.com/oksasatya/go-account-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-account-service/internal/infrastructure/redislock"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	tpl "github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

// Container holds the components built at startup. It is constructed once in main
// and handed to the router; nothing in it is global.
type Container struct {
	Cfg       *config.Config
	Logger    *logrus.Logger
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	RabbitPub *helpers.RabbitPublisher
	Tokens    *helpers.TokenService

	// Repo overrides the postgres store when set (tests use the memory store).
	Repo repository.AccountRepository
}

func (c *Container) AccountRepository() repository.AccountRepository {
	if c.Repo != nil {
		return c.Repo
	}
	return pginfra.NewAccountRepository(c.PGPool)
}

// Notifier queues account emails, or only logs them when sending is disabled or no broker is wired.
func (c *Container) Notifier() application.Notifier {
	if !c.Cfg.MailSendEnabled || c.RabbitPub == nil {
		return application.NopNotifier{Logger: c.Logger}
	}
	return mail.NewQueueNotifier(c.RabbitPub, tpl.Branding{
		AppName:     c.Cfg.AppName,
		CompanyName: c.Cfg.CompanyName,
		SupportURL:  c.Cfg.SupportURL,
	}, mail.Links{
		ActivationURL:    c.Cfg.ActivationURL,
		ResetPasswordURL: c.Cfg.ResetPasswordURL,
	}, c.Logger)
}

// AccountService wires the account lifecycle service from the container.
func (c *Container) AccountService() *application.Service {
	opts := []application.Option{
		application.WithDefaultLangKey(c.Cfg.DefaultLangKey),
		application.WithNotifyTimeout(c.Cfg.NotificationTimeout),
	}
	if c.Cfg.SignupLockEnabled && c.Redis != nil {
		opts = append(opts, application.WithSignupGuard(redislock.NewSignupLock(c.Redis, c.Cfg.SignupLockTTL, c.Logger)))
	}
	return application.NewService(
		c.AccountRepository(),
		helpers.NewBcryptEncoder(c.Cfg.BcryptCost),
		c.Tokens,
		c.Notifier(),
		c.Logger,
		opts...,
	)
}
