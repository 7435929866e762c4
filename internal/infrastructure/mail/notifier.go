package mail

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/pkg/mailer"
	tpl "github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

// Publisher puts a JSON job on the email queue. *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type Links struct {
	ActivationURL    string
	ResetPasswordURL string
}

// QueueNotifier turns account notifications into templated email jobs for the worker.
type QueueNotifier struct {
	Pub      Publisher
	Branding tpl.Branding
	Links    Links
	Logger   *logrus.Logger
	now      func() time.Time
}

func NewQueueNotifier(pub Publisher, branding tpl.Branding, links Links, logger *logrus.Logger) *QueueNotifier {
	return &QueueNotifier{Pub: pub, Branding: branding, Links: links, Logger: logger, now: time.Now}
}

func (n *QueueNotifier) Notify(ctx context.Context, a *entity.Account, kind application.NotificationKind) error {
	job, err := n.buildJob(a, kind)
	if err != nil {
		return err
	}
	if err := n.Pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("publish %s email: %w", kind, err)
	}
	if n.Logger != nil {
		n.Logger.WithFields(logrus.Fields{"login": a.Login, "template": job.Template}).Debug("email job enqueued")
	}
	return nil
}

func (n *QueueNotifier) buildJob(a *entity.Account, kind application.NotificationKind) (mailer.EmailJob, error) {
	opts := []tpl.Option{tpl.WithLogin(a.Login), tpl.WithLangKey(a.LangKey), tpl.WithTime(n.now())}
	name := displayName(a)

	switch kind {
	case application.NotifyActivation:
		key, ok := a.Status.ActivationKey()
		if !ok || key == "" {
			return mailer.EmailJob{}, fmt.Errorf("account %s has no activation key", a.Login)
		}
		return mailer.EmailJob{
			To:       a.Email,
			Template: tpl.ActivationEmail,
			Data:     tpl.NewActivationEmailData(n.Branding, name, a.Email, withKey(n.Links.ActivationURL, key), opts...),
		}, nil
	case application.NotifyPasswordReset:
		if a.Reset == nil {
			return mailer.EmailJob{}, fmt.Errorf("account %s has no open reset", a.Login)
		}
		opts = append(opts, tpl.WithExpiresAt(a.Reset.RequestedAt.Add(application.ResetWindow)))
		return mailer.EmailJob{
			To:       a.Email,
			Template: tpl.PasswordReset,
			Data:     tpl.NewPasswordResetData(n.Branding, name, a.Email, withKey(n.Links.ResetPasswordURL, a.Reset.Key), opts...),
		}, nil
	}
	return mailer.EmailJob{}, fmt.Errorf("unknown notification kind %q", kind)
}

func displayName(a *entity.Account) string {
	if name := strings.TrimSpace(a.FirstName + " " + a.LastName); name != "" {
		return name
	}
	return a.Login
}

// withKey appends key as the "key" query parameter, keeping any query already on base.
func withKey(base, key string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?key=" + url.QueryEscape(key)
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String()
}

var _ application.Notifier = (*QueueNotifier)(nil)
