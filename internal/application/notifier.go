package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

// NotificationKind selects the email sent for an account.
type NotificationKind string

const (
	NotifyActivation    NotificationKind = "activation"
	NotifyPasswordReset NotificationKind = "password_reset"
)

// Notifier delivers account emails. Callers never act on its error beyond logging it.
type Notifier interface {
	Notify(ctx context.Context, a *entity.Account, kind NotificationKind) error
}

// NopNotifier logs instead of sending; used when MAIL_SEND_ENABLED=false.
type NopNotifier struct {
	Logger *logrus.Logger
}

func (n NopNotifier) Notify(_ context.Context, a *entity.Account, kind NotificationKind) error {
	if n.Logger != nil {
		n.Logger.WithFields(logrus.Fields{"login": a.Login, "kind": kind}).Info("mail sending disabled, notification skipped")
	}
	return nil
}
