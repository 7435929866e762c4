package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/pkg/mailer"
	tpl "github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

type fakePublisher struct {
	jobs []mailer.EmailJob
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body.(mailer.EmailJob))
	return nil
}

func newNotifier(pub Publisher) *QueueNotifier {
	n := NewQueueNotifier(pub, tpl.Branding{AppName: "accounts", CompanyName: "Acme"}, Links{
		ActivationURL:    "https://app.example.com/activate",
		ResetPasswordURL: "https://app.example.com/reset?lang=en",
	}, nil)
	n.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return n
}

func TestNotifyActivation(t *testing.T) {
	pub := &fakePublisher{}
	n := newNotifier(pub)
	a := &entity.Account{Login: "alice", Email: "alice@x.io", FirstName: "Alice", LangKey: "en", Status: entity.Pending("K1")}

	require.NoError(t, n.Notify(context.Background(), a, application.NotifyActivation))
	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0]
	assert.Equal(t, "alice@x.io", job.To)
	assert.Equal(t, tpl.ActivationEmail, job.Template)
	assert.Equal(t, "https://app.example.com/activate?key=K1", job.Data["ActivationURL"])
	assert.Equal(t, "Alice", job.Data["Name"])
	assert.Equal(t, "alice", job.Data["Login"])
	assert.Equal(t, "Acme", job.Data["CompanyName"])
}

func TestNotifyPasswordReset(t *testing.T) {
	pub := &fakePublisher{}
	n := newNotifier(pub)
	at := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	a := &entity.Account{Login: "bob", Email: "bob@x.io", Status: entity.Activated(), Reset: &entity.PasswordReset{Key: "R1", RequestedAt: at}}

	require.NoError(t, n.Notify(context.Background(), a, application.NotifyPasswordReset))
	job := pub.jobs[0]
	assert.Equal(t, tpl.PasswordReset, job.Template)
	assert.Equal(t, "https://app.example.com/reset?key=R1&lang=en", job.Data["ResetURL"])
	assert.Equal(t, "bob", job.Data["Name"])
	assert.Equal(t, "03 January 2024, 00:00", job.Data["ExpiresAtText"])
}

func TestNotifyRejectsMissingKey(t *testing.T) {
	pub := &fakePublisher{}
	n := newNotifier(pub)

	err := n.Notify(context.Background(), &entity.Account{Login: "c", Status: entity.Activated()}, application.NotifyActivation)
	assert.Error(t, err)
	err = n.Notify(context.Background(), &entity.Account{Login: "c", Status: entity.Activated()}, application.NotifyPasswordReset)
	assert.Error(t, err)
	assert.Empty(t, pub.jobs)
}

func TestNotifyPublishError(t *testing.T) {
	n := newNotifier(&fakePublisher{err: errors.New("channel closed")})
	a := &entity.Account{Login: "alice", Email: "alice@x.io", Status: entity.Pending("K1")}
	err := n.Notify(context.Background(), a, application.NotifyActivation)
	assert.ErrorContains(t, err, "channel closed")
}
