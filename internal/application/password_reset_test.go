package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPasswordReset(t *testing.T) {
	f := newFixture(t)
	f.activated(t, "alice", "alice@x.io")
	f.notifier.sent = nil

	acc, err := f.svc.RequestPasswordReset(context.Background(), "ALICE@x.io")
	require.NoError(t, err)
	require.NotNil(t, acc)
	require.NotNil(t, acc.Reset)
	assert.Len(t, acc.Reset.Key, 20)
	assert.Equal(t, f.now, acc.Reset.RequestedAt)
	assert.Equal(t, []recordedNotification{{login: "alice", kind: NotifyPasswordReset}}, f.notifier.sent)
}

func TestRequestPasswordResetSilentForUnknownOrPending(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "bob", "bob@x.io")
	f.notifier.sent = nil

	for _, email := range []string{"nobody@x.io", "bob@x.io"} {
		acc, err := f.svc.RequestPasswordReset(context.Background(), email)
		assert.NoError(t, err)
		assert.Nil(t, acc)
	}
	assert.Empty(t, f.notifier.sent)
}

func TestCompletePasswordReset(t *testing.T) {
	f := newFixture(t)
	f.activated(t, "alice", "alice@x.io")
	req, err := f.svc.RequestPasswordReset(context.Background(), "alice@x.io")
	require.NoError(t, err)
	key := req.Reset.Key

	f.now = f.now.Add(time.Hour)
	acc, err := f.svc.CompletePasswordReset(context.Background(), "newpass", key)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Nil(t, acc.Reset)
	assert.True(t, f.svc.Encoder.Verify("newpass", acc.PasswordHash))

	again, err := f.svc.CompletePasswordReset(context.Background(), "another", key)
	assert.NoError(t, err)
	assert.Nil(t, again, "reset key is single use")
}

func TestCompletePasswordResetWindow(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		ok      bool
	}{
		{"just inside", ResetWindow - time.Second, true},
		{"exactly 24h", ResetWindow, false},
		{"after", ResetWindow + time.Minute, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.activated(t, "alice", "alice@x.io")
			req, err := f.svc.RequestPasswordReset(context.Background(), "alice@x.io")
			require.NoError(t, err)

			f.now = f.now.Add(tc.elapsed)
			acc, err := f.svc.CompletePasswordReset(context.Background(), "newpass", req.Reset.Key)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, acc != nil)
		})
	}
}

func TestCompletePasswordResetRejects(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CompletePasswordReset(context.Background(), "abc", "whatever")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	acc, err := f.svc.CompletePasswordReset(context.Background(), "newpass", "")
	assert.NoError(t, err)
	assert.Nil(t, acc)

	acc, err = f.svc.CompletePasswordReset(context.Background(), "newpass", "unknown")
	assert.NoError(t, err)
	assert.Nil(t, acc)
}
