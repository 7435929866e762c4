package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/pkg/mailer"
	mailtpl "github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	msgs []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, sent{to, subject, text, html})
	return nil
}

func body(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcessRendersActivationTemplate(t *testing.T) {
	s := &fakeSender{}
	data := mailtpl.NewActivationEmailData(mailtpl.Branding{AppName: "Accounts"}, "Alice", "alice@x.io", "https://x.io/activate?key=K1")

	res, err := process(context.Background(), s, body(t, mailer.EmailJob{To: "alice@x.io", Template: mailtpl.ActivationEmail, Data: data}))
	require.NoError(t, err)
	assert.Equal(t, ack, res)
	require.Len(t, s.msgs, 1)
	assert.Equal(t, "Accounts account activation", s.msgs[0].subject)
	assert.Contains(t, s.msgs[0].text, "https://x.io/activate?key=K1")
	assert.Contains(t, s.msgs[0].html, "Alice")
}

func TestProcessRawMessage(t *testing.T) {
	s := &fakeSender{}
	res, err := process(context.Background(), s, body(t, mailer.EmailJob{To: "a@x.io", Subject: " hi ", Text: "body"}))
	require.NoError(t, err)
	assert.Equal(t, ack, res)
	assert.Equal(t, "hi", s.msgs[0].subject)
}

func TestProcessDropsMalformed(t *testing.T) {
	s := &fakeSender{}
	cases := map[string][]byte{
		"not json":     []byte("{"),
		"no recipient": body(t, mailer.EmailJob{Subject: "x", Text: "y"}),
		"no body":      body(t, mailer.EmailJob{To: "a@x.io", Subject: "x"}),
		"bad template": body(t, mailer.EmailJob{To: "a@x.io", Template: "missing"}),
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := process(context.Background(), s, b)
			assert.Error(t, err)
			assert.Equal(t, drop, res)
		})
	}
	assert.Empty(t, s.msgs)
}

func TestProcessRequeuesOnSendFailure(t *testing.T) {
	s := &fakeSender{err: errors.New("mailgun down")}
	res, err := process(context.Background(), s, body(t, mailer.EmailJob{To: "a@x.io", Subject: "x", Text: "y"}))
	assert.Error(t, err)
	assert.Equal(t, requeue, res)
}
