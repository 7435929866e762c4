package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/mailer"
	mailtpl "github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

type outcome int

const (
	ack     outcome = iota
	drop            // malformed, never retried
	requeue         // delivery failed, try again
)

const sendTimeout = 15 * time.Second

// process renders one queued job and hands it to sender.
func process(ctx context.Context, sender mailer.Sender, body []byte) (outcome, error) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return drop, fmt.Errorf("bad message: %w", err)
	}
	if job.To == "" {
		return drop, errors.New("message without recipient")
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return drop, fmt.Errorf("render %s: %w", job.Template, err)
		}
		subject, text, html = s, t, h
	}
	subject = strings.TrimSpace(subject)
	if subject == "" || (text == "" && html == "") {
		return drop, errors.New("message without subject or body")
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := sender.Send(c, job.To, subject, text, html); err != nil {
		return requeue, fmt.Errorf("send: %w", err)
	}
	return ack, nil
}
