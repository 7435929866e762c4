package templates

import (
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}
func WithActivationURL(url string) Option { return func(d *EmailData) { d.ActivationURL = url } }
func WithResetURL(url string) Option      { return func(d *EmailData) { d.ResetURL = url } }
func WithLogin(login string) Option       { return func(d *EmailData) { d.Login = login } }
func WithLangKey(key string) Option       { return func(d *EmailData) { d.LangKey = key } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04")
	}
}

// Branding is the sender-side information shared by every email.
type Branding struct {
	AppName     string
	CompanyName string
	SupportURL  string
}

// NewBaseEmailData fills the common fields and applies opts.
func NewBaseEmailData(b Branding, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		SupportURL:  b.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewActivationEmailData(b Branding, name, email, activationURL string, opts ...Option) map[string]any {
	opts = append([]Option{WithActivationURL(activationURL)}, opts...)
	return ToMap(NewBaseEmailData(b, ActivationEmail, name, email, opts...))
}

func NewPasswordResetData(b Branding, name, email, resetURL string, opts ...Option) map[string]any {
	opts = append([]Option{WithResetURL(resetURL)}, opts...)
	return ToMap(NewBaseEmailData(b, PasswordReset, name, email, opts...))
}
