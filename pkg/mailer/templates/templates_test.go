package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brand = Branding{AppName: "Accounts", CompanyName: "Acme", SupportURL: "https://acme.io/help"}

func TestRenderActivation(t *testing.T) {
	data := NewActivationEmailData(brand, "Alice", "alice@x.io", "https://x.io/activate?key=K1", WithLogin("alice"))

	subject, text, html, err := Render(ActivationEmail, data)
	require.NoError(t, err)
	assert.Equal(t, "Accounts account activation", strings.TrimSpace(subject))
	assert.Contains(t, text, "Dear Alice,")
	assert.Contains(t, text, "https://x.io/activate?key=K1")
	assert.Contains(t, html, `href="https://x.io/activate?key=K1"`)
	assert.Contains(t, html, "https://acme.io/help")
}

func TestRenderPasswordReset(t *testing.T) {
	expires := time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC)
	data := NewPasswordResetData(brand, "", "bob@x.io", "https://x.io/reset?key=R1", WithLogin("bob"), WithExpiresAt(expires))

	_, text, html, err := Render(PasswordReset, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Dear bob,", "falls back to login")
	assert.Contains(t, text, "06 May 2024, 07:08")
	assert.Contains(t, html, "https://x.io/reset?key=R1")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.Error(t, err)
}

func TestNewBaseEmailData(t *testing.T) {
	d := NewBaseEmailData(brand, ActivationEmail, "Alice", "alice@x.io", WithLangKey("fr"))
	assert.Equal(t, "alice@x.io", d.RecipientEmail)
	assert.Equal(t, "fr", d.LangKey)
	assert.Equal(t, "Acme", d.CompanyName)
	assert.Equal(t, ActivationEmail, d.Type)

	m := ToMap(d)
	assert.Equal(t, "Alice", m["Name"])
}
