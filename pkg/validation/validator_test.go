package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidLogin(t *testing.T) {
	valid := []string{"alice", "a", "john.doe", "x_y-z", "alice@example.com", "user@host", strings.Repeat("a", 50)}
	for _, s := range valid {
		assert.True(t, IsValidLogin(s), s)
	}
	invalid := []string{"", "with space", "semi;colon", "tab\t", strings.Repeat("a", 51), "ünïcode"}
	for _, s := range invalid {
		assert.False(t, IsValidLogin(s), s)
	}
}

type payload struct {
	Login   string `json:"login" validate:"required,login"`
	Email   string `json:"email" validate:"required,accountemail"`
	LangKey string `json:"langKey" validate:"omitempty,langkey"`
}

func TestRegisterAndDetails(t *testing.T) {
	v := validator.New()
	Register(v)

	require.NoError(t, v.Struct(payload{Login: "alice", Email: "alice@x.io", LangKey: "en"}))

	err := v.Struct(payload{Login: "bad login", Email: "nope", LangKey: "x"})
	require.Error(t, err)
	details := ToDetails(err)
	assert.Equal(t, "must be an email address or contain only letters, digits and _.@-", details["login"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Contains(t, details, "langKey")
}

func TestToDetailsFallbacks(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("eof")))
}
