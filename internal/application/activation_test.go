package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
)

func TestActivate(t *testing.T) {
	f := newFixture(t)
	acc := f.signup(t, "alice", "alice@x.io")
	key, _ := acc.Status.ActivationKey()

	got, ok, err := f.svc.Activate(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Activated())
	_, pending := got.Status.ActivationKey()
	assert.False(t, pending)
	assert.Equal(t, entity.SystemAccount, got.LastModifiedBy)

	stored, err := f.repo.FindByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, stored.Activated())

	_, ok, err = f.svc.Activate(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, ok, "a key activates once")
}

func TestActivateUnknownKey(t *testing.T) {
	f := newFixture(t)
	for _, key := range []string{"", "nope"} {
		acc, ok, err := f.svc.Activate(context.Background(), key)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, acc)
	}
}
