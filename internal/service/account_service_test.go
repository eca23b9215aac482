package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

func TestCreateAccount(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", created.DisplayName)
	assert.Equal(t, "USER", created.Role)
	assert.True(t, created.Enabled)
	assert.True(t, created.Balance.Equal(startingBalance), "balance %s", created.Balance)
	assert.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := svc.Account.GetAccount(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "alice", fetched.DisplayName)
}

func TestCreateAccount_DisplayNameTaken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)

	_, err = svc.Account.CreateAccount(context.Background(), "alice")
	assert.ErrorIs(t, err, ledger.ErrDisplayNameTaken)
}

func TestGetAccount_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Account.GetAccount(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestAccountExists(t *testing.T) {
	svc, _ := newTestService(t)

	exists, err := svc.Account.AccountExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)

	exists, err = svc.Account.AccountExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRenameAccount(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	_, err = svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	renamed, err := svc.Account.RenameAccount(context.Background(), alice.ID, "alicia")
	require.NoError(t, err)
	assert.Equal(t, "alicia", renamed.DisplayName)

	exists, err := svc.Account.AccountExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Account.RenameAccount(context.Background(), alice.ID, "bob")
	assert.ErrorIs(t, err, ledger.ErrDisplayNameTaken)

	_, err = svc.Account.RenameAccount(context.Background(), uuid.Must(uuid.NewV4()), "carol")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}
