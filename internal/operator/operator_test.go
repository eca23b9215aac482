package operator

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
)

func newTestDelegator(t *testing.T) (*OperatorDelegator, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d := NewOperatorDelegator(store.Storage(), 2, logger)
	d.Start()
	t.Cleanup(d.Stop)
	return d, store
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	d, store := newTestDelegator(t)

	action := &actions.CreateAccount{
		DisplayName:     "alice",
		Role:            "USER",
		StartingBalance: decimal.RequireFromString("1000.00"),
	}
	require.NoError(t, d.Process(context.Background(), action))
	require.NotNil(t, action.Result)

	acc, err := store.Storage().Accounts.FindByID(context.Background(), action.Result.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.DisplayName)
}

func TestProcess_RollsBackOnActionError(t *testing.T) {
	d, store := newTestDelegator(t)

	require.NoError(t, d.Process(context.Background(), &actions.CreateAccount{
		DisplayName:     "alice",
		Role:            "USER",
		StartingBalance: decimal.RequireFromString("1000.00"),
	}))

	err := d.Process(context.Background(), &actions.CreateAccount{
		DisplayName:     "alice",
		Role:            "USER",
		StartingBalance: decimal.Zero,
	})
	assert.ErrorIs(t, err, ledger.ErrDisplayNameTaken)

	// Only the first account exists.
	exists, err := store.Storage().Accounts.ExistsByDisplayName(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProcess_ContextCancelled(t *testing.T) {
	store := memory.NewStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// Workers never started, so the item sits in the queue until the
	// context gives up.
	d := NewOperatorDelegator(store.Storage(), 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, &actions.CreateAccount{DisplayName: "alice", Role: "USER"})
	assert.ErrorIs(t, err, context.Canceled)
}
