package memory

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func seedAccount(t *testing.T, store *Store, displayName string, balance string) *account.Account {
	t.Helper()
	writer, err := store.Write(context.Background())
	require.NoError(t, err)

	created, err := writer.Accounts.Insert(context.Background(), &account.AccountCreate{
		DisplayName:     displayName,
		Role:            "USER",
		StartingBalance: decimal.RequireFromString(balance),
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit(context.Background()))
	return created
}

func TestInsertAndFindAccount(t *testing.T) {
	store := NewStore()
	created := seedAccount(t, store, "alice", "1000.00")

	storage := store.Storage()

	byID, err := storage.Accounts.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", byID.DisplayName)
	assert.True(t, byID.Balance.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, byID.Enabled)

	byName, err := storage.Accounts.FindByDisplayName(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	exists, err := storage.Accounts.ExistsByDisplayName(context.Background(), "alice")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = storage.Accounts.ExistsByDisplayName(context.Background(), "bob")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestFindAccount_NotFound(t *testing.T) {
	storage := NewStore().Storage()

	_, err := storage.Accounts.FindByID(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, err = storage.Accounts.FindByDisplayName(context.Background(), "nobody")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestInsertAccount_DisplayNameTaken(t *testing.T) {
	store := NewStore()
	seedAccount(t, store, "alice", "1000.00")

	writer, err := store.Write(context.Background())
	require.NoError(t, err)
	defer func() { _ = writer.Rollback(context.Background()) }()

	_, err = writer.Accounts.Insert(context.Background(), &account.AccountCreate{
		DisplayName:     "alice",
		Role:            "USER",
		StartingBalance: decimal.Zero,
	})
	assert.ErrorIs(t, err, ledger.ErrDisplayNameTaken)
}

func TestRollback_RestoresState(t *testing.T) {
	store := NewStore()
	created := seedAccount(t, store, "alice", "1000.00")

	writer, err := store.Write(context.Background())
	require.NoError(t, err)

	require.NoError(t, writer.Accounts.UpdateBalance(context.Background(), created.ID, decimal.Zero))
	_, err = writer.Transactions.Insert(context.Background(), &transaction.TransactionCreate{
		SenderID:            created.ID,
		ReceiverDisplayName: "bob",
		Amount:              decimal.RequireFromString("10.00"),
		Status:              transaction.StatusCompleted,
	})
	require.NoError(t, err)
	require.NoError(t, writer.Rollback(context.Background()))

	storage := store.Storage()
	acc, err := storage.Accounts.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("1000.00")))

	sent, err := storage.Transactions.ListBySender(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Empty(t, sent)
}

func TestUpdateDisplayName_Collision(t *testing.T) {
	store := NewStore()
	alice := seedAccount(t, store, "alice", "1000.00")
	seedAccount(t, store, "bob", "1000.00")

	writer, err := store.Write(context.Background())
	require.NoError(t, err)
	defer func() { _ = writer.Rollback(context.Background()) }()

	err = writer.Accounts.UpdateDisplayName(context.Background(), alice.ID, "bob")
	assert.ErrorIs(t, err, ledger.ErrDisplayNameTaken)
}

func TestListTransactions_NewestFirst(t *testing.T) {
	store := NewStore()
	alice := seedAccount(t, store, "alice", "1000.00")

	writer, err := store.Write(context.Background())
	require.NoError(t, err)

	first, err := writer.Transactions.Insert(context.Background(), &transaction.TransactionCreate{
		SenderID:            alice.ID,
		ReceiverDisplayName: "bob",
		Amount:              decimal.RequireFromString("1.00"),
		Status:              transaction.StatusCompleted,
	})
	require.NoError(t, err)

	second, err := writer.Transactions.Insert(context.Background(), &transaction.TransactionCreate{
		SenderID:            alice.ID,
		ReceiverDisplayName: "bob",
		Amount:              decimal.RequireFromString("2.00"),
		Status:              transaction.StatusCompleted,
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit(context.Background()))

	storage := store.Storage()

	bySender, err := storage.Transactions.ListBySender(context.Background(), alice.ID)
	assert.NoError(t, err)
	require.Len(t, bySender, 2)
	assert.Equal(t, second.ID, bySender[0].ID)
	assert.Equal(t, first.ID, bySender[1].ID)

	byReceiver, err := storage.Transactions.ListByReceiverDisplayName(context.Background(), "bob")
	assert.NoError(t, err)
	require.Len(t, byReceiver, 2)
	assert.Equal(t, second.ID, byReceiver[0].ID)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	store := NewStore()
	created := seedAccount(t, store, "alice", "1000.00")

	storage := store.Storage()
	acc, err := storage.Accounts.FindByID(context.Background(), created.ID)
	require.NoError(t, err)

	acc.Balance = decimal.Zero

	again, err := storage.Accounts.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, again.Balance.Equal(decimal.RequireFromString("1000.00")))
}
