package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// newTestService wires a full service stack over the in-memory backend with
// operator workers running, the same shape main.go builds in production.
func newTestService(t *testing.T) (*Service, *storage.Storage) {
	t.Helper()

	store := memory.NewStore().Storage()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	op := operator.NewOperatorDelegator(store, 4, logger)
	op.Start()
	t.Cleanup(op.Stop)

	return NewService(store, op), store
}

func mustAmount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireBalance(t *testing.T, svc *Service, id uuid.UUID, want string) {
	t.Helper()
	acc, err := svc.Account.GetAccount(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(mustAmount(want)), "balance %s, want %s", acc.Balance, want)
}

func TestTransferDirect(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	transfer, err := svc.Transfer.TransferDirect(context.Background(), alice.ID, "bob", mustAmount("100.00"), "gift")
	require.NoError(t, err)

	assert.Equal(t, transaction.StatusCompleted, transfer.Status)
	assert.Equal(t, "alice", transfer.SenderDisplayName)
	assert.Equal(t, "bob", transfer.ReceiverDisplayName)
	assert.Equal(t, "gift", transfer.Description)
	assert.True(t, transfer.Amount.Equal(mustAmount("100.00")))

	requireBalance(t, svc, alice.ID, "900.00")
	requireBalance(t, svc, bob.ID, "1100.00")
}

func TestTransferDirect_ErrorsLeaveStateUntouched(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	_, err = svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	_, err = svc.Transfer.TransferDirect(context.Background(), alice.ID, "bob", mustAmount("2000.00"), "")
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	_, err = svc.Transfer.TransferDirect(context.Background(), alice.ID, "alice", mustAmount("10.00"), "")
	assert.ErrorIs(t, err, ledger.ErrSelfTransferNotAllowed)

	_, err = svc.Transfer.TransferDirect(context.Background(), alice.ID, "nobody", mustAmount("10.00"), "")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, err = svc.Transfer.TransferDirect(context.Background(), alice.ID, "bob", mustAmount("-1.00"), "")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	requireBalance(t, svc, alice.ID, "1000.00")

	history, err := svc.Transfer.GetHistory(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTwoPhaseTransfer_ConfirmFlow(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	pending, err := svc.Transfer.InitiateTransfer(context.Background(), alice.ID, "bob", mustAmount("250.00"), "rent")
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusPending, pending.Status)

	// Nothing moves while the transfer is pending.
	requireBalance(t, svc, alice.ID, "1000.00")
	requireBalance(t, svc, bob.ID, "1000.00")

	confirmed, err := svc.Transfer.ConfirmTransfer(context.Background(), pending.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusCompleted, confirmed.Status)
	assert.Equal(t, pending.ID, confirmed.ID)

	requireBalance(t, svc, alice.ID, "750.00")
	requireBalance(t, svc, bob.ID, "1250.00")
}

func TestTwoPhaseTransfer_CancelFlow(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	pending, err := svc.Transfer.InitiateTransfer(context.Background(), alice.ID, "bob", mustAmount("250.00"), "")
	require.NoError(t, err)

	cancelled, err := svc.Transfer.CancelTransfer(context.Background(), pending.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusCancelled, cancelled.Status)

	requireBalance(t, svc, alice.ID, "1000.00")
	requireBalance(t, svc, bob.ID, "1000.00")

	// Terminal states reject further transitions.
	_, err = svc.Transfer.ConfirmTransfer(context.Background(), pending.ID, alice.ID)
	assert.ErrorIs(t, err, ledger.ErrInvalidStatus)
	_, err = svc.Transfer.CancelTransfer(context.Background(), pending.ID, alice.ID)
	assert.ErrorIs(t, err, ledger.ErrInvalidStatus)
}

func TestTwoPhaseTransfer_OversubscribedPendings(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	_, err = svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	// Funds are not reserved at initiate, so both pendings are accepted.
	first, err := svc.Transfer.InitiateTransfer(context.Background(), alice.ID, "bob", mustAmount("600.00"), "")
	require.NoError(t, err)
	second, err := svc.Transfer.InitiateTransfer(context.Background(), alice.ID, "bob", mustAmount("600.00"), "")
	require.NoError(t, err)

	_, err = svc.Transfer.ConfirmTransfer(context.Background(), first.ID, alice.ID)
	require.NoError(t, err)

	// The re-check at confirm catches the drained balance.
	_, err = svc.Transfer.ConfirmTransfer(context.Background(), second.ID, alice.ID)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	requireBalance(t, svc, alice.ID, "400.00")

	stale, err := svc.Transfer.GetTransfer(context.Background(), second.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusPending, stale.Status)
}

func TestTransferAuthorization(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	pending, err := svc.Transfer.InitiateTransfer(context.Background(), alice.ID, "bob", mustAmount("100.00"), "")
	require.NoError(t, err)

	_, err = svc.Transfer.ConfirmTransfer(context.Background(), pending.ID, bob.ID)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	_, err = svc.Transfer.CancelTransfer(context.Background(), pending.ID, bob.ID)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	_, err = svc.Transfer.GetTransfer(context.Background(), pending.ID, bob.ID)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)

	// Failed authorization never mutates anything.
	unchanged, err := svc.Transfer.GetTransfer(context.Background(), pending.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, transaction.StatusPending, unchanged.Status)
	requireBalance(t, svc, alice.ID, "1000.00")
	requireBalance(t, svc, bob.ID, "1000.00")
}

func TestGetTransfer_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)

	_, err = svc.Transfer.GetTransfer(context.Background(), uuid.Must(uuid.NewV4()), alice.ID)
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}

func TestConcurrentTransfers_ConserveTotal(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	const rounds = 10
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Transfer.TransferDirect(context.Background(), alice.ID, "bob", mustAmount("1.00"), "")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Transfer.TransferDirect(context.Background(), bob.ID, "alice", mustAmount("1.00"), "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	requireBalance(t, svc, alice.ID, "1000.00")
	requireBalance(t, svc, bob.ID, "1000.00")
}

func TestConcurrentTransfers_NeverOverdraw(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	// 15 competing withdrawals of 100.00 against a 1000.00 balance: exactly
	// 10 can succeed.
	const attempts = 15
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Transfer.TransferDirect(context.Background(), alice.ID, "bob", mustAmount("100.00"), "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
		}
	}
	assert.Equal(t, 10, succeeded)

	requireBalance(t, svc, alice.ID, "0.00")
	requireBalance(t, svc, bob.ID, "2000.00")
}

func TestGetHistory(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	_, err = svc.Transfer.TransferDirect(context.Background(), alice.ID, "bob", mustAmount("100.00"), "first")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = svc.Transfer.TransferDirect(context.Background(), bob.ID, "alice", mustAmount("30.00"), "second")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	pending, err := svc.Transfer.InitiateTransfer(context.Background(), alice.ID, "bob", mustAmount("5.00"), "third")
	require.NoError(t, err)

	history, err := svc.Transfer.GetHistory(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Newest first.
	assert.Equal(t, pending.ID, history[0].ID)
	assert.Equal(t, DirectionSent, history[0].Direction)
	assert.Equal(t, transaction.StatusPending, history[0].Status)

	assert.Equal(t, DirectionReceived, history[1].Direction)
	assert.Equal(t, "bob", history[1].OtherParty)
	assert.True(t, history[1].Amount.Equal(mustAmount("30.00")))

	assert.Equal(t, DirectionSent, history[2].Direction)
	assert.Equal(t, "bob", history[2].OtherParty)

	bobHistory, err := svc.Transfer.GetHistory(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, bobHistory, 3)
	assert.Equal(t, DirectionReceived, bobHistory[0].Direction)
	assert.Equal(t, "alice", bobHistory[0].OtherParty)
}

func TestGetHistory_RenameKeepsRecordedReceiver(t *testing.T) {
	svc, _ := newTestService(t)

	alice, err := svc.Account.CreateAccount(context.Background(), "alice")
	require.NoError(t, err)
	bob, err := svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	_, err = svc.Transfer.TransferDirect(context.Background(), alice.ID, "bob", mustAmount("100.00"), "")
	require.NoError(t, err)

	_, err = svc.Account.RenameAccount(context.Background(), bob.ID, "robert")
	require.NoError(t, err)

	// The sender's history keeps the receiver name recorded at transfer time.
	history, err := svc.Transfer.GetHistory(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "bob", history[0].OtherParty)
}

func TestGetHistory_UnknownSenderPlaceholder(t *testing.T) {
	svc, store := newTestService(t)

	bob, err := svc.Account.CreateAccount(context.Background(), "bob")
	require.NoError(t, err)

	// A received transaction whose sender no longer resolves still shows up,
	// with the placeholder name.
	writer, err := store.Write(context.Background())
	require.NoError(t, err)
	_, err = writer.Transactions.Insert(context.Background(), &transaction.TransactionCreate{
		SenderID:            uuid.Must(uuid.NewV4()),
		ReceiverDisplayName: "bob",
		Amount:              mustAmount("25.00"),
		Status:              transaction.StatusCompleted,
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit(context.Background()))

	history, err := svc.Transfer.GetHistory(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, DirectionReceived, history[0].Direction)
	assert.Equal(t, unknownSender, history[0].OtherParty)
}

func TestGetHistory_UnknownAccount(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Transfer.GetHistory(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}
