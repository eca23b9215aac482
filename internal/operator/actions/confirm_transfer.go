package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// ConfirmTransfer applies a PENDING transfer: both balance updates and the
// status transition to COMPLETED happen in the writer's single atomic unit.
// Only the transaction's sender may confirm.
type ConfirmTransfer struct {
	TransactionID uuid.UUID
	CallerID      uuid.UUID

	Result            *transaction.Transaction
	SenderDisplayName string
}

func (a *ConfirmTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	txn, err := writer.Transactions.FindByIDForUpdate(ctx, a.TransactionID)
	if err != nil {
		return err
	}

	if txn.SenderID != a.CallerID {
		return ledger.ErrUnauthorized
	}

	if txn.Status.Terminal() {
		return ledger.ErrInvalidStatus
	}

	receiver, err := writer.Accounts.FindByDisplayName(ctx, txn.ReceiverDisplayName)
	if err != nil {
		return err
	}

	sender, receiver, err := lockAccountPair(ctx, writer, txn.SenderID, receiver.ID)
	if err != nil {
		return err
	}

	// Funds were not reserved at initiate time, so the balance check runs
	// again against the current row.
	if sender.Balance.LessThan(txn.Amount) {
		return ledger.ErrInsufficientBalance
	}

	if err := writer.Accounts.UpdateBalance(ctx, sender.ID, sender.Balance.Sub(txn.Amount)); err != nil {
		return err
	}
	if err := writer.Accounts.UpdateBalance(ctx, receiver.ID, receiver.Balance.Add(txn.Amount)); err != nil {
		return err
	}
	if err := writer.Transactions.UpdateStatus(ctx, txn.ID, transaction.StatusCompleted); err != nil {
		return err
	}

	txn.Status = transaction.StatusCompleted
	a.Result = txn
	a.SenderDisplayName = sender.DisplayName
	return nil
}
