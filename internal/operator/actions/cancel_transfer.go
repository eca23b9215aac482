package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// CancelTransfer discards a PENDING transfer. No balances move because none
// moved at initiate time. Only the transaction's sender may cancel.
type CancelTransfer struct {
	TransactionID uuid.UUID
	CallerID      uuid.UUID

	Result            *transaction.Transaction
	SenderDisplayName string
}

func (a *CancelTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
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

	if err := writer.Transactions.UpdateStatus(ctx, txn.ID, transaction.StatusCancelled); err != nil {
		return err
	}

	sender, err := writer.Accounts.FindByID(ctx, txn.SenderID)
	if err != nil {
		return err
	}

	txn.Status = transaction.StatusCancelled
	a.Result = txn
	a.SenderDisplayName = sender.DisplayName
	return nil
}
