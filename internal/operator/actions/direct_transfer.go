package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// DirectTransfer moves funds in one step: both balance updates and the
// COMPLETED transaction record are written in the same atomic unit.
type DirectTransfer struct {
	SenderID            uuid.UUID
	ReceiverDisplayName string
	Amount              decimal.Decimal
	Description         string

	Result            *transaction.Transaction
	SenderDisplayName string
}

func (a *DirectTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount.Sign() <= 0 {
		return ledger.ErrInvalidAmount
	}

	receiver, err := writer.Accounts.FindByDisplayName(ctx, a.ReceiverDisplayName)
	if err != nil {
		return err
	}

	if receiver.ID == a.SenderID {
		return ledger.ErrSelfTransferNotAllowed
	}

	sender, receiver, err := lockAccountPair(ctx, writer, a.SenderID, receiver.ID)
	if err != nil {
		return err
	}

	if sender.Balance.LessThan(a.Amount) {
		return ledger.ErrInsufficientBalance
	}

	if err := writer.Accounts.UpdateBalance(ctx, sender.ID, sender.Balance.Sub(a.Amount)); err != nil {
		return err
	}
	if err := writer.Accounts.UpdateBalance(ctx, receiver.ID, receiver.Balance.Add(a.Amount)); err != nil {
		return err
	}

	created, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		SenderID:            sender.ID,
		ReceiverDisplayName: receiver.DisplayName,
		Amount:              a.Amount,
		Description:         a.Description,
		Status:              transaction.StatusCompleted,
	})
	if err != nil {
		return err
	}

	a.Result = created
	a.SenderDisplayName = sender.DisplayName
	return nil
}
