package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// InitiateTransfer records the first phase of a two-phase transfer: a
// PENDING transaction with no balance movement. The sender's balance is
// validated here but not reserved; it is re-checked at confirm time, so
// several pending transfers can oversubscribe the same funds until one of
// them confirms.
type InitiateTransfer struct {
	SenderID            uuid.UUID
	ReceiverDisplayName string
	Amount              decimal.Decimal
	Description         string

	// Result fields populated by Perform.
	Result            *transaction.Transaction
	SenderDisplayName string
}

func (a *InitiateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount.Sign() <= 0 {
		return ledger.ErrInvalidAmount
	}

	sender, err := writer.Accounts.FindByID(ctx, a.SenderID)
	if err != nil {
		return err
	}

	receiver, err := writer.Accounts.FindByDisplayName(ctx, a.ReceiverDisplayName)
	if err != nil {
		return err
	}

	if sender.ID == receiver.ID {
		return ledger.ErrSelfTransferNotAllowed
	}

	if sender.Balance.LessThan(a.Amount) {
		return ledger.ErrInsufficientBalance
	}

	created, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		SenderID:            sender.ID,
		ReceiverDisplayName: receiver.DisplayName,
		Amount:              a.Amount,
		Description:         a.Description,
		Status:              transaction.StatusPending,
	})
	if err != nil {
		return err
	}

	a.Result = created
	a.SenderDisplayName = sender.DisplayName
	return nil
}
