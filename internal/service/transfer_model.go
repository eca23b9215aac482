package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Transfer is the service-layer projection of a transaction, with the
// sender's display name resolved for the caller.
type Transfer struct {
	ID                  uuid.UUID
	SenderID            uuid.UUID
	SenderDisplayName   string
	ReceiverDisplayName string
	Amount              decimal.Decimal
	Status              transaction.Status
	Description         string
	CreatedAt           time.Time
}

// HistoryDirection tags a history entry as sent or received by the account
// the history was requested for.
type HistoryDirection string

const (
	DirectionSent     HistoryDirection = "SENT"
	DirectionReceived HistoryDirection = "RECEIVED"
)

// HistoryEntry is one row of an account's transaction history. OtherParty is
// the recorded receiver name for SENT entries and the sender's current
// display name (best-effort) for RECEIVED entries.
type HistoryEntry struct {
	ID          uuid.UUID
	OtherParty  string
	Amount      decimal.Decimal
	Status      transaction.Status
	Direction   HistoryDirection
	Description string
	CreatedAt   time.Time
}

func transferFromTransaction(txn *transaction.Transaction, senderDisplayName string) *Transfer {
	return &Transfer{
		ID:                  txn.ID,
		SenderID:            txn.SenderID,
		SenderDisplayName:   senderDisplayName,
		ReceiverDisplayName: txn.ReceiverDisplayName,
		Amount:              txn.Amount,
		Status:              txn.Status,
		Description:         txn.Description,
		CreatedAt:           txn.CreatedAt,
	}
}
