package service

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// unknownSender is shown in RECEIVED history entries when the sender account
// can no longer be resolved. The lookup is best-effort and never fails the
// whole history call.
const unknownSender = "unknown"

// TransferService drives the transfer state machine. All mutating
// operations go through the operator so their writes commit atomically;
// reads go straight to storage.
type TransferService struct {
	storage  *storage.Storage
	operator *operator.OperatorDelegator
}

// NewTransferService creates a new TransferService.
func NewTransferService(store *storage.Storage, op *operator.OperatorDelegator) *TransferService {
	return &TransferService{storage: store, operator: op}
}

// InitiateTransfer starts a two-phase transfer and returns the PENDING
// transaction. No balances move until ConfirmTransfer.
func (s *TransferService) InitiateTransfer(ctx context.Context, senderID uuid.UUID, receiverDisplayName string, amount decimal.Decimal, description string) (*Transfer, error) {
	action := &actions.InitiateTransfer{
		SenderID:            senderID,
		ReceiverDisplayName: receiverDisplayName,
		Amount:              amount,
		Description:         description,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return transferFromTransaction(action.Result, action.SenderDisplayName), nil
}

// ConfirmTransfer applies a PENDING transfer on behalf of its sender.
func (s *TransferService) ConfirmTransfer(ctx context.Context, transactionID, callerID uuid.UUID) (*Transfer, error) {
	action := &actions.ConfirmTransfer{
		TransactionID: transactionID,
		CallerID:      callerID,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return transferFromTransaction(action.Result, action.SenderDisplayName), nil
}

// CancelTransfer discards a PENDING transfer on behalf of its sender.
func (s *TransferService) CancelTransfer(ctx context.Context, transactionID, callerID uuid.UUID) (*Transfer, error) {
	action := &actions.CancelTransfer{
		TransactionID: transactionID,
		CallerID:      callerID,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return transferFromTransaction(action.Result, action.SenderDisplayName), nil
}

// TransferDirect moves funds in a single step and returns the COMPLETED
// transaction.
func (s *TransferService) TransferDirect(ctx context.Context, senderID uuid.UUID, receiverDisplayName string, amount decimal.Decimal, description string) (*Transfer, error) {
	action := &actions.DirectTransfer{
		SenderID:            senderID,
		ReceiverDisplayName: receiverDisplayName,
		Amount:              amount,
		Description:         description,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return transferFromTransaction(action.Result, action.SenderDisplayName), nil
}

// GetTransfer returns one transaction. Only the sender may view it.
func (s *TransferService) GetTransfer(ctx context.Context, transactionID, callerID uuid.UUID) (*Transfer, error) {
	txn, err := s.storage.Transactions.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.SenderID != callerID {
		return nil, ledger.ErrUnauthorized
	}

	sender, err := s.storage.Accounts.FindByID(ctx, txn.SenderID)
	if err != nil {
		return nil, err
	}

	return transferFromTransaction(txn, sender.DisplayName), nil
}

// GetHistory projects the account's sent and received transactions into one
// chronological view, newest first. Pure read; never mutates anything.
func (s *TransferService) GetHistory(ctx context.Context, accountID uuid.UUID) ([]HistoryEntry, error) {
	acc, err := s.storage.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sent, err := s.storage.Transactions.ListBySender(ctx, accountID)
	if err != nil {
		return nil, err
	}

	received, err := s.storage.Transactions.ListByReceiverDisplayName(ctx, acc.DisplayName)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(sent)+len(received))
	for _, txn := range sent {
		entries = append(entries, historyEntry(txn, txn.ReceiverDisplayName, DirectionSent))
	}
	for _, txn := range received {
		entries = append(entries, historyEntry(txn, s.resolveSenderName(ctx, txn), DirectionReceived))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}

func (s *TransferService) resolveSenderName(ctx context.Context, txn *transaction.Transaction) string {
	sender, err := s.storage.Accounts.FindByID(ctx, txn.SenderID)
	if err != nil {
		return unknownSender
	}
	return sender.DisplayName
}

func historyEntry(txn *transaction.Transaction, otherParty string, direction HistoryDirection) HistoryEntry {
	return HistoryEntry{
		ID:          txn.ID,
		OtherParty:  otherParty,
		Amount:      txn.Amount,
		Status:      txn.Status,
		Direction:   direction,
		Description: txn.Description,
		CreatedAt:   txn.CreatedAt,
	}
}
