package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Status is the closed set of transaction states. PENDING is the only
// non-terminal state; COMPLETED and CANCELLED are terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Terminal reports whether no further status transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Transaction represents a money movement record. The receiver is stored as
// the display name resolved at creation time, not a live foreign key, so a
// later rename does not rewrite history. Immutable except for Status.
type Transaction struct {
	ID                  uuid.UUID       `db:"id"`
	SenderID            uuid.UUID       `db:"sender_id"`
	ReceiverDisplayName string          `db:"receiver_display_name"`
	Amount              decimal.Decimal `db:"amount"`
	Description         string          `db:"description"`
	Status              Status          `db:"status"`
	CreatedAt           time.Time       `db:"created_at"`
}

// TransactionCreate is the input for recording a new transaction.
type TransactionCreate struct {
	SenderID            uuid.UUID
	ReceiverDisplayName string
	Amount              decimal.Decimal
	Description         string
	Status              Status
}

// Table defines the read-side interface for transaction storage operations.
// Both list operations return rows ordered by creation time descending.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListBySender(ctx context.Context, senderID uuid.UUID) ([]*Transaction, error)
	ListByReceiverDisplayName(ctx context.Context, displayName string) ([]*Transaction, error)
}

// WriteTable defines the write-side interface, bound to a transaction.
type WriteTable interface {
	Table
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
